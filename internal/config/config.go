package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const configFilePath = "config.json"

// EnvDevelopment is the environment value that disables all orchestrator
// interaction. With it set, batches are expanded and logged but never
// admitted or submitted, so the pipeline can be exercised without a
// reachable cluster.
const EnvDevelopment = "development"

// Settings holds all configuration options for the API service and the
// downloader worker.
type Settings struct {
	// Service
	Port        int    `mapstructure:"port"`
	LogLevel    string `mapstructure:"log-level"`
	Environment string `mapstructure:"environment"`

	// Catalog provider credentials
	SpotifyClientID     string `mapstructure:"spotify-client-id"`
	SpotifyClientSecret string `mapstructure:"spotify-client-secret"`
	PodcastAPIKey       string `mapstructure:"podcast-api-key"`
	PodcastAPISecret    string `mapstructure:"podcast-api-secret"`

	// Dispatch
	MaxJobs          int           `mapstructure:"max-jobs"`
	AlbumWorkerSize  int           `mapstructure:"album-worker-size"`
	ArtistWorkerSize int           `mapstructure:"artist-worker-size"`
	PollInterval     time.Duration `mapstructure:"poll-interval"`
	RetryCooldown    time.Duration `mapstructure:"retry-cooldown"`

	// Orchestrator
	DownloaderImage string `mapstructure:"downloader-image"`
	StorageClaim    string `mapstructure:"storage-claim"`
	Namespace       string `mapstructure:"namespace"`

	// Worker
	MusicHome              string `mapstructure:"music-home"`
	MaxConcurrentDownloads int    `mapstructure:"max-concurrent-downloads"`
	RescanURL              string `mapstructure:"rescan-url"`
	RescanToken            string `mapstructure:"rescan-token"`
}

var requiredFields = []string{
	"spotify-client-id",
	"spotify-client-secret",
}

// InitConfig reads configuration from an optional JSON file and from
// environment variables. Environment variables take precedence over the
// config file; dashes in key names map to underscores in the environment
// (e.g. SPOTIFY_CLIENT_ID).
func InitConfig() (*Settings, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	setDefaults(v)

	for _, field := range requiredFields {
		v.BindEnv(field)
	}

	if err := v.ReadInConfig(); err != nil {
		// ignore error if config file is not found
		// as we can get all config from env vars
		if !strings.Contains(err.Error(), configFilePath) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) || v.GetString(field) == "" {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log-level", "INFO")
	v.SetDefault("environment", "production")

	// Optional credentials default to empty so env values are picked up.
	v.SetDefault("podcast-api-key", "")
	v.SetDefault("podcast-api-secret", "")

	v.SetDefault("max-jobs", 8)
	v.SetDefault("album-worker-size", 5)
	v.SetDefault("artist-worker-size", 4)
	v.SetDefault("poll-interval", 5*time.Second)
	v.SetDefault("retry-cooldown", 10*time.Second)

	v.SetDefault("downloader-image", "docker.prayujt.com/distributed-streaming-downloader")
	v.SetDefault("storage-claim", "music-library")
	v.SetDefault("namespace", "")

	v.SetDefault("music-home", "/music")
	v.SetDefault("max-concurrent-downloads", 4)
	v.SetDefault("rescan-url", "")
	v.SetDefault("rescan-token", "")
}

// IsDevelopment reports whether orchestrator interaction should be
// skipped entirely.
func (s *Settings) IsDevelopment() bool {
	return s.Environment == EnvDevelopment
}

// HasPodcastCredentials reports whether the podcast index can be queried.
// Without credentials, podcast selection returns empty results.
func (s *Settings) HasPodcastCredentials() bool {
	return s.PodcastAPIKey != "" && s.PodcastAPISecret != ""
}
