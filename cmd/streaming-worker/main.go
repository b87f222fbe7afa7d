package main

import (
	"context"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/prayujt/distributed-streaming/internal/catalog"
	"github.com/prayujt/distributed-streaming/internal/config"
	"github.com/prayujt/distributed-streaming/internal/worker"
)

var log = logging.MustGetLogger("log")

// InitLogger Receives the log level to be set in go-logging as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

// splitIDs parses a comma-separated id list from the environment,
// dropping empty entries.
func splitIDs(value string) []string {
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func main() {
	settings, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	if err := InitLogger(settings.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	spotify := catalog.NewSpotifyClient(settings.SpotifyClientID, settings.SpotifyClientSecret)

	var episodes worker.EpisodeCatalog
	if settings.HasPodcastCredentials() {
		episodes = catalog.NewPodcastClient(settings.PodcastAPIKey, settings.PodcastAPISecret)
	}

	runner := worker.NewRunner(settings, spotify, episodes)
	ctx := context.Background()

	trackIDs := splitIDs(os.Getenv("TRACK_IDS"))
	episodeIDs := splitIDs(os.Getenv("EPISODE_IDS"))

	switch {
	case len(trackIDs) > 0:
		log.Infof("downloading %d track(s)", len(trackIDs))
		if err := runner.DownloadTracks(ctx, trackIDs); err != nil {
			log.Fatalf("Batch failed: %v", err)
		}
	case len(episodeIDs) > 0:
		log.Infof("downloading %d episode(s)", len(episodeIDs))
		if err := runner.DownloadEpisodes(ctx, episodeIDs); err != nil {
			log.Fatalf("Batch failed: %v", err)
		}
	default:
		log.Fatalf("Neither TRACK_IDS nor EPISODE_IDS is set")
	}

	runner.TriggerRescan(ctx)
}
