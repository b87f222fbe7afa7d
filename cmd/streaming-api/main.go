package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/prayujt/distributed-streaming/internal/catalog"
	"github.com/prayujt/distributed-streaming/internal/config"
	"github.com/prayujt/distributed-streaming/internal/dispatch"
	"github.com/prayujt/distributed-streaming/internal/expand"
	"github.com/prayujt/distributed-streaming/internal/orchestrator"
	"github.com/prayujt/distributed-streaming/internal/selection"
	"github.com/prayujt/distributed-streaming/internal/server"
	"github.com/prayujt/distributed-streaming/internal/session"
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

func main() {
	settings, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	if err := InitLogger(settings.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	log.Debugf("Config: %+v", settings)

	if !settings.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	spotify := catalog.NewSpotifyClient(settings.SpotifyClientID, settings.SpotifyClientSecret)

	// The podcast clients stay nil interfaces without credentials; the
	// selection service and expander degrade gracefully.
	var podcastSearch selection.PodcastSearcher
	var episodeLister expand.EpisodeLister
	if settings.HasPodcastCredentials() {
		podcasts := catalog.NewPodcastClient(settings.PodcastAPIKey, settings.PodcastAPISecret)
		podcastSearch = podcasts
		episodeLister = podcasts
	}

	store := session.NewStore()
	sel := selection.NewService(spotify, podcastSearch, store)
	expander := expand.NewExpander(spotify, episodeLister)

	var orch dispatch.Orchestrator
	if settings.IsDevelopment() {
		log.Warning("development environment: jobs will be logged, not submitted")
	} else {
		kube, err := orchestrator.New(settings)
		if err != nil {
			log.Fatalf("Failed to create orchestrator client: %v", err)
		}
		orch = kube
	}

	dispatcher := dispatch.NewDispatcher(orch, dispatch.Options{
		MaxJobs:        settings.MaxJobs,
		PollInterval:   settings.PollInterval,
		RetryCooldown:  settings.RetryCooldown,
		SkipSubmission: settings.IsDevelopment(),
	})

	downloader := server.NewDownloader(expander, dispatcher, settings.AlbumWorkerSize, settings.ArtistWorkerSize)

	srv := server.New(sel, store, downloader)
	log.Infof("listening on port %d", settings.Port)
	if err := srv.Run(settings.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
