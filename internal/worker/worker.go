package worker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
	"github.com/prayujt/distributed-streaming/internal/config"
	httpclient "github.com/prayujt/distributed-streaming/internal/http"
	ioutils "github.com/prayujt/distributed-streaming/internal/io"
)

var log = logging.MustGetLogger("log")

// coverMaxSize bounds embedded cover art to 1000 pixels on the longest
// edge.
const coverMaxSize = 1000

// TrackCatalog resolves track ids into full metadata. Implemented by
// catalog.SpotifyClient.
type TrackCatalog interface {
	TrackDetails(ctx context.Context, ids []string) ([]dto.Track, error)
}

// EpisodeCatalog resolves episode ids into metadata with enclosure
// URLs. Implemented by catalog.PodcastClient.
type EpisodeCatalog interface {
	EpisodeByID(ctx context.Context, id string) (*dto.Episode, error)
}

// Runner executes one batch inside a downloader job: it resolves the
// ids it was handed, fetches the audio, and files the results into the
// shared library.
//
// Tracks are sourced by searching the video platform with a duration
// filter and extracting audio via yt-dlp. Episodes are streamed
// directly from their enclosure URLs. Both end as tagged MP3s under the
// music home.
type Runner struct {
	tracks   TrackCatalog
	episodes EpisodeCatalog
	http     *httpclient.Client

	musicHome   string
	limit       int
	rescanURL   string
	rescanToken string

	// runCmd executes the prepared yt-dlp command; replaceable in tests.
	runCmd func(*exec.Cmd) error
}

// NewRunner creates a batch runner from configuration. The episode
// catalog may be nil when no podcast credentials are configured.
func NewRunner(settings *config.Settings, tracks TrackCatalog, episodes EpisodeCatalog) *Runner {
	return &Runner{
		tracks:      tracks,
		episodes:    episodes,
		http:        httpclient.NewClient(),
		musicHome:   settings.MusicHome,
		limit:       settings.MaxConcurrentDownloads,
		rescanURL:   settings.RescanURL,
		rescanToken: settings.RescanToken,
		runCmd: func(cmd *exec.Cmd) error {
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
	}
}

// DownloadTracks resolves the track ids in one bulk call and downloads
// them concurrently up to the configured limit.
//
// A failed track is logged and skipped; one bad search never fails the
// batch. Only the metadata fetch itself is fatal, since without it
// there is nothing to download.
func (r *Runner) DownloadTracks(ctx context.Context, ids []string) error {
	tracks, err := r.tracks.TrackDetails(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolving track ids: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for _, track := range tracks {
		g.Go(func() error {
			if err := r.downloadTrack(ctx, track); err != nil {
				log.Errorf("track %s (%s) failed: %v", track.ID, track.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Runner) downloadTrack(ctx context.Context, track dto.Track) error {
	dest := r.trackPath(track)
	if _, err := os.Stat(dest); err == nil {
		log.Infof("already in library, skipping: %s", filepath.Base(dest))
		return nil
	}

	if err := ioutils.EnsureDir(filepath.Dir(dest)); err != nil {
		return fmt.Errorf("creating album directory: %w", err)
	}

	query := searchQuery(track.Name, track.Album.ArtistName())
	log.Infof("searching: %s", query)

	cmd := ytdlpCommand(ctx, dest, query, track.DurationMs/1000)
	if err := r.runCmd(cmd); err != nil {
		return fmt.Errorf("yt-dlp: %w", err)
	}

	meta := TrackMeta{
		Title:       track.Name,
		Artist:      track.Album.ArtistName(),
		Album:       track.Album.Name,
		Year:        releaseYear(track.Album.ReleaseDate),
		TrackNumber: track.TrackNumber,
	}
	if err := WriteTags(dest, meta, r.coverArt(ctx, track.Album)); err != nil {
		return fmt.Errorf("tagging: %w", err)
	}

	log.Infof("downloaded: %s", filepath.Base(dest))
	return nil
}

// trackPath builds the library location for a track:
// <music home>/<artist>/<album>/<NN title>.mp3.
func (r *Runner) trackPath(track dto.Track) string {
	name := ioutils.SanitizeFileName(track.Name)
	if track.TrackNumber > 0 {
		name = fmt.Sprintf("%02d %s", track.TrackNumber, name)
	}
	return filepath.Join(
		r.musicHome,
		ioutils.SanitizeFileName(track.Album.ArtistName()),
		ioutils.SanitizeFileName(track.Album.Name),
		name+".mp3",
	)
}

// coverArt fetches and prepares album artwork for embedding. Failures
// are logged and produce nil; a track without a cover is still a
// usable track.
func (r *Runner) coverArt(ctx context.Context, album dto.Album) []byte {
	if len(album.Images) == 0 {
		return nil
	}

	raw, err := r.http.DownloadBytes(ctx, album.Images[0].URL)
	if err != nil {
		log.Warningf("downloading artwork for %s: %v", album.Name, err)
		return nil
	}

	cover, err := ioutils.PrepareCover(raw, coverMaxSize)
	if err != nil {
		log.Warningf("preparing artwork for %s: %v", album.Name, err)
		return nil
	}
	return cover
}

// DownloadEpisodes resolves each episode id and streams its enclosure
// into the library, concurrently up to the configured limit.
//
// Like tracks, individual failures are logged and skipped.
func (r *Runner) DownloadEpisodes(ctx context.Context, ids []string) error {
	if r.episodes == nil {
		return fmt.Errorf("episode ids given but no podcast credentials configured")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for _, id := range ids {
		g.Go(func() error {
			if err := r.downloadEpisode(ctx, id); err != nil {
				log.Errorf("episode %s failed: %v", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Runner) downloadEpisode(ctx context.Context, id string) error {
	episode, err := r.episodes.EpisodeByID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolving episode: %w", err)
	}
	if episode.EnclosureURL == "" {
		return fmt.Errorf("episode %q has no enclosure", episode.Title)
	}

	dest := r.episodePath(episode)
	if _, err := os.Stat(dest); err == nil {
		log.Infof("already in library, skipping: %s", filepath.Base(dest))
		return nil
	}

	if err := ioutils.EnsureDir(filepath.Dir(dest)); err != nil {
		return fmt.Errorf("creating feed directory: %w", err)
	}

	if err := r.http.DownloadFile(ctx, episode.EnclosureURL, dest); err != nil {
		return fmt.Errorf("streaming enclosure: %w", err)
	}

	meta := TrackMeta{
		Title:  episode.Title,
		Artist: episode.FeedTitle,
		Album:  episode.FeedTitle,
	}
	if err := WriteTags(dest, meta, r.episodeArt(ctx, episode)); err != nil {
		return fmt.Errorf("tagging: %w", err)
	}

	log.Infof("downloaded: %s", filepath.Base(dest))
	return nil
}

// episodePath builds the library location for an episode:
// <music home>/<feed title>/<episode title>.mp3.
func (r *Runner) episodePath(episode *dto.Episode) string {
	return filepath.Join(
		r.musicHome,
		ioutils.SanitizeFileName(episode.FeedTitle),
		ioutils.SanitizeFileName(episode.Title)+".mp3",
	)
}

func (r *Runner) episodeArt(ctx context.Context, episode *dto.Episode) []byte {
	if episode.Image == "" {
		return nil
	}

	raw, err := r.http.DownloadBytes(ctx, episode.Image)
	if err != nil {
		log.Warningf("downloading artwork for %s: %v", episode.Title, err)
		return nil
	}

	cover, err := ioutils.PrepareCover(raw, coverMaxSize)
	if err != nil {
		log.Warningf("preparing artwork for %s: %v", episode.Title, err)
		return nil
	}
	return cover
}

// TriggerRescan asks the media server to rescan the library so new
// files show up without waiting for its schedule. Best effort: a
// missing URL disables it and failures are only logged.
func (r *Runner) TriggerRescan(ctx context.Context) {
	if r.rescanURL == "" {
		return
	}

	headers := map[string]string{}
	if r.rescanToken != "" {
		headers["Authorization"] = "Bearer " + r.rescanToken
	}

	if err := r.http.Post(ctx, r.rescanURL, headers); err != nil {
		log.Warningf("library rescan failed: %v", err)
		return
	}
	log.Info("triggered library rescan")
}
