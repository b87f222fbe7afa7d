package selection

import (
	"context"
	"strings"

	"github.com/op/go-logging"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
	"github.com/prayujt/distributed-streaming/internal/model"
	"github.com/prayujt/distributed-streaming/internal/session"
)

var log = logging.MustGetLogger("log")

// Truncation targets for a music query. Album and artist shortfalls roll
// over into the track quota, so the group size adapts to what the
// provider actually returned.
const (
	trackTarget  = 10
	albumTarget  = 5
	artistTarget = 3
)

// Domain selects which catalog a /select call queries.
type Domain string

const (
	DomainMusic   Domain = "music"
	DomainPodcast Domain = "podcast"
)

// MusicSearcher is the slice of the Spotify client the service needs.
type MusicSearcher interface {
	Search(ctx context.Context, text string) (*dto.SearchResponse, error)
}

// PodcastSearcher is the slice of the PodcastIndex client the service
// needs. It may be nil when no podcast credentials are configured.
type PodcastSearcher interface {
	SearchFeeds(ctx context.Context, text string) ([]dto.Feed, error)
}

// Service turns raw multi-line title text into ranked choice groups and
// persists them as a single-use session.
type Service struct {
	music    MusicSearcher
	podcasts PodcastSearcher
	store    *session.Store
}

// NewService creates a selection service backed by the given searchers
// and session store.
func NewService(music MusicSearcher, podcasts PodcastSearcher, store *session.Store) *Service {
	return &Service{
		music:    music,
		podcasts: podcasts,
		store:    store,
	}
}

// Select queries the catalog once per non-empty title line, builds one
// choice group per successful query, stores the groups, and returns the
// session id together with the rendered previews.
//
// A failed or unparseable catalog call drops that line's group and is
// logged; it never aborts the remaining lines.
func (s *Service) Select(ctx context.Context, titles string, domain Domain) (string, [][]string, error) {
	var groups []model.Group

	for _, title := range strings.Split(titles, "\n") {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		var (
			group model.Group
			err   error
		)
		switch domain {
		case DomainPodcast:
			group, err = s.podcastGroup(ctx, title)
		default:
			group, err = s.musicGroup(ctx, title)
		}
		if err != nil {
			log.Errorf("search for %q failed: %v", title, err)
			continue
		}

		groups = append(groups, group)
	}

	id := s.store.Create(groups)
	log.Infof("created session %s with %d group(s)", id, len(groups))

	previews := make([][]string, len(groups))
	for i, group := range groups {
		previews[i] = group.Previews()
	}

	return id, previews, nil
}

func (s *Service) musicGroup(ctx context.Context, title string) (model.Group, error) {
	res, err := s.music.Search(ctx, title)
	if err != nil {
		return nil, err
	}
	return buildMusicGroup(res), nil
}

func (s *Service) podcastGroup(ctx context.Context, title string) (model.Group, error) {
	if s.podcasts == nil {
		log.Warning("podcast search requested but no podcast credentials configured")
		return model.Group{}, nil
	}

	feeds, err := s.podcasts.SearchFeeds(ctx, title)
	if err != nil {
		return nil, err
	}

	group := make(model.Group, 0, len(feeds))
	for _, feed := range feeds {
		group = append(group, model.Podcast{
			FeedID: feed.ID,
			Title:  feed.Title,
			Author: feed.Author,
		})
	}
	return group, nil
}

// buildMusicGroup applies the truncation policy to one search response.
//
// Targets are 10 tracks, 5 albums, 3 artists. When fewer albums or
// artists are available than their target, the shortfall is added to the
// track target. Order is always tracks, then albums, then artists, each
// in provider-ranked order.
func buildMusicGroup(res *dto.SearchResponse) model.Group {
	var tracks []dto.Track
	var albums []dto.Album
	var artists []dto.Artist

	if res.Tracks != nil {
		tracks = res.Tracks.Items
	}
	if res.Albums != nil {
		albums = res.Albums.Items
	}
	if res.Artists != nil {
		artists = res.Artists.Items
	}

	trackCount := trackTarget
	albumCount := albumTarget
	artistCount := artistTarget

	if len(albums) < albumCount {
		trackCount += albumCount - len(albums)
		albumCount = len(albums)
	}
	if len(artists) < artistCount {
		trackCount += artistCount - len(artists)
		artistCount = len(artists)
	}
	trackCount = min(trackCount, len(tracks))

	group := make(model.Group, 0, trackCount+albumCount+artistCount)
	for _, t := range tracks[:trackCount] {
		group = append(group, model.Track{
			TrackID: t.ID,
			Title:   t.Name,
			Artist:  t.Album.ArtistName(),
			Album:   t.Album.Name,
		})
	}
	for _, a := range albums[:albumCount] {
		group = append(group, model.Album{
			AlbumID: a.ID,
			Title:   a.Name,
			Artist:  a.ArtistName(),
		})
	}
	for _, a := range artists[:artistCount] {
		group = append(group, model.Artist{
			ArtistID: a.ID,
			Name:     a.Name,
		})
	}

	return group
}
