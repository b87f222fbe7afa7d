package expand

import (
	"context"
	"strconv"

	"github.com/op/go-logging"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
	"github.com/prayujt/distributed-streaming/internal/model"
)

var log = logging.MustGetLogger("log")

const (
	// pageSize is the catalog page size for album and artist listings.
	// A page shorter than this terminates the traversal.
	pageSize = 50

	// maxEpisodes bounds the single bulk episode fetch for a feed.
	maxEpisodes = 1000
)

// Gateway is the slice of the music catalog the expander traverses.
type Gateway interface {
	AlbumTracks(ctx context.Context, albumID string, offset, limit int) ([]dto.AlbumTrack, error)
	ArtistAlbums(ctx context.Context, artistID string, offset, limit int) ([]dto.ArtistAlbum, error)
}

// EpisodeLister is the slice of the podcast catalog the expander uses.
// It may be nil when no podcast credentials are configured.
type EpisodeLister interface {
	Episodes(ctx context.Context, feedID int64, max int) ([]dto.Episode, error)
}

// Expander maps one Choice to the flat ordered list of downloadable
// units behind it, recursing through album and artist hierarchies via
// paginated catalog traversal.
type Expander struct {
	gateway  Gateway
	episodes EpisodeLister
}

// NewExpander creates an expander over the given catalog slices.
func NewExpander(gateway Gateway, episodes EpisodeLister) *Expander {
	return &Expander{
		gateway:  gateway,
		episodes: episodes,
	}
}

// Expand resolves a choice into downloadable units.
//
// Catalog failures mid-traversal are logged and stop that branch; the
// units collected so far are returned. By the time expansion runs the
// HTTP caller has already been answered, so there is nobody left to
// propagate the error to.
func (e *Expander) Expand(ctx context.Context, choice model.Choice) []model.Unit {
	switch c := choice.(type) {
	case model.Track:
		return []model.Unit{model.TrackUnit(c.TrackID)}
	case model.Album:
		return e.expandAlbum(ctx, c.AlbumID)
	case model.Artist:
		return e.expandArtist(ctx, c.ArtistID)
	case model.Podcast:
		return e.expandPodcast(ctx, c.FeedID)
	default:
		// The Choice union is sealed; this is unreachable.
		log.Errorf("unknown choice type %T", choice)
		return nil
	}
}

// expandAlbum walks the album's track listing page by page, stopping at
// the first short page.
func (e *Expander) expandAlbum(ctx context.Context, albumID string) []model.Unit {
	var units []model.Unit

	for offset := 0; ; offset += pageSize {
		page, err := e.gateway.AlbumTracks(ctx, albumID, offset, pageSize)
		if err != nil {
			log.Errorf("listing tracks of album %s at offset %d: %v", albumID, offset, err)
			return units
		}

		for _, track := range page {
			units = append(units, model.TrackUnit(track.ID))
		}

		if len(page) < pageSize {
			return units
		}
	}
}

// expandArtist collects the artist's album ids page by page, then
// expands each album in listing order.
func (e *Expander) expandArtist(ctx context.Context, artistID string) []model.Unit {
	var albumIDs []string

	for offset := 0; ; offset += pageSize {
		page, err := e.gateway.ArtistAlbums(ctx, artistID, offset, pageSize)
		if err != nil {
			log.Errorf("listing albums of artist %s at offset %d: %v", artistID, offset, err)
			break
		}

		for _, album := range page {
			albumIDs = append(albumIDs, album.ID)
		}

		if len(page) < pageSize {
			break
		}
	}

	var units []model.Unit
	for _, albumID := range albumIDs {
		units = append(units, e.expandAlbum(ctx, albumID)...)
	}
	return units
}

// expandPodcast fetches the feed's episodes in one bulk call.
func (e *Expander) expandPodcast(ctx context.Context, feedID int64) []model.Unit {
	if e.episodes == nil {
		log.Warningf("podcast expansion requested for feed %d but no podcast credentials configured", feedID)
		return nil
	}

	episodes, err := e.episodes.Episodes(ctx, feedID, maxEpisodes)
	if err != nil {
		log.Errorf("listing episodes of feed %d: %v", feedID, err)
		return nil
	}

	units := make([]model.Unit, 0, len(episodes))
	for _, ep := range episodes {
		units = append(units, model.EpisodeUnit(strconv.FormatInt(ep.ID, 10)))
	}
	return units
}
