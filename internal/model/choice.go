package model

import (
	"fmt"
	"strconv"
)

// Choice is one selectable candidate surfaced to the user after a search.
//
// The set of implementations is closed: Track, Album, Artist and Podcast
// are the only four variants. Downstream code dispatches on the concrete
// type to pick the matching expansion pipeline, so a type switch over
// these four covers every case.
//
// A Choice is immutable once created. Its identifier is opaque to this
// service; only the catalog provider interprets it.
type Choice interface {
	// Ref returns the provider identifier this choice points at.
	Ref() string

	// Preview returns the single human-readable line presented to the
	// user when the choice list is rendered.
	Preview() string

	sealed()
}

// Track is a single playable track candidate.
type Track struct {
	TrackID string
	Title   string
	Artist  string
	Album   string
}

// Ref returns the provider track id.
func (t Track) Ref() string { return t.TrackID }

// Preview renders the track as "Track: {title} - {artist} [{album}]".
func (t Track) Preview() string {
	return fmt.Sprintf("Track: %s - %s [%s]", t.Title, t.Artist, t.Album)
}

func (Track) sealed() {}

// Album is an album candidate; choosing it downloads every track on the
// album.
type Album struct {
	AlbumID string
	Title   string
	Artist  string
}

// Ref returns the provider album id.
func (a Album) Ref() string { return a.AlbumID }

// Preview renders the album as "Album: {title} - {artist}".
func (a Album) Preview() string {
	return fmt.Sprintf("Album: %s - %s", a.Title, a.Artist)
}

func (Album) sealed() {}

// Artist is an artist candidate; choosing it downloads the artist's full
// discography.
type Artist struct {
	ArtistID string
	Name     string
}

// Ref returns the provider artist id.
func (a Artist) Ref() string { return a.ArtistID }

// Preview renders the artist as "Artist: {name}".
func (a Artist) Preview() string {
	return fmt.Sprintf("Artist: %s", a.Name)
}

func (Artist) sealed() {}

// Podcast is a podcast feed candidate; choosing it downloads the feed's
// episodes.
type Podcast struct {
	FeedID int64
	Title  string
	Author string
}

// Ref returns the feed id in decimal form.
func (p Podcast) Ref() string { return strconv.FormatInt(p.FeedID, 10) }

// Preview renders the feed as "Podcast: {title} - {author}".
func (p Podcast) Preview() string {
	return fmt.Sprintf("Podcast: %s - %s", p.Title, p.Author)
}

func (Podcast) sealed() {}

// Group is the ordered choice list produced for one input title line.
// Group ordering inside a session matches the ordering of the input lines.
type Group []Choice

// Previews returns the rendered preview line for every choice in order.
func (g Group) Previews() []string {
	previews := make([]string, len(g))
	for i, c := range g {
		previews[i] = c.Preview()
	}
	return previews
}
