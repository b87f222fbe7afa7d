package dto

// SearchResponse is the deserialized Spotify /search response for a
// combined track,album,artist query. Sections the query didn't ask for
// come back nil.
type SearchResponse struct {
	Tracks  *TrackPage  `json:"tracks"`
	Albums  *AlbumPage  `json:"albums"`
	Artists *ArtistPage `json:"artists"`
}

// TrackPage is one page of track results.
type TrackPage struct {
	Items []Track `json:"items"`
}

// AlbumPage is one page of album results.
type AlbumPage struct {
	Items []Album `json:"items"`
}

// ArtistPage is one page of artist results.
type ArtistPage struct {
	Items []Artist `json:"items"`
}

// Track is a full track object as returned by /search and /tracks.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
	DurationMs  int    `json:"duration_ms"`
	Album       Album  `json:"album"`
}

// Album is an album object; /search returns the artist list and images
// inline.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ReleaseDate string   `json:"release_date"`
	Artists     []Artist `json:"artists"`
	Images      []Image  `json:"images"`
}

// Artist is an artist object.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Image is one album artwork rendition. Spotify orders these largest
// first.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistName returns the primary artist's name, or an empty string when
// the provider returned none.
func (a Album) ArtistName() string {
	if len(a.Artists) == 0 {
		return ""
	}
	return a.Artists[0].Name
}

// AlbumTrack is a simplified track stub from /albums/{id}/tracks.
type AlbumTrack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
}

// ArtistAlbum is a simplified album stub from /artists/{id}/albums.
type ArtistAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AlbumTracksPage is one page of an album's track listing.
type AlbumTracksPage struct {
	Items []AlbumTrack `json:"items"`
}

// ArtistAlbumsPage is one page of an artist's album listing.
type ArtistAlbumsPage struct {
	Items []ArtistAlbum `json:"items"`
}

// TracksResponse is the bulk /tracks?ids= response used by the worker.
type TracksResponse struct {
	Tracks []Track `json:"tracks"`
}
