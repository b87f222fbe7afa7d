package dto

// FeedSearchResponse is the PodcastIndex /search/byterm response.
type FeedSearchResponse struct {
	Feeds []Feed `json:"feeds"`
}

// Feed is one podcast feed stub.
type Feed struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	URL     string `json:"url"`
	Artwork string `json:"artwork"`
}

// EpisodesResponse is the PodcastIndex /episodes/byfeedid response.
type EpisodesResponse struct {
	Items []Episode `json:"items"`
}

// EpisodeResponse is the PodcastIndex /episodes/byid response.
type EpisodeResponse struct {
	Episode Episode `json:"episode"`
}

// Episode is one podcast episode stub. EnclosureURL points at the audio
// file itself; the worker streams it directly.
type Episode struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	EnclosureURL string `json:"enclosureUrl"`
	FeedTitle    string `json:"feedTitle"`
	Image        string `json:"image"`
}
