package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	httpclient "github.com/prayujt/distributed-streaming/internal/http"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
)

const (
	spotifyAPIBase  = "https://api.spotify.com/v1"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// SpotifyClient queries the Spotify Web API using the client-credentials
// flow. A fresh access token is requested per call; tokens are short
// lived and the call volume here is low enough that caching isn't worth
// the bookkeeping.
//
// Example usage:
//
//	client := NewSpotifyClient(id, secret)
//	res, err := client.Search(ctx, "taylor swift")
type SpotifyClient struct {
	clientID string
	secret   string
	http     *httpclient.Client
}

// NewSpotifyClient creates a Spotify catalog client.
func NewSpotifyClient(clientID, secret string) *SpotifyClient {
	return &SpotifyClient{
		clientID: clientID,
		secret:   secret,
		http:     httpclient.NewClient(),
	}
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

func (c *SpotifyClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.secret)

	var auth authResponse
	if err := c.http.PostForm(ctx, spotifyTokenURL, form, &auth); err != nil {
		return "", fmt.Errorf("requesting access token: %w", err)
	}
	return auth.AccessToken, nil
}

func (c *SpotifyClient) apiGet(ctx context.Context, path string, v any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	}
	return c.http.GetJSON(ctx, spotifyAPIBase+path, headers, v)
}

// Search runs one combined track/album/artist query for a raw title line.
func (c *SpotifyClient) Search(ctx context.Context, text string) (*dto.SearchResponse, error) {
	path := fmt.Sprintf("/search?q=%s&type=track,album,artist", url.QueryEscape(strings.TrimSpace(text)))

	var res dto.SearchResponse
	if err := c.apiGet(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AlbumTracks returns one page of the album's track listing.
func (c *SpotifyClient) AlbumTracks(ctx context.Context, albumID string, offset, limit int) ([]dto.AlbumTrack, error) {
	path := fmt.Sprintf("/albums/%s/tracks?offset=%d&limit=%d", albumID, offset, limit)

	var page dto.AlbumTracksPage
	if err := c.apiGet(ctx, path, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ArtistAlbums returns one page of the artist's album listing.
func (c *SpotifyClient) ArtistAlbums(ctx context.Context, artistID string, offset, limit int) ([]dto.ArtistAlbum, error) {
	path := fmt.Sprintf("/artists/%s/albums?offset=%d&limit=%d", artistID, offset, limit)

	var page dto.ArtistAlbumsPage
	if err := c.apiGet(ctx, path, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// TrackDetails bulk-fetches full track objects. The worker uses this to
// resolve the TRACK_IDS it was handed into names, albums and artwork.
func (c *SpotifyClient) TrackDetails(ctx context.Context, ids []string) ([]dto.Track, error) {
	path := fmt.Sprintf("/tracks?ids=%s", strings.Join(ids, ","))

	var res dto.TracksResponse
	if err := c.apiGet(ctx, path, &res); err != nil {
		return nil, err
	}
	return res.Tracks, nil
}
