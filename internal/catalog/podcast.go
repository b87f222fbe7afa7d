package catalog

import (
	"context"
	"crypto/sha1"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	httpclient "github.com/prayujt/distributed-streaming/internal/http"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
)

const podcastAPIBase = "https://api.podcastindex.org/api/1.0"

// PodcastClient queries the PodcastIndex API.
//
// PodcastIndex authenticates with a per-request header set: the API key,
// the current unix time, and sha1(key + secret + time) as the
// Authorization value.
type PodcastClient struct {
	apiKey string
	secret string
	http   *httpclient.Client

	// now is replaceable in tests; the auth hash covers the timestamp.
	now func() time.Time
}

// NewPodcastClient creates a PodcastIndex catalog client.
func NewPodcastClient(apiKey, secret string) *PodcastClient {
	return &PodcastClient{
		apiKey: apiKey,
		secret: secret,
		http:   httpclient.NewClient(),
		now:    time.Now,
	}
}

func (c *PodcastClient) authHeaders() map[string]string {
	unixTime := strconv.FormatInt(c.now().Unix(), 10)
	hash := sha1.Sum([]byte(c.apiKey + c.secret + unixTime))

	return map[string]string{
		"X-Auth-Key":    c.apiKey,
		"X-Auth-Date":   unixTime,
		"Authorization": fmt.Sprintf("%x", hash),
	}
}

func (c *PodcastClient) apiGet(ctx context.Context, path string, v any) error {
	return c.http.GetJSON(ctx, podcastAPIBase+path, c.authHeaders(), v)
}

// SearchFeeds returns the feeds matching a raw title line, in provider
// order.
func (c *PodcastClient) SearchFeeds(ctx context.Context, text string) ([]dto.Feed, error) {
	path := fmt.Sprintf("/search/byterm?q=%s", url.QueryEscape(strings.TrimSpace(text)))

	var res dto.FeedSearchResponse
	if err := c.apiGet(ctx, path, &res); err != nil {
		return nil, err
	}
	return res.Feeds, nil
}

// Episodes returns up to max episodes of a feed in one bulk fetch.
func (c *PodcastClient) Episodes(ctx context.Context, feedID int64, max int) ([]dto.Episode, error) {
	path := fmt.Sprintf("/episodes/byfeedid?id=%d&max=%d", feedID, max)

	var res dto.EpisodesResponse
	if err := c.apiGet(ctx, path, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// EpisodeByID resolves a single episode id into its metadata. The worker
// uses this to turn EPISODE_IDS into titles and enclosure URLs.
func (c *PodcastClient) EpisodeByID(ctx context.Context, id string) (*dto.Episode, error) {
	path := fmt.Sprintf("/episodes/byid?id=%s", url.QueryEscape(id))

	var res dto.EpisodeResponse
	if err := c.apiGet(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res.Episode, nil
}
