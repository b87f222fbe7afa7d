package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
	"github.com/prayujt/distributed-streaming/internal/model"
	"github.com/prayujt/distributed-streaming/internal/selection"
	"github.com/prayujt/distributed-streaming/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMusic struct{}

func (fakeMusic) Search(_ context.Context, text string) (*dto.SearchResponse, error) {
	return &dto.SearchResponse{
		Tracks: &dto.TrackPage{Items: []dto.Track{
			{
				ID:   "t1",
				Name: text,
				Album: dto.Album{
					Name:    "Album",
					Artists: []dto.Artist{{Name: "Artist"}},
				},
			},
		}},
	}, nil
}

func newTestServer() (*Server, *session.Store, *recordingBatcher) {
	store := session.NewStore()
	sel := selection.NewService(fakeMusic{}, nil, store)

	expander := &fakeExpander{units: map[string][]model.Unit{}}
	batcher := &recordingBatcher{}
	downloader := NewDownloader(expander, batcher, 5, 4)

	return New(sel, store, downloader), store, batcher
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSelectEndpoint(t *testing.T) {
	srv, store, _ := newTestServer()
	router := srv.Router()

	rec := postJSON(t, router, "/select", map[string]any{
		"titles": "Song A\nSong B",
		"type":   "music",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		SessionID string     `json:"session_id"`
		Choices   [][]string `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.SessionID)
	require.Len(t, res.Choices, 2)
	assert.Equal(t, []string{"Track: Song A - Artist [Album]"}, res.Choices[0])

	// The session is retrievable exactly once.
	_, err := store.Take(res.SessionID)
	require.NoError(t, err)
}

func TestSelectEndpoint_BadBody(t *testing.T) {
	srv, _, _ := newTestServer()
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/select", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadEndpoint_UnknownSession(t *testing.T) {
	srv, _, _ := newTestServer()
	router := srv.Router()

	rec := postJSON(t, router, "/download", map[string]any{
		"session_id": "nope",
		"indices":    []int{0},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Session not found"`, rec.Body.String())
}

func TestDownloadEndpoint_ConsumesSession(t *testing.T) {
	srv, _, _ := newTestServer()
	router := srv.Router()

	sel := postJSON(t, router, "/select", map[string]any{
		"titles": "Song A",
		"type":   "music",
	})
	var selRes struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(sel.Body.Bytes(), &selRes))

	first := postJSON(t, router, "/download", map[string]any{
		"session_id": selRes.SessionID,
		"indices":    []int{0},
	})
	require.Equal(t, http.StatusOK, first.Code)

	var dlRes struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &dlRes))
	assert.Equal(t, selRes.SessionID, dlRes.SessionID)

	// The second attempt finds nothing; the session was single use.
	second := postJSON(t, router, "/download", map[string]any{
		"session_id": selRes.SessionID,
		"indices":    []int{0},
	})
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `"Session not found"`, second.Body.String())
}

func TestDownloadEndpoint_AcceptanceIsImmediate(t *testing.T) {
	srv, store, batcher := newTestServer()
	router := srv.Router()

	// Session whose choice expands to nothing; the pipeline runs and
	// dispatches no batches, and the response never reflects that.
	id := store.Create([]model.Group{{model.Album{AlbumID: "missing"}}})

	rec := postJSON(t, router, "/download", map[string]any{
		"session_id": id,
		"indices":    []int{0},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("%q", id))
	assert.Empty(t, batcher.recorded())
}
