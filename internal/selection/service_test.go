package selection

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayujt/distributed-streaming/internal/catalog/dto"
	"github.com/prayujt/distributed-streaming/internal/model"
	"github.com/prayujt/distributed-streaming/internal/session"
)

func searchResponse(tracks, albums, artists int) *dto.SearchResponse {
	res := &dto.SearchResponse{
		Tracks:  &dto.TrackPage{},
		Albums:  &dto.AlbumPage{},
		Artists: &dto.ArtistPage{},
	}
	for i := range tracks {
		res.Tracks.Items = append(res.Tracks.Items, dto.Track{
			ID:   fmt.Sprintf("t%d", i),
			Name: fmt.Sprintf("Track %d", i),
			Album: dto.Album{
				Name:    "Album",
				Artists: []dto.Artist{{Name: "Artist"}},
			},
		})
	}
	for i := range albums {
		res.Albums.Items = append(res.Albums.Items, dto.Album{
			ID:      fmt.Sprintf("a%d", i),
			Name:    fmt.Sprintf("Album %d", i),
			Artists: []dto.Artist{{Name: "Artist"}},
		})
	}
	for i := range artists {
		res.Artists.Items = append(res.Artists.Items, dto.Artist{
			ID:   fmt.Sprintf("ar%d", i),
			Name: fmt.Sprintf("Artist %d", i),
		})
	}
	return res
}

type fakeMusic struct {
	responses map[string]*dto.SearchResponse
	err       error
	calls     []string
}

func (f *fakeMusic) Search(_ context.Context, text string) (*dto.SearchResponse, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.responses[text]; ok {
		return res, nil
	}
	return searchResponse(0, 0, 0), nil
}

type fakePodcasts struct {
	feeds []dto.Feed
	err   error
}

func (f *fakePodcasts) SearchFeeds(context.Context, string) ([]dto.Feed, error) {
	return f.feeds, f.err
}

func countKinds(group model.Group) (tracks, albums, artists int) {
	for _, c := range group {
		switch c.(type) {
		case model.Track:
			tracks++
		case model.Album:
			albums++
		case model.Artist:
			artists++
		}
	}
	return
}

func TestBuildMusicGroup_FullTargets(t *testing.T) {
	group := buildMusicGroup(searchResponse(20, 10, 5))

	tracks, albums, artists := countKinds(group)
	assert.Equal(t, 10, tracks)
	assert.Equal(t, 5, albums)
	assert.Equal(t, 3, artists)
	assert.Len(t, group, 18)
}

func TestBuildMusicGroup_ShortfallRollsIntoTracks(t *testing.T) {
	// 3 album slots and 0 artist slots are unfilled; the track quota
	// grows from 10 to 13.
	group := buildMusicGroup(searchResponse(20, 2, 5))

	tracks, albums, artists := countKinds(group)
	assert.Equal(t, 13, tracks)
	assert.Equal(t, 2, albums)
	assert.Equal(t, 3, artists)
}

func TestBuildMusicGroup_TrackQuotaCappedByAvailability(t *testing.T) {
	group := buildMusicGroup(searchResponse(4, 0, 0))

	tracks, albums, artists := countKinds(group)
	assert.Equal(t, 4, tracks)
	assert.Equal(t, 0, albums)
	assert.Equal(t, 0, artists)
}

func TestBuildMusicGroup_OrderIsTracksAlbumsArtists(t *testing.T) {
	group := buildMusicGroup(searchResponse(2, 2, 2))

	// The rolled-over track quota is capped at the 2 available tracks.
	require.Len(t, group, 6)

	var kinds []string
	for _, c := range group {
		switch c.(type) {
		case model.Track:
			kinds = append(kinds, "track")
		case model.Album:
			kinds = append(kinds, "album")
		case model.Artist:
			kinds = append(kinds, "artist")
		}
	}
	assert.Equal(t, []string{"track", "track", "album", "album", "artist", "artist"}, kinds)
}

func TestBuildMusicGroup_NilSections(t *testing.T) {
	group := buildMusicGroup(&dto.SearchResponse{})
	assert.Empty(t, group)
}

func TestSelect_OneGroupPerLine(t *testing.T) {
	music := &fakeMusic{responses: map[string]*dto.SearchResponse{
		"Song A": searchResponse(14, 1, 1),
		"Song B": searchResponse(3, 0, 0),
	}}
	store := session.NewStore()
	svc := NewService(music, nil, store)

	id, previews, err := svc.Select(context.Background(), "Song A\n\n  Song B  \n", DomainMusic)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, previews, 2)

	// Song A: quota 10 + 4 + 2 = 16, capped at 14 tracks, plus the
	// album and the artist.
	assert.Len(t, previews[0], 16)
	assert.True(t, strings.HasPrefix(previews[0][0], "Track: "))
	assert.True(t, strings.HasPrefix(previews[0][14], "Album: "))
	assert.True(t, strings.HasPrefix(previews[0][15], "Artist: "))

	assert.Len(t, previews[1], 3)

	// Blank lines never reach the searcher.
	assert.Equal(t, []string{"Song A", "Song B"}, music.calls)

	// The previews mirror what the session stores.
	groups, err := store.Take(id)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, previews[0], groups[0].Previews())
}

func TestSelect_FailedLineIsDropped(t *testing.T) {
	music := &fakeMusic{err: fmt.Errorf("catalog down")}
	store := session.NewStore()
	svc := NewService(music, nil, store)

	id, previews, err := svc.Select(context.Background(), "Song A", DomainMusic)
	require.NoError(t, err)
	assert.Empty(t, previews)

	groups, err := store.Take(id)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestSelect_PodcastDomain(t *testing.T) {
	podcasts := &fakePodcasts{feeds: []dto.Feed{
		{ID: 1, Title: "Radiolab", Author: "WNYC"},
		{ID: 2, Title: "Serial", Author: "NYT"},
	}}
	store := session.NewStore()
	svc := NewService(&fakeMusic{}, podcasts, store)

	_, previews, err := svc.Select(context.Background(), "radio", DomainPodcast)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, []string{
		"Podcast: Radiolab - WNYC",
		"Podcast: Serial - NYT",
	}, previews[0])
}

func TestSelect_PodcastWithoutCredentials(t *testing.T) {
	store := session.NewStore()
	svc := NewService(&fakeMusic{}, nil, store)

	_, previews, err := svc.Select(context.Background(), "radio", DomainPodcast)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Empty(t, previews[0])
}
