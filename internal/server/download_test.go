package server

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayujt/distributed-streaming/internal/model"
)

// fakeExpander serves scripted unit lists keyed by choice ref.
type fakeExpander struct {
	units map[string][]model.Unit
}

func (f *fakeExpander) Expand(_ context.Context, choice model.Choice) []model.Unit {
	return f.units[choice.Ref()]
}

// recordingBatcher captures dispatched batches. Safe for use from the
// pipeline goroutine.
type recordingBatcher struct {
	mu      sync.Mutex
	batches [][]model.Unit
	signal  chan struct{}
}

func (b *recordingBatcher) Dispatch(_ context.Context, batch []model.Unit) {
	b.mu.Lock()
	b.batches = append(b.batches, batch)
	b.mu.Unlock()
	if b.signal != nil {
		b.signal <- struct{}{}
	}
}

func (b *recordingBatcher) recorded() [][]model.Unit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.batches
}

func trackUnits(n int) []model.Unit {
	out := make([]model.Unit, n)
	for i := range out {
		out[i] = model.TrackUnit(fmt.Sprintf("t%d", i))
	}
	return out
}

func TestRun_AlbumBatchesInOrder(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{
		"a1": trackUnits(12),
	}}
	batcher := &recordingBatcher{}
	d := NewDownloader(expander, batcher, 5, 4)

	groups := []model.Group{{model.Album{AlbumID: "a1"}}}
	d.run(context.Background(), groups, []int{0})

	batches := batcher.recorded()
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 5)
	assert.Len(t, batches[1], 5)
	assert.Len(t, batches[2], 2)
	assert.Equal(t, "t0", batches[0][0].ID)
	assert.Equal(t, "t11", batches[2][1].ID)
}

func TestRun_ArtistUsesArtistBatchSize(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{
		"ar1": trackUnits(9),
	}}
	batcher := &recordingBatcher{}
	d := NewDownloader(expander, batcher, 5, 4)

	groups := []model.Group{{model.Artist{ArtistID: "ar1"}}}
	d.run(context.Background(), groups, []int{0})

	batches := batcher.recorded()
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 4)
	assert.Len(t, batches[2], 1)
}

func TestRun_IndicesResolvePositionally(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{
		"t-a": {model.TrackUnit("t-a")},
		"t-b": {model.TrackUnit("t-b")},
	}}
	batcher := &recordingBatcher{}
	d := NewDownloader(expander, batcher, 5, 4)

	groups := []model.Group{
		{model.Track{TrackID: "t-a"}, model.Track{TrackID: "skipped"}},
		{model.Track{TrackID: "skipped"}, model.Track{TrackID: "t-b"}},
	}
	d.run(context.Background(), groups, []int{0, 1})

	batches := batcher.recorded()
	require.Len(t, batches, 2)
	assert.Equal(t, "t-a", batches[0][0].ID)
	assert.Equal(t, "t-b", batches[1][0].ID)
}

func TestRun_OutOfRangeIndexIsSkipped(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{
		"t-b": {model.TrackUnit("t-b")},
	}}
	batcher := &recordingBatcher{}
	d := NewDownloader(expander, batcher, 5, 4)

	groups := []model.Group{
		{model.Track{TrackID: "t-a"}},
		{model.Track{TrackID: "t-b"}},
	}
	// 7 is out of range for group 0; group 1 still downloads.
	d.run(context.Background(), groups, []int{7, 0})

	batches := batcher.recorded()
	require.Len(t, batches, 1)
	assert.Equal(t, "t-b", batches[0][0].ID)
}

func TestRun_ExtraIndicesAreSkipped(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{
		"t-a": {model.TrackUnit("t-a")},
	}}
	batcher := &recordingBatcher{}
	d := NewDownloader(expander, batcher, 5, 4)

	groups := []model.Group{{model.Track{TrackID: "t-a"}}}
	d.run(context.Background(), groups, []int{0, 0, 0})

	assert.Len(t, batcher.recorded(), 1)
}

func TestRun_EmptyExpansionIsSkipped(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{}}
	batcher := &recordingBatcher{}
	d := NewDownloader(expander, batcher, 5, 4)

	groups := []model.Group{{model.Album{AlbumID: "a1"}}}
	d.run(context.Background(), groups, []int{0})

	assert.Empty(t, batcher.recorded())
}

func TestStart_RunsDetached(t *testing.T) {
	expander := &fakeExpander{units: map[string][]model.Unit{
		"t-a": {model.TrackUnit("t-a")},
	}}
	batcher := &recordingBatcher{signal: make(chan struct{}, 1)}
	d := NewDownloader(expander, batcher, 5, 4)

	d.Start([]model.Group{{model.Track{TrackID: "t-a"}}}, []int{0})

	select {
	case <-batcher.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline never dispatched")
	}
}
