package session

import (
	"sync"
	"testing"

	"github.com/prayujt/distributed-streaming/internal/model"
)

func sampleGroups() []model.Group {
	return []model.Group{
		{model.Track{TrackID: "t1", Title: "A"}},
		{model.Album{AlbumID: "a1", Title: "B"}},
	}
}

func TestStore_CreateAndTake(t *testing.T) {
	store := NewStore()

	id := store.Create(sampleGroups())
	if id == "" {
		t.Fatal("Create() returned empty id")
	}

	groups, err := store.Take(id)
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("len(groups) = %d, want 2", len(groups))
	}
}

func TestStore_TakeIsSingleUse(t *testing.T) {
	store := NewStore()
	id := store.Create(sampleGroups())

	if _, err := store.Take(id); err != nil {
		t.Fatalf("first Take() error = %v", err)
	}
	if _, err := store.Take(id); err != ErrNotFound {
		t.Errorf("second Take() error = %v, want ErrNotFound", err)
	}
}

func TestStore_TakeUnknownID(t *testing.T) {
	store := NewStore()

	if _, err := store.Take("nope"); err != ErrNotFound {
		t.Errorf("Take(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStore_DistinctIDs(t *testing.T) {
	store := NewStore()

	a := store.Create(sampleGroups())
	b := store.Create(sampleGroups())
	if a == b {
		t.Errorf("Create() returned duplicate id %q", a)
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestStore_ConcurrentTakeWinsOnce(t *testing.T) {
	store := NewStore()
	id := store.Create(sampleGroups())

	const racers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, racers)

	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(id); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	if got := len(wins); got != 1 {
		t.Errorf("%d racers succeeded, want exactly 1", got)
	}
}
