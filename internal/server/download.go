package server

import (
	"context"

	"github.com/prayujt/distributed-streaming/internal/dispatch"
	"github.com/prayujt/distributed-streaming/internal/model"
)

// Expander is the slice of the expansion layer the download pipeline
// uses.
type Expander interface {
	Expand(ctx context.Context, choice model.Choice) []model.Unit
}

// Batcher submits one batch at a time; implemented by
// dispatch.Dispatcher.
type Batcher interface {
	Dispatch(ctx context.Context, batch []model.Unit)
}

// Downloader resolves a consumed session's chosen indices and drives
// them through expansion, batching and dispatch.
type Downloader struct {
	expander   Expander
	dispatcher Batcher

	albumSize  int
	artistSize int
}

// NewDownloader creates the download pipeline with the per-kind batch
// sizes from configuration.
func NewDownloader(expander Expander, dispatcher Batcher, albumSize, artistSize int) *Downloader {
	return &Downloader{
		expander:   expander,
		dispatcher: dispatcher,
		albumSize:  albumSize,
		artistSize: artistSize,
	}
}

// Start launches the background pipeline for the chosen items and
// returns immediately. The goroutine holds no reference to the
// originating request: client disconnects do not cancel it, and nothing
// reports back once it is running. Observability is logging only.
func (d *Downloader) Start(groups []model.Group, indices []int) {
	go d.run(context.Background(), groups, indices)
}

// run processes chosen items strictly one at a time, in caller index
// order. Sequential processing keeps the admission query meaningful:
// each batch waits for its own capacity grant before the next batch is
// even built.
func (d *Downloader) run(ctx context.Context, groups []model.Group, indices []int) {
	for i, idx := range indices {
		if i >= len(groups) {
			log.Warningf("index %d at position %d has no matching group, skipping", idx, i)
			continue
		}

		group := groups[i]
		if idx < 0 || idx >= len(group) {
			log.Warningf("index %d out of range for group %d (%d choices), skipping", idx, i, len(group))
			continue
		}

		choice := group[idx]
		log.Infof("processing choice: %s", choice.Preview())

		units := d.expander.Expand(ctx, choice)
		if len(units) == 0 {
			log.Warningf("choice %q expanded to no units", choice.Preview())
			continue
		}

		size := d.batchSize(choice)
		for _, batch := range dispatch.Batches(units, size) {
			d.dispatcher.Dispatch(ctx, batch)
		}
	}
}

// batchSize picks the worker size for the kind being expanded. Albums
// and podcasts ship five units per job, artist discographies four; a
// single track always fits one job.
func (d *Downloader) batchSize(choice model.Choice) int {
	switch choice.(type) {
	case model.Artist:
		return d.artistSize
	default:
		return d.albumSize
	}
}
