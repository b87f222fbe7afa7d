package dispatch

import "github.com/prayujt/distributed-streaming/internal/model"

// Batches chunks units into order-preserving groups of at most size.
// The last batch may be shorter; empty input yields no batches. A size
// below 1 is treated as 1.
func Batches(units []model.Unit, size int) [][]model.Unit {
	if size < 1 {
		size = 1
	}

	var batches [][]model.Unit
	for start := 0; start < len(units); start += size {
		end := min(start+size, len(units))
		batches = append(batches, units[start:end])
	}
	return batches
}
