// Package dispatch batches downloadable units and feeds them to the
// execution orchestrator under a global capacity ceiling.
//
// # Batching
//
// Batches is pure chunking: order preserved, last batch possibly short.
// Batch sizes default per expansion kind (album 5, artist 4) and come
// from configuration.
//
// # Admission
//
// Before every submission the orchestrator is asked for its active-job
// count. At or above max-jobs the dispatcher sleeps the poll interval
// and asks again, indefinitely. No local counter shadows the
// orchestrator's state.
//
// # Submission
//
// A failed submit sleeps the retry cooldown and restarts from the
// admission query. There is no retry cap. Sleeps are injectable so tests
// run on a recorded fake instead of the wall clock.
package dispatch
