// Package orchestrator is the Kubernetes adapter behind the dispatch
// layer.
//
// Each batch becomes one batch/v1 Job named downloader-<uuid> running
// the downloader image with the batch's unit ids and the provider
// credentials in its environment, the library claim mounted at the music
// home, restart policy Never and a short TTL after completion. Capacity
// is observed by listing labelled Jobs and counting those with active
// pods; nothing is tracked locally.
package orchestrator
