// Package http provides the shared HTTP client used by the catalog
// clients and the downloader worker.
//
// All calls take a context and return explicit errors. Catalog callers
// treat a transport or decode error as an empty result for that one call;
// nothing retries at this layer.
package http
