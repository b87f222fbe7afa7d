// Package catalog implements the thin clients for the two catalog
// providers: Spotify (music) and PodcastIndex (podcasts).
//
// Both clients are synchronous request/JSON-response wrappers. They do
// not retry and they do not interpret results; a transport or decode
// failure surfaces as an error the caller treats as "no results for this
// call".
//
// Consumers declare their own narrow interfaces over these clients
// (selection.MusicSearcher, expand.Gateway, ...) so tests can substitute
// fakes without touching the network.
package catalog
