// Package session holds the ephemeral selection state between the
// /select and /download requests.
//
// The store is a mutex-guarded map keyed by random UUID. Critical
// sections are O(1) and never wrap a network call. No other package
// reaches the backing map; the only operations are Create and Take, and
// Take invalidates the session as it reads it.
package session
