// Package model defines the core data structures shared by the selection
// and dispatch pipeline.
//
// # Choice
//
// Choice is the closed union of the four things a user can pick after a
// search: a track, an album, an artist or a podcast feed. Code that needs
// per-variant behavior dispatches with a type switch:
//
//	switch c := choice.(type) {
//	case model.Track:
//	    // one unit
//	case model.Album:
//	    // expand the album's track listing
//	case model.Artist:
//	    // expand every album in the discography
//	case model.Podcast:
//	    // expand the feed's episodes
//	}
//
// # Unit
//
// Unit is one downloadable item produced by expanding a Choice. A Unit
// remembers whether its id names a track or a podcast episode, because
// execution jobs receive the two through different parameters.
package model
