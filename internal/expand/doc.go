// Package expand turns a single selected Choice into the flat ordered
// list of downloadable units behind it.
//
// Tracks expand to themselves. Albums page through their track listing
// (50 per page, stopping on the first short page). Artists page through
// their album listing the same way, then expand each album in order.
// Podcast feeds fetch up to 1000 episodes in one call.
//
// Expansion is best-effort: a catalog failure stops the affected branch
// and whatever was already collected is used. Partial results are
// acceptable because the requester received their HTTP response long
// before expansion started.
package expand
