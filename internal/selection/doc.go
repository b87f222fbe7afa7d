// Package selection builds ranked, truncated choice groups from raw
// title text.
//
// For each non-empty input line the service runs one catalog search and
// applies the truncation policy: 10 tracks, 5 albums, 3 artists, with
// album/artist shortfalls rolling over into the track quota. The
// resulting groups are stored as a single-use session whose id the
// caller hands back on /download.
package selection
