// Package worker implements the downloader job payload.
//
// A job receives a comma-separated id list through TRACK_IDS or
// EPISODE_IDS. Tracks are resolved in one bulk catalog call, fetched by
// searching the video platform with a duration filter, and extracted as
// MP3 via yt-dlp; episodes are resolved one by one and streamed from
// their enclosure URLs. Results are tagged with ID3v2.3 metadata plus
// cover art and filed under the shared music home. When a rescan URL is
// configured, the media server is poked once after the batch finishes.
package worker
