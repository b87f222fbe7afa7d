package worker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// searchResults is how many search hits yt-dlp considers before the
	// duration filter picks the first acceptable one.
	searchResults = 10

	// durationSlack is the accepted deviation, in seconds, between the
	// catalog duration and the candidate video.
	durationSlack = 5
)

// ytdlpCommand builds the yt-dlp invocation that searches for a track
// and extracts it as MP3 directly to dest.
//
// The duration filter rejects extended mixes, sped-up versions and full
// album uploads that happen to rank above the studio recording. A
// durationSec of zero disables the filter.
func ytdlpCommand(ctx context.Context, dest, query string, durationSec int) *exec.Cmd {
	args := []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--output", dest,
		"--format", "bestaudio/best",
		"--no-playlist",
	}
	if durationSec > 0 {
		args = append(args, "--match-filter",
			fmt.Sprintf("duration>%d & duration<%d", durationSec-durationSlack, durationSec+durationSlack))
	}
	args = append(args, fmt.Sprintf("ytsearch%d:%s", searchResults, query))

	return exec.CommandContext(ctx, "yt-dlp", args...)
}

// cleanTitle strips parenthesized and bracketed suffixes from a track
// title before searching. "Song (feat. X) [Remastered]" matches better
// as just "Song".
func cleanTitle(title string) string {
	if i := strings.Index(title, "("); i != -1 {
		title = title[:i]
	}
	if i := strings.Index(title, "["); i != -1 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// searchQuery combines the cleaned title with the artist name.
func searchQuery(title, artist string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", cleanTitle(title), artist))
}
