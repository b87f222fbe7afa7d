package worker

import (
	"fmt"
	"os"

	"github.com/bogem/id3v2"
)

// TrackMeta is the metadata written into a downloaded MP3.
//
// Year and TrackNumber are optional; zero values leave the frame unset.
type TrackMeta struct {
	Title       string
	Artist      string
	Album       string
	Year        string
	TrackNumber int
}

// WriteTags writes ID3v2.3 tags and optional cover art to the MP3 at
// path.
//
// The file is expected to exist; a missing file gets an empty tag set
// so partial failures in the pipeline still produce a taggable result.
// Artwork must already be JPEG bytes (see ioutils.PrepareCover); pass
// nil to skip the picture frame.
func WriteTags(path string, meta TrackMeta, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			tag = id3v2.NewEmptyTag()
		} else {
			return err
		}
	}
	defer tag.Close()

	tag.SetVersion(3)
	tag.SetTitle(meta.Title)
	tag.SetArtist(meta.Artist)
	tag.SetAlbum(meta.Album)

	if meta.Year != "" {
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, meta.Year)
	}
	if meta.TrackNumber > 0 {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d", meta.TrackNumber))
	}

	if artwork != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	return tag.Save()
}

// releaseYear extracts the year from a provider release date. Spotify
// returns "2021-08-23", "2021-08" or just "2021" depending on
// precision.
func releaseYear(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return ""
}
