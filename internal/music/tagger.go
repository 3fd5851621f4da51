// Native tag writing for MP3 (ID3v2) and M4A (MP4 atoms)
package music

import (
	"fmt"

	mp4tag "github.com/Sorrow446/go-mp4tag"
	"github.com/bogem/id3v2"

	"quickact/internal/models"
	"quickact/internal/shared"
)

// Tagger writes confirmed metadata into a file's native tag format.
type Tagger interface {
	WriteTags(path string, meta models.Metadata) error
}

// NativeTagger writes ID3v2 frames for MP3 and MP4 atoms for M4A.
type NativeTagger struct{}

// WriteTags dispatches on the file's format. A failure here is fatal for
// the run; the caller must not relocate the file afterwards.
func (NativeTagger) WriteTags(path string, meta models.Metadata) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatMP3:
		return writeID3(path, meta)
	case FormatM4A:
		return writeMP4(path, meta)
	default:
		return fmt.Errorf("%w: no tagger for format", shared.ErrUnsupportedInput)
	}
}

func writeID3(path string, meta models.Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTagWrite, err)
	}
	defer tag.Close()

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}
	if meta.Artist != "" {
		tag.SetArtist(meta.Artist)
	}
	if meta.Album != "" {
		tag.SetAlbum(meta.Album)
	}
	if meta.Date != "" {
		// TDRC carries the full release date in ID3v2.4.
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, meta.Date)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTagWrite, err)
	}
	return nil
}

func writeMP4(path string, meta models.Metadata) error {
	f, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTagWrite, err)
	}
	defer f.Close()

	tags := &mp4tag.MP4Tags{
		Title:  meta.Title,
		Artist: meta.Artist,
		Album:  meta.Album,
	}
	if year := meta.Year(); year > 0 {
		tags.Year = int32(year)
	}

	if err := f.Write(tags, nil); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTagWrite, err)
	}
	return nil
}
