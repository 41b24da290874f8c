package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/tcolgate/mp3"
)

// ErrNoFrames returned for data without mp3 frames
var ErrNoFrames = errors.New("no mp3 frames")

// AudioTags written to narrated track
type AudioTags struct {
	Title    string
	Artist   string
	Comment  string
	Duration time.Duration
}

// AudioDuration sums frame durations of mp3 data
func AudioDuration(data []byte) (time.Duration, error) {
	decoder := mp3.NewDecoder(bytes.NewReader(data))
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
		frames  int
	)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return total, fmt.Errorf("decode frame %d: %w", frames, err)
		}
		total += frame.Duration()
		frames++
	}
	if frames == 0 {
		return 0, ErrNoFrames
	}
	return total, nil
}

// TagAudio prepends id3v2.4 tag to mp3 data
func TagAudio(data []byte, tags AudioTags) ([]byte, error) {
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(tags.Title)
	artist := tags.Artist
	if artist == "" {
		artist = "podcaster"
	}
	tag.SetArtist(artist)
	if tags.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "summary",
			Text:        tags.Comment,
		})
	}
	if tags.Duration > 0 {
		tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, strconv.FormatInt(tags.Duration.Milliseconds(), 10))
	}

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write id3 tag: %w", err)
	}
	buf.Write(data)
	return buf.Bytes(), nil
}
