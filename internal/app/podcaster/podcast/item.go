package podcast

import (
	"errors"
	"sync"
	"time"
)

// SampleAudioURL is the track carried by demo items
const SampleAudioURL = "https://interactive-examples.mdn.mozilla.net/media/examples/t-rex-roar.mp3"

// ErrEmptyItem returned when an item carries neither audio nor summary
var ErrEmptyItem = errors.New("podcast item needs audio or summary")

// Item of podcast collection, never changed after creation
type Item struct {
	ID       int64
	Title    string
	AudioURL string
	Summary  string
}

// HasAudio reports whether item can be played
func (i Item) HasAudio() bool {
	return i.AudioURL != ""
}

// AudioItem makes playable item
func AudioItem(id int64, title, audioURL string) (Item, error) {
	if audioURL == "" {
		return Item{}, ErrEmptyItem
	}
	return Item{ID: id, Title: title, AudioURL: audioURL}, nil
}

// SummaryItem makes summary-only item, used when no audio was generated
func SummaryItem(id int64, title, summary string) (Item, error) {
	if summary == "" {
		return Item{}, ErrEmptyItem
	}
	return Item{ID: id, Title: title, Summary: summary}, nil
}

// IDSource hands out creation time based ids, strictly increasing even
// when the clock does not move between calls
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource makes id source on top of clock, time.Now if nil
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next id
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
