package proc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

var (
	// ErrInvalidName returned for missing or not allowed document name
	ErrInvalidName = errors.New("invalid or missing filename (allowed: .pdf, .txt)")
	// ErrNoText returned when nothing could be extracted from document
	ErrNoText = errors.New("no text extracted from file")
)

// DefaultSummaryMaxChars caps summary length when not configured
const DefaultSummaryMaxChars = 2000

// Cache of generated summaries, implemented by BoltDB
type Cache interface {
	GetSummary(key string) (*Record, error)
	SaveSummary(key string, record *Record) error
}

// Archive of uploaded documents, implemented by S3Store
type Archive interface {
	ArchiveDocument(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	DeleteDocument(ctx context.Context, objectName string) error
}

// AudioStore publishes generated tracks, implemented by S3Store
type AudioStore interface {
	UploadAudio(ctx context.Context, objectName string, data []byte) (string, error)
}

// Result of document processing
type Result struct {
	Filename string
	Summary  string
	AudioURL string // empty when speech is off or failed
	Location string
	Cached   bool
}

// Processor turns uploaded document into summary and, when Speech and Audio
// are set, into a narrated track. Cache, Archive, Speech and Audio are optional.
type Processor struct {
	Extractor *Extractor
	Cache     Cache
	Archive   Archive
	Speech    Synthesizer
	Audio     AudioStore
	MaxChars  int
}

// Generate summary for document
func (p *Processor) Generate(ctx context.Context, name string, data []byte) (*Result, error) {
	filename := SanitizeFilename(name)
	if !AllowedFilename(filename) {
		return nil, ErrInvalidName
	}

	maxChars := p.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultSummaryMaxChars
	}

	key := ContentKey(data, p.variant(maxChars))
	if p.Cache != nil {
		record, err := p.Cache.GetSummary(key)
		if err != nil {
			log.Printf("[WARN] can't read cached summary for %s, %v", filename, err)
		}
		if record != nil {
			log.Printf("[DEBUG] cached summary hit for %s (%s)", filename, key)
			return &Result{Filename: filename, Summary: record.Summary, AudioURL: record.AudioURL,
				Location: record.Location, Cached: true}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extractor := p.Extractor
	if extractor == nil {
		extractor = &Extractor{}
	}
	raw, err := extractor.Extract(filename, data)
	if err != nil {
		log.Printf("[WARN] can't extract text from %s, %v", filename, err)
		return nil, ErrNoText
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoText
	}

	res := &Result{Filename: filename, Summary: Summarize(CleanText(raw), maxChars)}

	if p.Speech != nil && p.Audio != nil && res.Summary != "" {
		audioURL, err := p.narrate(ctx, res)
		if err != nil {
			log.Printf("[WARN] can't narrate %s, %v", filename, err)
		} else {
			res.AudioURL = audioURL
		}
	}

	var archived string
	if p.Archive != nil {
		objectName := fmt.Sprintf("documents/%s/%s", uuid.NewString(), filename)
		location, err := p.Archive.ArchiveDocument(ctx, objectName, data, ContentType(filename))
		if err != nil {
			log.Printf("[WARN] can't archive %s, %v", filename, err)
		} else {
			log.Printf("[INFO] archived %s to %s", filename, location)
			res.Location = location
			archived = objectName
		}
	}

	if p.Cache != nil {
		record := &Record{Filename: filename, Summary: res.Summary, AudioURL: res.AudioURL,
			Location: res.Location, CreatedAt: time.Now()}
		if err := p.Cache.SaveSummary(key, record); err != nil {
			log.Printf("[WARN] can't cache summary for %s, %v", filename, err)
			// archived copy is only reachable through the cache record
			if archived != "" {
				if derr := p.Archive.DeleteDocument(ctx, archived); derr != nil {
					log.Printf("[WARN] can't remove archived %s, %v", archived, derr)
				} else {
					res.Location = ""
				}
			}
		}
	}

	return res, nil
}

func (p *Processor) narrate(ctx context.Context, res *Result) (string, error) {
	audio, err := p.Speech.Synthesize(ctx, res.Summary)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}

	duration, err := AudioDuration(audio)
	if err != nil {
		log.Printf("[DEBUG] can't measure audio of %s, %v", res.Filename, err)
	}

	tagged, err := TagAudio(audio, AudioTags{Title: res.Filename, Comment: res.Summary, Duration: duration})
	if err != nil {
		return "", fmt.Errorf("tag audio: %w", err)
	}

	objectName := fmt.Sprintf("audio/%s/%s.mp3", uuid.NewString(), strings.TrimSuffix(res.Filename, extOf(res.Filename)))
	return p.Audio.UploadAudio(ctx, objectName, tagged)
}

// variant separates cache entries made with different settings
func (p *Processor) variant(maxChars int) string {
	v := fmt.Sprintf("max=%d", maxChars)
	if p.Speech != nil && p.Audio != nil {
		v += ";speech=" + p.Speech.Voice()
	}
	return v
}

// ContentKey is hex sha256 of document payload and settings variant
func ContentKey(data []byte, variant string) string {
	h := sha256.New()
	_, _ = h.Write(data)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(variant))
	return hex.EncodeToString(h.Sum(nil))
}

func extOf(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx:]
	}
	return ""
}
