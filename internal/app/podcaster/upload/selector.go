// Package upload validates and stages the document picked for generation
package upload

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedExtension returned for names not ending in .pdf or .txt
	ErrUnsupportedExtension = errors.New("only .pdf and .txt files are allowed")
	// ErrNoFile returned when picker reported no file
	ErrNoFile = errors.New("no file selected")
)

// AllowedExtensions accepted by selector, lowercase without dot
var AllowedExtensions = []string{"pdf", "txt"}

// Candidate is a file picked by user, not validated yet
type Candidate struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FromPath makes candidate for file on disk
func FromPath(path string) Candidate {
	return Candidate{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) }, // nolint
	}
}

// FromBytes makes candidate for in-memory payload
func FromBytes(name string, data []byte) Candidate {
	return Candidate{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// StagedFile is a validated file waiting for submission
type StagedFile struct {
	Name      string
	Extension string
	open      func() (io.ReadCloser, error)
}

// Open payload of staged file
func (f StagedFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, ErrNoFile
	}
	return f.open()
}

// Selector holds single staged slot, the most recent valid selection wins
type Selector struct {
	mu     sync.Mutex
	staged *StagedFile
}

// Select validates candidate and stages it. Any failure leaves slot empty.
func (s *Selector) Select(c Candidate) (StagedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.staged = nil
	if c.Name == "" || c.Open == nil {
		return StagedFile{}, ErrNoFile
	}

	ext, ok := Extension(c.Name)
	if !ok {
		return StagedFile{}, ErrUnsupportedExtension
	}

	f := StagedFile{Name: c.Name, Extension: ext, open: c.Open}
	s.staged = &f
	return f, nil
}

// Staged returns current staged file if any
func (s *Selector) Staged() (StagedFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return StagedFile{}, false
	}
	return *s.staged, true
}

// Clear staged slot
func (s *Selector) Clear() {
	s.mu.Lock()
	s.staged = nil
	s.mu.Unlock()
}

// Extension returns lowercase allowed extension of name
func Extension(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return ext, true
		}
	}
	return "", false
}
