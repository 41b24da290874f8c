package upload

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRejectsUnsupported(t *testing.T) {
	for _, name := range []string{"notes.docx", "report.pdf.exe", "pdf", "txt", "archive.tar.gz", "noext", ".pdfx", "image.PNG"} {
		t.Run(name, func(t *testing.T) {
			s := &Selector{}
			_, err := s.Select(FromBytes(name, []byte("x")))
			assert.ErrorIs(t, err, ErrUnsupportedExtension)
			_, ok := s.Staged()
			assert.False(t, ok)
		})
	}
}

func TestSelectAcceptsCaseInsensitive(t *testing.T) {
	tbl := []struct {
		name string
		ext  string
	}{
		{"report.pdf", "pdf"},
		{"REPORT.PDF", "pdf"},
		{"notes.txt", "txt"},
		{"Notes.TxT", "txt"},
		{".txt", "txt"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			s := &Selector{}
			f, err := s.Select(FromBytes(tt.name, []byte("x")))
			require.NoError(t, err)
			assert.Equal(t, tt.name, f.Name)
			assert.Equal(t, tt.ext, f.Extension)

			staged, ok := s.Staged()
			require.True(t, ok)
			assert.Equal(t, tt.name, staged.Name)
		})
	}
}

func TestSelectReplacesPrevious(t *testing.T) {
	s := &Selector{}
	_, err := s.Select(FromBytes("first.pdf", []byte("1")))
	require.NoError(t, err)
	_, err = s.Select(FromBytes("second.txt", []byte("2")))
	require.NoError(t, err)

	staged, ok := s.Staged()
	require.True(t, ok)
	assert.Equal(t, "second.txt", staged.Name)

	r, err := staged.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))
}

func TestSelectInvalidDropsStaged(t *testing.T) {
	s := &Selector{}
	_, err := s.Select(FromBytes("first.pdf", []byte("1")))
	require.NoError(t, err)

	_, err = s.Select(FromBytes("second.docx", []byte("2")))
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
	_, ok := s.Staged()
	assert.False(t, ok)
}

func TestSelectEmptyCandidate(t *testing.T) {
	s := &Selector{}
	_, err := s.Select(FromBytes("first.pdf", []byte("1")))
	require.NoError(t, err)

	_, err = s.Select(Candidate{})
	assert.ErrorIs(t, err, ErrNoFile)
	_, ok := s.Staged()
	assert.False(t, ok)
}

func TestFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lecture.txt")
	require.NoError(t, os.WriteFile(path, []byte("some text"), 0o600))

	s := &Selector{}
	f, err := s.Select(FromPath(path))
	require.NoError(t, err)
	assert.Equal(t, "lecture.txt", f.Name)

	r, err := f.Open()
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "some text", string(data))

	s.Clear()
	_, ok := s.Staged()
	assert.False(t, ok)
}

func TestStagedFileZeroOpen(t *testing.T) {
	_, err := StagedFile{}.Open()
	assert.ErrorIs(t, err, ErrNoFile)
}
