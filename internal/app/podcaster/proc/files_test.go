package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tbl := []struct {
		in, out string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\docs\notes.txt`, "notes.txt"},
		{"my lecture notes.txt", "my_lecture_notes.txt"},
		{"ünïcode.pdf", "unicode.pdf"},
		{"résumé final.pdf", "resume_final.pdf"},
		{"ﬁnal ｎｏｔｅｓ.txt", "final_notes.txt"},
		{"Ærø.txt", "r.txt"},
		{"...", ""},
		{"", ""},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.out, SanitizeFilename(tt.in), tt.in)
	}
}

func TestAllowedFilename(t *testing.T) {
	assert.True(t, AllowedFilename("a.pdf"))
	assert.True(t, AllowedFilename("A.TXT"))
	assert.False(t, AllowedFilename("a.docx"))
	assert.False(t, AllowedFilename(""))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("a.pdf"))
	assert.Equal(t, "text/plain", ContentType("a.txt"))
	assert.Equal(t, "application/octet-stream", ContentType("a.bin"))
}
