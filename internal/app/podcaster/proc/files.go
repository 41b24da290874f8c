package proc

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"podcaster/internal/app/podcaster/upload"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename drops directories and unsafe characters from uploaded name.
// Accented letters are decomposed first so they keep their base letter.
// Empty result means the name can't be used at all.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), "_")
	name = norm.NFKD.String(name)
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	return name
}

// AllowedFilename checks sanitized name has one of upload extensions
func AllowedFilename(name string) bool {
	if name == "" {
		return false
	}
	_, ok := upload.Extension(name)
	return ok
}

// ContentType of document by its extension
func ContentType(name string) string {
	ext, _ := upload.Extension(name)
	switch ext {
	case "pdf":
		return "application/pdf"
	case "txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
