package proc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"podcaster/internal/app/podcaster/upload"
)

// Extractor pulls plain text out of uploaded documents
type Extractor struct{}

// Extract text from document payload, kind detected by name
func (e *Extractor) Extract(name string, data []byte) (string, error) {
	ext, _ := upload.Extension(name)
	switch ext {
	case "txt":
		return strings.ToValidUTF8(string(data), ""), nil
	case "pdf":
		return e.extractPDF(data)
	default:
		return "", fmt.Errorf("unsupported file type for text extraction: %s", name)
	}
}

func (e *Extractor) extractPDF(data []byte) (text string, err error) {
	// pdf reader panics on some broken content streams
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	return b.String(), nil
}
