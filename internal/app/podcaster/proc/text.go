package proc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	pageNumberLine = regexp.MustCompile(`^\d{1,4}$`)
	shortTokenLine = regexp.MustCompile(`^[A-Za-z0-9]{1,3}$`)
	repeatedBlanks = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanText drops page numbers and header noise, rejoins wrapped lines and
// hyphenated words. Paragraphs are separated by a blank line.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if pageNumberLine.MatchString(line) || shortTokenLine.MatchString(line) {
			continue
		}

		if len(parts) == 0 {
			parts = append(parts, line)
			continue
		}
		last := len(parts) - 1
		prev := parts[last]
		switch {
		case strings.HasSuffix(prev, "-"):
			parts[last] = strings.TrimSuffix(prev, "-") + line
		case line == "":
			parts = append(parts, line)
		case startsLower(line):
			parts[last] = prev + " " + line
		default:
			parts = append(parts, line)
		}
	}

	paragraphs := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	cleaned := repeatedBlanks.ReplaceAllString(strings.Join(paragraphs, "\n\n"), " ")
	return strings.TrimSpace(cleaned)
}

// Summarize takes first three sentences, cut at word boundary to maxChars
func Summarize(text string, maxChars int) string {
	if text == "" {
		return ""
	}

	sentences := splitSentences(text)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	summary := strings.Join(sentences, " ")

	runes := []rune(summary)
	if maxChars <= 0 || len(runes) <= maxChars {
		return summary
	}
	cut := string(runes[:maxChars])
	if idx := strings.LastIndex(cut, " "); idx >= 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// splitSentences splits on whitespace that follows sentence punctuation
func splitSentences(text string) []string {
	var res []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if (r == '.' || r == '!' || r == '?') && i+size < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if unicode.IsSpace(next) {
				res = append(res, text[start:i+size])
				j := i + size
				for j < len(text) {
					sp, spSize := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(sp) {
						break
					}
					j += spSize
				}
				start, i = j, j
				continue
			}
		}
		i += size
	}
	if start < len(text) {
		res = append(res, text[start:])
	}
	return res
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
