package resumetext

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxChars caps the text handed to the LLM.
const MaxChars = 20000

var ErrUnsupportedType = errors.New("unsupported file type")

// Extractor turns a document into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// ForFile picks an extractor by declared MIME type, falling back to the
// filename extension.
func ForFile(contentType, filename string) (Extractor, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case ct == MimePDF || ext == ".pdf":
		return PDF{}, nil
	case ct == MimeDOCX || ext == ".docx":
		return DOCX{}, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// Truncate keeps at most max characters of s.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

var (
	reSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines = regexp.MustCompile(`\n\s*\n+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
