package resumetext

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

type DOCX struct{}

var reXMLTags = regexp.MustCompile(`<[^>]+>`)

func (DOCX) Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx: open: %w", err)
	}

	var body []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("docx: open document.xml: %w", err)
		}
		body, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("docx: read document.xml: %w", err)
		}
		break
	}
	if len(body) == 0 {
		return "", errors.New("docx: no word/document.xml")
	}

	x := string(body)
	x = strings.ReplaceAll(x, "</w:p>", "\n")
	x = strings.ReplaceAll(x, "<w:tab/>", "\t")
	x = strings.ReplaceAll(x, "<w:br/>", "\n")
	x = reXMLTags.ReplaceAllString(x, "")
	return normalizeWhitespace(html.UnescapeString(x)), nil
}
