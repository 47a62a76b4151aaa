// Package extractor converts uploaded documents into plain text for the
// generation pipeline. It is a pure transform over the provided bytes:
// no state, no side effects. Supported formats are PDF, DOCX, TXT, and
// Markdown, selected by the declared file extension.
package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction errors.
var (
	// ErrUnsupportedFormat is returned for file extensions the extractor
	// does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailure is returned when a supported file cannot be read,
	// e.g. a corrupt PDF or a DOCX with no document body.
	ErrExtractionFailure = errors.New("failed to extract text from file")
)

// Extract converts file bytes into plain text based on the declared
// extension (".pdf", ".docx", ".txt", ".md", matched case-insensitively).
// The result is trimmed of leading and trailing whitespace; an empty result
// is valid, not an error. Callers must check for blankness themselves.
func Extract(data []byte, extension string) (string, error) {
	var text string
	var err error

	switch strings.ToLower(extension) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt", ".md":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// extractPDF concatenates the extracted text of every page in document
// order. Pages yielding no extractable text contribute nothing; per-page
// extraction errors are skipped rather than failing the document, since
// scanned or image-only pages are common. The pdf library panics on some
// malformed inputs, so the whole parse runs under a recover.
func extractPDF(data []byte) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = fmt.Errorf("%w: %v", ErrExtractionFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailure, err)
	}

	var text bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(content)
	}

	return text.String(), nil
}

// extractDOCX reads a DOCX archive and concatenates paragraph text in
// document order, one paragraph per line. A .docx file is a zip containing
// word/document.xml; paragraph boundaries are <w:p> elements and text runs
// are <w:t> elements.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailure, err)
	}

	var docFile *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: missing word/document.xml", ErrExtractionFailure)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailure, err)
	}
	defer func() { _ = rc.Close() }()

	var text bytes.Buffer
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailure, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" { // <w:t> text run
				var run string
				if err := decoder.DecodeElement(&run, &el); err == nil {
					text.WriteString(run)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" { // paragraph boundary
				text.WriteString("\n")
			}
		}
	}

	return text.String(), nil
}
