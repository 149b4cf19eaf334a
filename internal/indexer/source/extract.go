package source

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the indexable text of the file at path. PDF pages and XML
// character data are flattened into whitespace-separated text; any other
// extension is read verbatim. Only I/O failures are reported as errors: a
// .pdf or .xml file that does not parse is indexed as its raw text.
func Extract(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	var parse func([]byte) (string, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		parse = pdfText
	case ".xml", ".xhtml":
		parse = xmlText
	default:
		return string(raw), nil
	}
	text, err := parse(raw)
	if err != nil {
		return string(raw), nil
	}
	return text, nil
}

func xmlText(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.Strict = false
	var result strings.Builder
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing XML: %w", err)
		}
		if data, ok := token.(xml.CharData); ok {
			result.Write(data)
			result.WriteString(" ")
		}
	}
	return result.String(), nil
}

// pdfText recovers from panics inside the PDF reader, which can trip on
// malformed object streams.
func pdfText(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("parsing PDF: %w", err)
	}
	var result strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", i, err)
		}
		result.WriteString(pageText)
		result.WriteString(" ")
	}
	return result.String(), nil
}
