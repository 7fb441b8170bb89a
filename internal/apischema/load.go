package apischema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrInputNotFound reports that the input document is missing or
	// unreadable.
	ErrInputNotFound = errors.New("apischema: input not found")

	// ErrInputParse reports that the input is not a valid API document.
	ErrInputParse = errors.New("apischema: input parse error")
)

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a whole document from r. A leading byte order mark is
// honored (UTF-8 BOMs are stripped, UTF-16 input is transcoded); input
// without a BOM is passed through untouched.
func Decode(r io.Reader) (*Document, error) {
	tr := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	b, err := io.ReadAll(tr)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrInputNotFound, err)
	}

	if trimmed := bytes.TrimSpace(b); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInputParse)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputParse, err)
	}
	return &doc, nil
}
