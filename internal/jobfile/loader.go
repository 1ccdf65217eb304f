package jobfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Load reads and decodes a job document from path (JSON or YAML).
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(path, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a job document. The path is only used to sniff the format
// from the extension.
func Parse(path string, data []byte) (*Document, error) {
	jb, _, err := coerceToJSONBytes(path, data)
	if err != nil {
		return nil, err
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(jb))
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("invalid document: trailing data")
		}
		return nil, err
	}

	if doc.Jobs == nil {
		return nil, errors.New("document must contain a 'jobs' list")
	}
	return &doc, nil
}
