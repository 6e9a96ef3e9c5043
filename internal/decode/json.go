package decode

import (
	"encoding/json"
	"fmt"
)

// JSONDecoder parses adapter output in its native JSON form.
type JSONDecoder struct{}

// NewJSONDecoder creates a new JSON decoder
func NewJSONDecoder() *JSONDecoder {
	return &JSONDecoder{}
}

// Name returns the decoder name
func (d *JSONDecoder) Name() string {
	return "json"
}

// CanHandle checks if this decoder can handle the given file
func (d *JSONDecoder) CanHandle(path string, data []byte) bool {
	if ext(path) == "json" {
		return true
	}
	return looksLikeJSON(data)
}

// Decode parses the raw bytes into a document
func (d *JSONDecoder) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if doc.Metadata.AdapterID == "" {
		return nil, fmt.Errorf("decode json: missing metadata.adapterId")
	}
	return &doc, nil
}
