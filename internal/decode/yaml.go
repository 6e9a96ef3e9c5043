package decode

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLDecoder parses hand-written fixture sets and adapter output that
// was converted to YAML for review.
type YAMLDecoder struct{}

// NewYAMLDecoder creates a new YAML decoder
func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

// Name returns the decoder name
func (d *YAMLDecoder) Name() string {
	return "yaml"
}

// CanHandle checks if this decoder can handle the given file
func (d *YAMLDecoder) CanHandle(path string, data []byte) bool {
	switch ext(path) {
	case "yaml", "yml":
		return true
	}
	return false
}

// Decode parses the raw bytes into a document
func (d *YAMLDecoder) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Metadata.AdapterID == "" {
		return nil, fmt.Errorf("decode yaml: missing metadata.adapterId")
	}
	return &doc, nil
}
