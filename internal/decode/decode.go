package decode

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/fairscore/crednorm/internal/model"
)

// Document is one input file: an adapter's observation set plus optional
// page-level context detected alongside it.
type Document struct {
	model.RawObservationSet `yaml:",inline"`
	Page                    *model.PageInfo `json:"page,omitempty" yaml:"page,omitempty"`
}

// Decoder defines the interface for input-format decoders
type Decoder interface {
	// Name returns the decoder name
	Name() string

	// CanHandle checks if this decoder can handle the given file
	CanHandle(path string, data []byte) bool

	// Decode parses the raw bytes into a document
	Decode(data []byte) (*Document, error)
}

// Registry manages input decoders
type Registry struct {
	decoders []Decoder
	generic  Decoder
}

// NewRegistry creates a new decoder registry
func NewRegistry() *Registry {
	registry := &Registry{
		decoders: make([]Decoder, 0),
	}

	registry.Register(NewYAMLDecoder())

	// JSON is the adapters' native output format and the fallback.
	registry.generic = NewJSONDecoder()

	return registry
}

// Register registers a new decoder
func (r *Registry) Register(decoder Decoder) {
	r.decoders = append(r.decoders, decoder)
}

// FindDecoder finds the best decoder for the given file
func (r *Registry) FindDecoder(path string, data []byte) Decoder {
	for _, decoder := range r.decoders {
		if decoder.CanHandle(path, data) {
			return decoder
		}
	}

	return r.generic
}

// ext returns the lowercased file extension without the dot.
func ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// looksLikeJSON reports whether the payload starts with a JSON object
// or array opener.
func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
