// Package schemafile reads and writes the YAML document the CLI and the
// surrounding product use to store answer schemas at rest.
package schemafile

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/answerforge/answerforge/internal/schema"
)

const (
	// DocKind tags a document as an answer schema.
	DocKind = "answer_schema"
	// DocVersion is the current document layout version.
	DocVersion = 1
)

// Document wraps one class model with storage metadata.
type Document struct {
	Kind    string                  `yaml:"kind"`
	Version int                     `yaml:"version"`
	ID      string                  `yaml:"id"`
	Class   *schema.ClassDefinition `yaml:"class"`
}

// NewDocument wraps c in a fresh document with a minted ID.
func NewDocument(c *schema.ClassDefinition) *Document {
	return &Document{Kind: DocKind, Version: DocVersion, ID: uuid.NewString(), Class: c.Clone()}
}

// Encode renders the document as YAML.
func Encode(doc *Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema document: %w", err)
	}
	return out, nil
}

// Decode parses and sanity-checks a YAML document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema document: %w", err)
	}
	if doc.Kind != DocKind {
		return nil, fmt.Errorf("unexpected document kind %q, want %q", doc.Kind, DocKind)
	}
	if doc.Version > DocVersion {
		return nil, fmt.Errorf("document version %d is newer than supported version %d", doc.Version, DocVersion)
	}
	if doc.Class == nil {
		return nil, fmt.Errorf("document has no class definition")
	}
	if doc.Class.BaseClass == "" {
		doc.Class.BaseClass = schema.BaseClassName
	}
	if doc.Class.Pattern == "" {
		doc.Class.Pattern = schema.PatternMultiple
	}
	return &doc, nil
}

// Load reads and decodes path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save encodes doc to path.
func Save(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
