package content

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by stores that hold no document for a game.
var ErrNotFound = errors.New("content: document not found")

// Document is the content file of one game.
type Document struct {
	GameTitle    string  `json:"gameTitle" yaml:"gameTitle"`
	Instructions string  `json:"instructions" yaml:"instructions"`
	Scenarios    []Level `json:"scenarios" yaml:"scenarios"`
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("content: parse document: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return Document{}, fmt.Errorf("content: document %q has no scenarios", doc.GameTitle)
	}
	return doc, nil
}

// Marshal encodes a document as YAML.
func Marshal(doc Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("content: marshal document: %w", err)
	}
	return data, nil
}

// WithKind fills the kind of scenarios that do not declare one and assigns
// missing IDs.
func (d Document) WithKind(k Kind) Document {
	out := d
	out.Scenarios = make([]Level, len(d.Scenarios))
	for i, l := range d.Scenarios {
		if l.Kind == "" {
			l.Kind = k
		}
		if l.ID == "" {
			l.ID = fmt.Sprintf("%d", i+1)
		}
		if l.Difficulty == "" {
			l.Difficulty = DifficultyEasy
		}
		out.Scenarios[i] = l
	}
	return out
}

// Invalid returns the validation error of every unplayable scenario.
func (d Document) Invalid() []error {
	var errs []error
	for _, l := range d.Scenarios {
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
