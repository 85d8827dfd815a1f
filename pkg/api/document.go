package api

import "time"

// Format selects the encoding of a snapshot document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DocumentFormatVersion is the current snapshot envelope version.
const DocumentFormatVersion = 1

// DocumentState is the persisted form of a single state: its identity and
// payload fields only. The behavior routine is executable and never appears
// here.
type DocumentState struct {
	ID   StateID        `json:"id" yaml:"id"`
	Name string         `json:"name,omitempty" yaml:"name,omitempty"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Document is the serialized form of an automaton: the full state list
// ordered by ascending ID plus the current position. Transitions, guards and
// behaviors are deliberately absent; they are re-derived from the Definition
// on load.
type Document struct {
	FormatVersion int             `json:"format_version" yaml:"format_version"`
	Automaton     string          `json:"automaton,omitempty" yaml:"automaton,omitempty"`
	States        []DocumentState `json:"states" yaml:"states"`
	CurrentID     StateID         `json:"current_id" yaml:"current_id"`
	SavedAt       time.Time       `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
}
