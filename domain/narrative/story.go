// Package narrative normalizes the backend's data-story responses into one
// ordered section sequence.
package narrative

import (
	"encoding/json"
	"fmt"
)

// Section is one titled passage of the dataset narrative.
type Section struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// storyEnvelope covers both wire shapes the backend emits. Some versions key
// the sequence "story", others "sections"; both decode here and get resolved
// once, at this boundary.
type storyEnvelope struct {
	Story    []Section `json:"story,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// Normalize resolves the two response shapes to one sequence. The story key
// wins when both are present; a response carrying neither normalizes to an
// empty sequence, which consumers treat as "no narrative yet", not an error.
func Normalize(story, sections []Section) []Section {
	if len(story) > 0 {
		return story
	}
	if len(sections) > 0 {
		return sections
	}
	return []Section{}
}

// ParseResponse decodes a raw story response body and normalizes it.
func ParseResponse(data []byte) ([]Section, error) {
	var envelope storyEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode story response: %w", err)
	}
	return Normalize(envelope.Story, envelope.Sections), nil
}
