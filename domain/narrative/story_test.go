package narrative

import (
	"testing"
)

// TestNormalizeBothShapes checks that story-keyed and sections-keyed
// responses normalize identically.
func TestNormalizeBothShapes(t *testing.T) {
	fromStory, err := ParseResponse([]byte(`{"story":[{"title":"A","text":"B"}]}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	fromSections, err := ParseResponse([]byte(`{"sections":[{"title":"A","text":"B"}]}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(fromStory) != 1 || len(fromSections) != 1 {
		t.Fatalf("Expected single-entry sequences, got %d and %d", len(fromStory), len(fromSections))
	}
	if fromStory[0] != fromSections[0] {
		t.Errorf("Shapes must normalize identically: %+v vs %+v", fromStory[0], fromSections[0])
	}
	if fromStory[0].Title != "A" || fromStory[0].Text != "B" {
		t.Errorf("Unexpected section content: %+v", fromStory[0])
	}
}

// TestNormalizeEmptyFallback checks the neither-key fallback.
func TestNormalizeEmptyFallback(t *testing.T) {
	sections, err := ParseResponse([]byte(`{"status":"ok"}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sections == nil {
		t.Fatal("Expected empty sequence, got nil")
	}
	if len(sections) != 0 {
		t.Errorf("Expected empty sequence, got %d entries", len(sections))
	}
}

// TestNormalizeStoryWins checks precedence when both keys are present.
func TestNormalizeStoryWins(t *testing.T) {
	sections := Normalize(
		[]Section{{Title: "story", Text: "x"}},
		[]Section{{Title: "sections", Text: "y"}},
	)
	if len(sections) != 1 || sections[0].Title != "story" {
		t.Errorf("Story key must win, got %+v", sections)
	}
}

// TestParseResponseInvalid checks decode failure surfacing.
func TestParseResponseInvalid(t *testing.T) {
	if _, err := ParseResponse([]byte("not json")); err == nil {
		t.Error("Expected error for malformed body")
	}
}
