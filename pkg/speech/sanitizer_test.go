package speech

import (
	"testing"
)

func TestSanitizerClean(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple replacement",
			input:    "What the hell is that?",
			expected: "What the heck is that?",
		},
		{
			name:     "title case preserved",
			input:    "Damn, the gallery is closed.",
			expected: "Dash It, the gallery is closed.",
		},
		{
			name:     "all caps preserved",
			input:    "that is BULLSHIT",
			expected: "that is POPPYCOCK",
		},
		{
			name:     "word boundaries respected",
			input:    "the assistant passed the class",
			expected: "the assistant passed the class",
		},
		{
			name:     "clean text untouched",
			input:    "The plesiosaur was found in 1846.",
			expected: "The plesiosaur was found in 1846.",
		},
		{
			name:     "multiple words",
			input:    "damn it, this crap again",
			expected: "dash it it, this rubbish again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizerIsClean(t *testing.T) {
	s := NewSanitizer()

	if s.IsClean("what the hell") {
		t.Error("expected IsClean to be false")
	}
	if !s.IsClean("a perfectly polite sentence") {
		t.Error("expected IsClean to be true")
	}
	// Substrings of disallowed words are fine.
	if !s.IsClean("the assistant classed the passage") {
		t.Error("expected substring matches to be ignored")
	}
}
