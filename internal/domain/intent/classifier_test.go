package intent_test

import (
	"testing"

	"github.com/namestorm/server/internal/domain/intent"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		previous intent.Mode
		expected intent.Mode
	}{
		{
			name:     "full domain token selects check",
			text:     "is acme.io available?",
			previous: "",
			expected: intent.ModeCheck,
		},
		{
			name:     "check verb with quoted token selects check",
			text:     `check "nebula" please`,
			previous: "",
			expected: intent.ModeCheck,
		},
		{
			name:     "check verb on a short utterance selects check",
			text:     "check nebula",
			previous: "",
			expected: intent.ModeCheck,
		},
		{
			name:     "brainstorm cue selects brainstorm",
			text:     "suggest brand names for my coffee startup",
			previous: "",
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "long descriptive utterance defaults to brainstorm",
			text:     "I am building a platform that helps independent bakers sell directly to local customers",
			previous: "",
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "french brainstorm cue",
			text:     "propose des noms de marque pour mon projet",
			previous: "",
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "continuation keeps previous check mode",
			text:     "again",
			previous: intent.ModeCheck,
			expected: intent.ModeCheck,
		},
		{
			name:     "continuation keeps previous brainstorm mode",
			text:     "more please",
			previous: intent.ModeBrainstorm,
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "french continuation keeps previous mode",
			text:     "encore",
			previous: intent.ModeBrainstorm,
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "ambiguous short utterance falls back to previous mode",
			text:     "hmm ok",
			previous: intent.ModeCheck,
			expected: intent.ModeCheck,
		},
		{
			name:     "ambiguous with no previous defaults to brainstorm",
			text:     "hmm ok",
			previous: "",
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "empty text with no previous defaults to brainstorm",
			text:     "   ",
			previous: "",
			expected: intent.ModeBrainstorm,
		},
		{
			name:     "domain token beats brainstorm cue",
			text:     "suggest something like acme.io",
			previous: "",
			expected: intent.ModeCheck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intent.Classify(tt.text, tt.previous)
			if got != tt.expected {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.text, tt.previous, got, tt.expected)
			}
		})
	}
}

func TestIsContinuationRequest(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"again", true},
		{"check again", true},
		{"more", true},
		{"recommence", true},
		{"encore une fois", true},
		{"give me way more names than you did before please", false},
		{"hello", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := intent.IsContinuationRequest(tt.text); got != tt.expected {
				t.Errorf("IsContinuationRequest(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}
