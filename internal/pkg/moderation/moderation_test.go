package moderation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/univoice/backend/internal/pkg/moderation"
)

// TestClassifyBlocklistedTerms verifies that text containing blocklisted terms
// is flagged regardless of which field carries the term.
func TestClassifyBlocklistedTerms(t *testing.T) {
	filter := moderation.NewDefaultFilter()

	tests := []struct {
		name        string
		heading     string
		description string
		want        bool
	}{
		{"clean text", "Fan broken", "Ceiling fan in room 101 stopped working", false},
		{"term in description", "Mess food", "this staff is useless and lazy", true},
		{"term in heading", "useless warden", "please look into this", true},
		{"case folded", "STUPID wifi", "keeps dropping", true},
		{"substring inside longer word", "Shell broken", "the window shell cracked", true}, // "hell" matches inside "Shell"
		{"empty fields", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Classify(tt.heading, tt.description))
		})
	}
}

// TestClassifyCustomTerms verifies that a configured blocklist replaces the
// stock one and that blank terms are ignored.
func TestClassifyCustomTerms(t *testing.T) {
	filter := moderation.NewFilter([]string{"  Bogus ", "", "junk"})

	assert.True(t, filter.Classify("total junk", ""))
	assert.True(t, filter.Classify("", "this is BOGUS"))
	// Stock terms no longer apply once a custom list is supplied.
	assert.False(t, filter.Classify("useless", "lazy"))
}

// TestClassifyEmptyBlocklist verifies that an empty list flags nothing.
func TestClassifyEmptyBlocklist(t *testing.T) {
	filter := moderation.NewFilter(nil)

	assert.False(t, filter.Classify("useless", "stupid idiot"))
}
