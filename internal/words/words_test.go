package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"cat", "___"},
		{"ice cream", "___ _____"},
		{"tug of war", "___ __ ___"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(tt.word))
	}
}

func TestChooseSamplesFromList(t *testing.T) {
	options := Choose(3)
	require.Len(t, options, 3)

	for _, w := range options {
		assert.Contains(t, List, w)
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("penguin", "penguin"))
	assert.True(t, Matches("PENGUIN", "penguin"))
	assert.True(t, Matches("  penguin ", "penguin"))
	assert.False(t, Matches("pengui", "penguin"))
	assert.False(t, Matches("", "penguin"))
}

func TestIsClose(t *testing.T) {
	assert.True(t, IsClose("penguim", "penguin"), "substitution")
	assert.True(t, IsClose("pengun", "penguin"), "deletion")
	assert.True(t, IsClose("pennguin", "penguin"), "insertion")
	assert.True(t, IsClose("PENGUIM ", "penguin"), "case and whitespace ignored")
	assert.False(t, IsClose("penguin", "penguin"), "exact match is not close")
	assert.False(t, IsClose("walrus", "penguin"))
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("cat", "cat"))
	assert.Equal(t, 1, editDistance("cat", "cut"))
	assert.Equal(t, 2, editDistance("cat", "cute"))
	assert.Equal(t, 3, editDistance("", "cat"))
}

func TestRevealUncoversOneLetter(t *testing.T) {
	word := "anchor"
	masked := Mask(word)

	revealed := Reveal(word, masked)
	hidden := strings.Count(revealed, "_")
	assert.Equal(t, len(word)-1, hidden)

	for i, r := range revealed {
		if r != '_' {
			assert.Equal(t, rune(word[i]), r, "revealed letter matches the word")
		}
	}
}

func TestRevealKeepsLastLetterHidden(t *testing.T) {
	word := "cat"
	masked := Mask(word)

	for i := 0; i < 20; i++ {
		masked = Reveal(word, masked)
	}

	assert.Equal(t, 1, strings.Count(masked, "_"), "the word is never fully revealed by hints")
}

func TestRevealIgnoresLengthMismatch(t *testing.T) {
	assert.Equal(t, "__", Reveal("cat", "__"))
}
