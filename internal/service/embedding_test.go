package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmbeddingIsDeterministic(t *testing.T) {
	a := GenerateEmbedding("Tomato Soup")
	b := GenerateEmbedding("tomato soup")
	assert.Equal(t, a.Slice(), b.Slice())
	assert.Equal(t, []float32{11, 5, 5}, a.Slice())
}

func TestGenerateEmbeddingIgnoresQuantitiesAndPunctuation(t *testing.T) {
	assert.Equal(t,
		GenerateEmbedding("g tomatoes").Slice(),
		GenerateEmbedding("  400g   Tomatoes! ").Slice())
	assert.Equal(t, []float32{0, 0, 0}, GenerateEmbedding("12, 34").Slice())
}

func TestGenerateEmbeddingCountsRunes(t *testing.T) {
	// é is a letter but neither a listed vowel nor an ascii consonant
	assert.Equal(t, []float32{4, 1, 2}, GenerateEmbedding("café").Slice())
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "crème", truncate("crème", 5))
	assert.Equal(t, "crè...", truncate("crème brûlée", 3))
	assert.Equal(t, "short", truncate("short", 120))
}
