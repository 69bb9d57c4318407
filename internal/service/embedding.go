package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a deterministic three dimensional vector for
// recipe search: text length, vowel count and consonant count. Digits,
// punctuation and repeated spaces are dropped first, so "400g Tomatoes!"
// and "g tomatoes" land on the same point and quantities in a recipe's
// description do not pull it away from a plain word query.
func GenerateEmbedding(text string) pgvector.Vector {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	normalized := strings.Join(words, " ")

	var length, vowels, consonants float32
	for _, r := range normalized {
		length++
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
		case r >= 'a' && r <= 'z':
			consonants++
		}
	}
	return pgvector.NewVector([]float32{length, vowels, consonants})
}
