// Package nanoid generates task ids.
package nanoid

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of characters used in task ids.
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// PrimaryKeySize is the length of a task id.
	PrimaryKeySize = 16
)

// PrimaryKey returns a new task id.
func PrimaryKey() string {
	return gonanoid.MustGenerate(Alphabet, PrimaryKeySize)
}

// Generate returns an id of the given size from Alphabet.
func Generate(size int) (string, error) {
	return gonanoid.Generate(Alphabet, size)
}

// IsPrimaryKey reports whether id has the shape of a generated task id.
func IsPrimaryKey(id string) bool {
	if len(id) != PrimaryKeySize {
		return false
	}
	for _, r := range id {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}
