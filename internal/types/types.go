package types

import (
	"context"

	"github.com/notesage/notesage/internal/models"
)

// Core interfaces

// DocumentStore is the only capability the core needs from the vault:
// enumerate notes, read bodies, rewrite bodies. Nothing editor- or
// UI-shaped leaks below this line.
type DocumentStore interface {
	List() ([]models.Note, error)
	Read(path string) (models.Note, error)
	Write(path string, body string) error
}

// TextGenerator issues one prompt and returns one completion. It is the
// single integration point with the external generative API.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
