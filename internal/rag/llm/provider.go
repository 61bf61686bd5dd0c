package llm

import (
	"context"
	"errors"
)

// ErrGeneration wraps any model backend failure so callers can map it to a
// single upstream error class.
var ErrGeneration = errors.New("llm generation failed")

// Provider generates a completion for a fully assembled prompt. Prompt
// construction lives with the caller, the provider only carries the system
// instruction and transport.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
