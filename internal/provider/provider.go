// Package provider abstracts the language-model backends that polish
// reply text. Providers register by id in a Registry; conversations can
// be bound to a specific provider, with a global default as fallback.
package provider

import (
	"context"
	"errors"
)

// Provider is the minimal text-completion capability the rewriter
// needs. Implementations must honor ctx cancellation and deadlines.
type Provider interface {
	ID() string
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrEmptyCompletion is returned when a provider answers successfully
// but with no usable text.
var ErrEmptyCompletion = errors.New("provider returned empty completion")
