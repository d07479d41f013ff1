// Package narrative generates optional AI commentary for calculation
// results. It is strictly downstream of the numeric engines: a provider
// failure surfaces as a missing narrative, never as a failed calculation.
package narrative

import (
	"context"
)

// Provider is the interface for text-generation backends.
type Provider interface {
	// Generate produces narrative text for the given prompt.
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
	// Available reports whether the provider is configured and usable.
	Available() bool
}

// DisabledProvider is used when no LLM credentials are configured.
type DisabledProvider struct{}

// Generate always reports the provider as disabled.
func (DisabledProvider) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return "", ErrDisabled
}

// Available returns false.
func (DisabledProvider) Available() bool {
	return false
}
