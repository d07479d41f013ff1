package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrDisabled is returned when no provider is configured.
var ErrDisabled = errors.New("narrative provider not configured")

const systemPrompt = "You are a financial analyst. Write a short, plain-language " +
	"assessment of the calculation result you are given. Comment on the headline " +
	"numbers, notable risks, and whether the figures look healthy. Do not invent " +
	"numbers that are not in the data. Keep it under 200 words."

// Service wraps a Provider with the timeout and isolation rules the
// calculation endpoints rely on.
type Service struct {
	provider Provider
	timeout  time.Duration
	log      zerolog.Logger
}

// NewService creates a narrative service
func NewService(provider Provider, timeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		timeout:  timeout,
		log:      log.With().Str("service", "narrative").Logger(),
	}
}

// Available reports whether commentary can be generated.
func (s *Service) Available() bool {
	return s.provider.Available()
}

// Commentary generates analyst commentary for a calculation result.
// Best-effort: any failure returns ok=false and the caller degrades to a
// null narrative with a flag. The numeric result is already computed by the
// time this runs and is never invalidated here.
func (s *Service) Commentary(ctx context.Context, kind string, result interface{}) (string, bool) {
	if !s.provider.Available() {
		return "", false
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Str("kind", kind).Msg("Failed to marshal result for narrative")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Analysis type: %s\n\nCalculation result:\n%s", kind, string(payload))
	text, err := s.provider.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("Narrative generation failed")
		return "", false
	}
	return text, true
}
