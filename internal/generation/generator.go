// internal/generation/generator.go
package generation

import (
	"context"
	"errors"
	"fmt"
	"net"

	"transit-report/internal/common/config"
	"transit-report/internal/common/logger"
)

var (
	ErrGenerationFailed  = errors.New("text generation failed")
	ErrGenerationTimeout = errors.New("text generation timed out")
)

// Request is one text-generation call. MaxOutputTokens nil means no explicit bound.
type Request struct {
	Prompt          string `json:"prompt"`
	MaxOutputTokens *int   `json:"maxOutputTokens,omitempty"`
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// New builds the generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.GenAIConfig, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderHTTP:
		return NewHTTPGenerator(cfg, log), nil
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown genai provider %q", cfg.Provider)
	}
}

// classify maps transport errors onto ErrGenerationTimeout or ErrGenerationFailed.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
}
