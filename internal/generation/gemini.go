// internal/generation/gemini.go
package generation

import (
	"context"
	"fmt"

	"transit-report/internal/common/config"
	"transit-report/internal/common/logger"

	"google.golang.org/genai"
)

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout int
	logger  logger.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg config.GenAIConfig, log logger.Logger) (*GeminiGenerator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  log.With(map[string]interface{}{"component": "gemini-generator", "model": cfg.Model}),
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.GetDuration(g.timeout))
		defer cancel()
	}

	genCfg := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens != nil {
		genCfg.MaxOutputTokens = int32(*req.MaxOutputTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		g.logger.Error("gemini generate failed", map[string]interface{}{"error": err.Error()})
		return "", classify(ctx, err)
	}

	return resp.Text(), nil
}
