// internal/generation/http.go
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"transit-report/internal/common/config"
	commonhttp "transit-report/internal/common/http"
	"transit-report/internal/common/logger"
)

// HTTPGenerator calls a JSON generation service: {prompt, maxOutputTokens} -> {text}.
type HTTPGenerator struct {
	client   *commonhttp.Client
	endpoint string
	apiKey   string
	logger   logger.Logger
}

func NewHTTPGenerator(cfg config.GenAIConfig, log logger.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		client:   commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + cfg.GeneratePath,
		apiKey:   cfg.APIKey,
		logger:   log.With(map[string]interface{}{"component": "http-generator"}),
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (string, error) {
	headers := map[string]string{}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}

	resp, err := g.client.PostJSON(ctx, g.endpoint, req, headers)
	if err != nil {
		return "", classify(ctx, err)
	}
	if !resp.OK() {
		g.logger.Error("generation service returned non-success", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body, &apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err)
	}

	return apiResponse.Text, nil
}
