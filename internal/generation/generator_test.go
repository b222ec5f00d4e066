// internal/generation/generator_test.go
package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"transit-report/internal/common/config"
	"transit-report/internal/common/logger"
	"transit-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig(baseURL string) config.GenAIConfig {
	return config.GenAIConfig{
		Provider:     config.ProviderHTTP,
		BaseURL:      baseURL,
		GeneratePath: "/api/ai/generate",
		APIKey:       "test-key",
		Model:        "gemini-2.0-flash",
		Timeout:      2000,
	}
}

func TestHTTPGenerator_Generate(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "Quiet streets near the C train."}`))
	}))
	defer server.Close()

	g := NewHTTPGenerator(createTestConfig(server.URL), logger.NewTestLogger(t))
	text, err := g.Generate(context.Background(), Request{Prompt: "Summarize", MaxOutputTokens: models.IntPtr(50)})

	require.NoError(t, err)
	assert.Equal(t, "Quiet streets near the C train.", text)
	assert.Equal(t, "Summarize", got["prompt"])
	assert.EqualValues(t, 50, got["maxOutputTokens"])
}

func TestHTTPGenerator_OmitsNilBudget(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"text": "ok"}`))
	}))
	defer server.Close()

	g := NewHTTPGenerator(createTestConfig(server.URL), logger.NewNoOpLogger())
	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.NotContains(t, body, "maxOutputTokens")
}

func TestHTTPGenerator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout int
		wantErr error
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ErrGenerationFailed,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr: ErrGenerationFailed,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			},
			timeout: 50,
			wantErr: ErrGenerationTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			cfg := createTestConfig(server.URL)
			if tt.timeout > 0 {
				cfg.Timeout = tt.timeout
			}
			g := NewHTTPGenerator(cfg, logger.NewNoOpLogger())

			_, err := g.Generate(context.Background(), Request{Prompt: "p"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGeminiGenerator_Generate(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "Leafy and walkable."}]}}]}`))
	}))
	defer server.Close()

	cfg := createTestConfig(server.URL)
	cfg.Provider = config.ProviderGemini

	g, err := New(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), Request{Prompt: "Describe", MaxOutputTokens: models.IntPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, "Leafy and walkable.", text)

	genCfg, ok := body["generationConfig"].(map[string]interface{})
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.EqualValues(t, 50, genCfg["maxOutputTokens"])
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := createTestConfig("http://unused")
	cfg.Provider = "openai"
	_, err := New(context.Background(), cfg, logger.NewNoOpLogger())
	assert.Error(t, err)
}
