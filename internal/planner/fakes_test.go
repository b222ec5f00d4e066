// internal/planner/fakes_test.go
package planner

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"transit-report/internal/catalog"
	"transit-report/internal/generation"
	"transit-report/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type renderCall struct {
	Tool  models.JobTool
	Key   string
	Value string
}

// recordingRenderer records calls and fails for keys listed in failKeys.
type recordingRenderer struct {
	mu       sync.Mutex
	calls    []renderCall
	failKeys map[string]bool
}

func newRecordingRenderer(failKeys ...string) *recordingRenderer {
	r := &recordingRenderer{failKeys: map[string]bool{}}
	for _, k := range failKeys {
		r.failKeys[k] = true
	}
	return r
}

func (r *recordingRenderer) UpdateShape(ctx context.Context, key, content string) error {
	return r.record(renderCall{Tool: models.JobToolText, Key: key, Value: content})
}

func (r *recordingRenderer) UpdateImage(ctx context.Context, key, url string) error {
	return r.record(renderCall{Tool: models.JobToolImage, Key: key, Value: url})
}

func (r *recordingRenderer) record(call renderCall) error {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
	if r.failKeys[call.Key] {
		return fmt.Errorf("renderer rejected %s", call.Key)
	}
	return nil
}

func (r *recordingRenderer) Calls() []renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]renderCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func createTestShapes(t *testing.T, keys ...string) *catalog.ShapeCatalog {
	t.Helper()
	shapes := make([]catalog.Shape, 0, len(keys))
	for _, k := range keys {
		shapes = append(shapes, catalog.Shape{PrimaryKey: k, Value: "placeholder"})
	}
	return catalog.NewShapeCatalog(shapes)
}

func createTestHeuristics(t *testing.T, entries map[string]catalog.HeuristicEntry) *catalog.HeuristicCatalog {
	t.Helper()
	c, err := catalog.NewHeuristicCatalog(entries)
	require.NoError(t, err)
	return c
}

func entry(prompt string, rt models.ResearchType) catalog.HeuristicEntry {
	return catalog.HeuristicEntry{
		Research:    &catalog.Research{Prompt: prompt, ResearchType: rt},
		BoundingBox: models.BoundingBox{Left: 0, Top: 0, Width: 10, Height: 10},
	}
}

func createTestTask(key string, rt models.ResearchType, prompt string) models.ResearchTask {
	return models.ResearchTask{
		BoundingBox:         models.BoundingBox{Left: 0, Top: 0, Width: 100, Height: 50},
		ReferenceElementKey: key,
		Prompt:              prompt,
		ResearchType:        rt,
	}
}
