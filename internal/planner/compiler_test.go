// internal/planner/compiler_test.go
package planner

import (
	"testing"

	"transit-report/internal/catalog"
	"transit-report/internal/common/logger"
	"transit-report/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_SubwayLines(t *testing.T) {
	compiler := NewCompiler(
		createTestShapes(t, "k1"),
		createTestHeuristics(t, map[string]catalog.HeuristicEntry{
			"k1": entry(PromptSubway1, models.ResearchTypeSubwayGen),
		}),
		logger.NewNoOpLogger(),
	)

	tasks := compiler.Compile(&models.CreateResearchTaskInput{SubwayLines: []string{"A", "C"}})

	require.Len(t, tasks, 1)
	assert.Equal(t, "k1", tasks[0].ReferenceElementKey)
	assert.Equal(t, "A C", tasks[0].Prompt)
	assert.Equal(t, models.ResearchTypeSubwayGen, tasks[0].ResearchType)
	assert.Equal(t, models.BoundingBox{Width: 10, Height: 10}, tasks[0].BoundingBox)
}

func TestCompile_DropsUnresolvedPrompts(t *testing.T) {
	heuristics := createTestHeuristics(t, map[string]catalog.HeuristicEntry{
		"stats":  entry(PromptStats1, models.ResearchTypeTextGiven),
		"chart":  entry(PromptChart1, models.ResearchTypeImageGiven),
		"subway": entry(PromptSubway1, models.ResearchTypeSubwayGen),
	})
	compiler := NewCompiler(createTestShapes(t, "stats", "chart", "subway"), heuristics, logger.NewNoOpLogger())

	tasks := compiler.Compile(&models.CreateResearchTaskInput{Stats: []models.Stat{}})

	assert.Empty(t, tasks)
}

func TestCompile_EmptySubwayLinesResolveToEmptyPrompt(t *testing.T) {
	compiler := NewCompiler(
		createTestShapes(t, "k1"),
		createTestHeuristics(t, map[string]catalog.HeuristicEntry{
			"k1": entry(PromptSubway1, models.ResearchTypeSubwayGen),
		}),
		logger.NewNoOpLogger(),
	)

	tasks := compiler.Compile(&models.CreateResearchTaskInput{SubwayLines: []string{}})

	require.Len(t, tasks, 1)
	assert.Equal(t, "", tasks[0].Prompt)
}

func TestCompile_SkipsMissingAndNullHeuristics(t *testing.T) {
	heuristics := createTestHeuristics(t, map[string]catalog.HeuristicEntry{
		"kept":  entry("Describe the area.", models.ResearchTypeTextGiven),
		"no_op": {BoundingBox: models.BoundingBox{Width: 1, Height: 1}},
	})
	compiler := NewCompiler(createTestShapes(t, "missing", "no_op", "kept"), heuristics, logger.NewNoOpLogger())

	tasks := compiler.Compile(&models.CreateResearchTaskInput{})

	require.Len(t, tasks, 1)
	assert.Equal(t, "kept", tasks[0].ReferenceElementKey)
}

func TestCompile_PreservesShapeOrderAndDuplicates(t *testing.T) {
	heuristics := createTestHeuristics(t, map[string]catalog.HeuristicEntry{
		"a": entry("literal a", models.ResearchTypeTextGiven),
		"b": entry("literal b", models.ResearchTypeTextGiven),
	})
	compiler := NewCompiler(createTestShapes(t, "b", "a", "b"), heuristics, logger.NewNoOpLogger())

	tasks := compiler.Compile(&models.CreateResearchTaskInput{})

	keys := make([]string, 0, len(tasks))
	for _, task := range tasks {
		keys = append(keys, task.ReferenceElementKey)
	}
	assert.Equal(t, []string{"b", "a", "b"}, keys)
}

func TestCompile_TokenBudgetsOnlyForTextGen(t *testing.T) {
	withBudget := func(rt models.ResearchType) catalog.HeuristicEntry {
		e := entry("Write about the neighborhood.", rt)
		e.Research.MaxOutputTokens = models.IntPtr(50)
		e.Research.RecommendedOutputTokens = models.IntPtr(20)
		return e
	}
	heuristics := createTestHeuristics(t, map[string]catalog.HeuristicEntry{
		"gen":   withBudget(models.ResearchTypeTextGen),
		"given": withBudget(models.ResearchTypeTextGiven),
	})
	compiler := NewCompiler(createTestShapes(t, "gen", "given"), heuristics, logger.NewNoOpLogger())

	tasks := compiler.Compile(&models.CreateResearchTaskInput{})

	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].MaxOutputTokens)
	assert.Equal(t, 50, *tasks[0].MaxOutputTokens)
	assert.Equal(t, 20, *tasks[0].RecommendedOutputTokens)
	assert.Nil(t, tasks[1].MaxOutputTokens)
	assert.Nil(t, tasks[1].RecommendedOutputTokens)
}

func TestCompile_CarriesLayoutHints(t *testing.T) {
	inset := 4.0
	e := entry(PromptChart1, models.ResearchTypeImageGiven)
	e.Layout = &catalog.Layout{Slots: 3, Inset: &inset}
	compiler := NewCompiler(
		createTestShapes(t, "logos"),
		createTestHeuristics(t, map[string]catalog.HeuristicEntry{"logos": e}),
		logger.NewNoOpLogger(),
	)

	tasks := compiler.Compile(&models.CreateResearchTaskInput{
		Charts: []models.Chart{{ID: "chart_1", Chart: "https://img/a.png https://img/b.png"}},
	})

	require.Len(t, tasks, 1)
	assert.Equal(t, 3, tasks[0].Slots)
	require.NotNil(t, tasks[0].Inset)
	assert.Equal(t, 4.0, *tasks[0].Inset)
}

func TestCompile_IsIdempotent(t *testing.T) {
	heuristics := createTestHeuristics(t, map[string]catalog.HeuristicEntry{
		"s1": entry(PromptStats1, models.ResearchTypeTextGiven),
		"s2": entry(PromptStats2, models.ResearchTypeTextGiven),
		"c1": entry(PromptChart1, models.ResearchTypeImageGiven),
		"l1": entry(PromptSubway1, models.ResearchTypeSubwayGen),
		"g1": entry("Summarize commute options.", models.ResearchTypeTextGen),
	})
	compiler := NewCompiler(createTestShapes(t, "s1", "s2", "c1", "l1", "g1"), heuristics, logger.NewNoOpLogger())
	input := &models.CreateResearchTaskInput{
		Stats:       []models.Stat{{ID: "stats_1", Value: "42%"}, {ID: "stats_2", Value: "$2,100"}},
		Charts:      []models.Chart{{ID: "chart_1", Chart: "https://img/chart.png"}},
		SubwayLines: []string{"L", "G"},
	}

	first := compiler.Compile(input)
	second := compiler.Compile(input)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Compile not idempotent (-first +second):\n%s", diff)
	}
	assert.Len(t, first, 5)
}

func TestResolvePrompt(t *testing.T) {
	input := &models.CreateResearchTaskInput{
		Charts: []models.Chart{{ID: "chart_2", Chart: "other"}, {ID: "chart_1", Chart: "first"}, {ID: "chart_1", Chart: "second"}},
		Stats:  []models.Stat{{ID: "stats_2", Value: "7"}},
	}

	tests := []struct {
		name   string
		symbol string
		want   string
		ok     bool
	}{
		{"chart uses first match", PromptChart1, "first", true},
		{"stats_2 found", PromptStats2, "7", true},
		{"stats_1 missing", PromptStats1, "", false},
		{"subway absent", PromptSubway1, "", false},
		{"literal passes through", "Tell me about Astoria.", "Tell me about Astoria.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolvePrompt(tt.symbol, input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
