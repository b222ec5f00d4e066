// internal/planner/compiler.go
package planner

import (
	"strings"

	"transit-report/internal/catalog"
	"transit-report/internal/common/logger"
	"transit-report/internal/common/metrics"
	"transit-report/internal/models"
)

// Symbolic prompt names resolved from caller input.
const (
	PromptSubway1 = "subway_1"
	PromptChart1  = "chart_1"
	PromptStats1  = "stats_1"
	PromptStats2  = "stats_2"
)

const (
	dropNoHeuristic      = "no_heuristic"
	dropNoResearch       = "no_research"
	dropPromptUnresolved = "prompt_unresolved"
)

// Compiler joins the shape catalog with the heuristic catalog and caller input.
// It holds no mutable state and is safe for concurrent use.
type Compiler struct {
	shapes     *catalog.ShapeCatalog
	heuristics *catalog.HeuristicCatalog
	logger     logger.Logger
}

func NewCompiler(shapes *catalog.ShapeCatalog, heuristics *catalog.HeuristicCatalog, log logger.Logger) *Compiler {
	return &Compiler{
		shapes:     shapes,
		heuristics: heuristics,
		logger:     log.With(map[string]interface{}{"component": "compiler"}),
	}
}

// Compile returns one research task per shape whose heuristic and prompt both resolve,
// in shape catalog order. Duplicate shape keys yield duplicate tasks.
func (c *Compiler) Compile(input *models.CreateResearchTaskInput) []models.ResearchTask {
	tasks := make([]models.ResearchTask, 0, c.shapes.Len())
	dropped := 0

	for _, key := range c.shapes.Keys() {
		entry, ok := c.heuristics.Lookup(key)
		if !ok {
			reason := dropNoHeuristic
			if c.heuristics.Has(key) {
				reason = dropNoResearch
			}
			c.drop(key, reason)
			dropped++
			continue
		}

		prompt, ok := resolvePrompt(entry.Research.Prompt, input)
		if !ok {
			c.drop(key, dropPromptUnresolved)
			dropped++
			continue
		}

		tasks = append(tasks, newTask(key, prompt, entry))
	}

	metrics.TasksCompiled.Add(float64(len(tasks)))
	c.logger.Info("plan compiled", map[string]interface{}{
		"taskCount":    len(tasks),
		"droppedCount": dropped,
	})

	return tasks
}

func (c *Compiler) drop(key, reason string) {
	metrics.TasksDropped.WithLabelValues(reason).Inc()
	c.logger.Debug("catalog entry dropped", map[string]interface{}{
		"referenceElementKey": key,
		"reason":              reason,
	})
}

func newTask(key, prompt string, entry catalog.HeuristicEntry) models.ResearchTask {
	task := models.ResearchTask{
		BoundingBox:         entry.BoundingBox,
		ReferenceElementKey: key,
		Prompt:              prompt,
		ResearchType:        entry.Research.ResearchType,
	}

	if task.ResearchType == models.ResearchTypeTextGen {
		task.MaxOutputTokens = copyInt(entry.Research.MaxOutputTokens)
		task.RecommendedOutputTokens = copyInt(entry.Research.RecommendedOutputTokens)
	}

	if entry.Layout != nil {
		task.Slots = entry.Layout.Slots
		if entry.Layout.Inset != nil {
			inset := *entry.Layout.Inset
			task.Inset = &inset
		}
	}

	return task
}

// resolvePrompt maps a symbolic prompt onto caller input. The bool is false when the
// referenced input is absent, which drops the task.
func resolvePrompt(symbol string, input *models.CreateResearchTaskInput) (string, bool) {
	switch symbol {
	case PromptSubway1:
		if input.SubwayLines == nil {
			return "", false
		}
		return strings.Join(input.SubwayLines, " "), true
	case PromptChart1:
		return input.FindChart(PromptChart1)
	case PromptStats1, PromptStats2:
		return input.FindStat(symbol)
	default:
		return symbol, true
	}
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
