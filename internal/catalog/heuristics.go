// internal/catalog/heuristics.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"transit-report/internal/common/errors"
	"transit-report/internal/models"
)

// Research is the generation recipe of a heuristic entry.
type Research struct {
	Prompt                  string              `json:"prompt"`
	ResearchType            models.ResearchType `json:"research_type"`
	MaxOutputTokens         *int                `json:"max_output_tokens,omitempty"`
	RecommendedOutputTokens *int                `json:"recommended_output_tokens,omitempty"`
}

// Layout carries optional materialization hints.
type Layout struct {
	Slots int      `json:"slots,omitempty"`
	Inset *float64 `json:"inset,omitempty"`
}

// HeuristicEntry binds a template element to its recipe and geometry.
// Research is nil for elements the template leaves alone.
type HeuristicEntry struct {
	Research    *Research          `json:"research"`
	BoundingBox models.BoundingBox `json:"bounding_box"`
	Layout      *Layout            `json:"layout,omitempty"`
}

// HeuristicCatalog maps primary keys to heuristic entries. It is never mutated after load.
type HeuristicCatalog struct {
	entries map[string]HeuristicEntry
}

// NewHeuristicCatalog validates research types and copies entries.
func NewHeuristicCatalog(entries map[string]HeuristicEntry) (*HeuristicCatalog, error) {
	copied := make(map[string]HeuristicEntry, len(entries))
	for key, entry := range entries {
		if entry.Research != nil {
			if _, err := models.ParseResearchType(string(entry.Research.ResearchType)); err != nil {
				return nil, errors.NewCatalogInvalidError("heuristic", fmt.Sprintf("%s: %v", key, err))
			}
		}
		copied[key] = entry
	}
	return &HeuristicCatalog{entries: copied}, nil
}

// LoadHeuristics reads and validates a heuristic document.
func LoadHeuristics(path string) (*HeuristicCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(path, err)
	}
	return ParseHeuristics(path, data)
}

// ParseHeuristics validates data against the heuristic schema and decodes it.
func ParseHeuristics(source string, data []byte) (*HeuristicCatalog, error) {
	if result := heuristicsSchema.ValidateBytes(data); !result.Valid {
		return nil, errors.NewCatalogInvalidError(source, result.Summary())
	}

	var entries map[string]HeuristicEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewCatalogInvalidError(source, err.Error())
	}
	return NewHeuristicCatalog(entries)
}

// Lookup returns the entry for key. Entries without research count as missing.
func (c *HeuristicCatalog) Lookup(key string) (HeuristicEntry, bool) {
	entry, ok := c.entries[key]
	if !ok || entry.Research == nil {
		return HeuristicEntry{}, false
	}
	return entry, true
}

// Has reports whether key is present at all, including entries without research.
func (c *HeuristicCatalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Keys returns every key, sorted.
func (c *HeuristicCatalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *HeuristicCatalog) Len() int {
	return len(c.entries)
}
