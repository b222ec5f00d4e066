// internal/models/research_task.go
package models

import "fmt"

// ResearchType selects how content for a template element is produced.
type ResearchType string

const (
	ResearchTypeImageGen   ResearchType = "image_gen"
	ResearchTypeImageGiven ResearchType = "image_given"
	ResearchTypeTextGen    ResearchType = "text_gen"
	ResearchTypeTextGiven  ResearchType = "text_given"
	ResearchTypeSubwayGen  ResearchType = "subway_gen"
)

// ResearchTypes lists every supported research type in declaration order.
var ResearchTypes = []ResearchType{
	ResearchTypeImageGen,
	ResearchTypeImageGiven,
	ResearchTypeTextGen,
	ResearchTypeTextGiven,
	ResearchTypeSubwayGen,
}

// ParseResearchType returns an error for anything outside the closed set.
func ParseResearchType(s string) (ResearchType, error) {
	for _, rt := range ResearchTypes {
		if string(rt) == s {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unsupported research type: %q", s)
}

// IsImage reports whether the research type fills an image region.
func (rt ResearchType) IsImage() bool {
	return rt == ResearchTypeImageGen || rt == ResearchTypeImageGiven
}

// ResearchTask is one unit of content generation bound to a template element.
type ResearchTask struct {
	BoundingBox             BoundingBox  `json:"boundingBox"`
	ReferenceElementKey     string       `json:"referenceElementKey"`
	Prompt                  string       `json:"prompt"`
	ResearchType            ResearchType `json:"researchType"`
	MaxOutputTokens         *int         `json:"maxOutputTokens"`
	RecommendedOutputTokens *int         `json:"recommendedOutputTokens"`

	// Layout hints carried over from the heuristic, used only when materializing elements.
	Slots int      `json:"slots,omitempty"`
	Inset *float64 `json:"inset,omitempty"`
}

// Chart is a caller-supplied chart reference (usually an image URL).
type Chart struct {
	ID    string `json:"id"`
	Chart string `json:"chart"`
}

// Stat is a caller-supplied statistic rendered as text.
type Stat struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// CreateResearchTaskInput is the structured preference summary produced by the conversational assistant.
// Every field is optional.
type CreateResearchTaskInput struct {
	PlanID                   string   `json:"planId,omitempty"`
	Summary                  string   `json:"summary,omitempty"`
	PreferredLine            string   `json:"preferred_line,omitempty"`
	PreferredStation         string   `json:"preferred_station,omitempty"`
	BudgetRange              string   `json:"budget_range,omitempty"`
	LifestylePreferences     []string `json:"lifestyle_preferences,omitempty"`
	AmenitiesDesired         []string `json:"amenities_desired,omitempty"`
	CommutePreferences       string   `json:"commute_preferences,omitempty"`
	AlternativeStations      []string `json:"alternative_stations,omitempty"`
	AlternativeNeighborhoods []string `json:"alternative_neighborhoods,omitempty"`
	NeighborhoodLikes        []string `json:"neighborhood_likes,omitempty"`
	NeighborhoodDislikes     []string `json:"neighborhood_dislikes,omitempty"`
	Charts                   []Chart  `json:"charts,omitempty"`
	Stats                    []Stat   `json:"stats,omitempty"`
	SubwayLines              []string `json:"subwayLines"`
}

// FindChart returns the chart value for id.
func (in *CreateResearchTaskInput) FindChart(id string) (string, bool) {
	for _, c := range in.Charts {
		if c.ID == id {
			return c.Chart, true
		}
	}
	return "", false
}

// FindStat returns the stat value for id.
func (in *CreateResearchTaskInput) FindStat(id string) (string, bool) {
	for _, s := range in.Stats {
		if s.ID == id {
			return s.Value, true
		}
	}
	return "", false
}
