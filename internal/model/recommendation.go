package model

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is a static retention suggestion.
type Recommendation struct {
	Icon     string   `json:"icon"`
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}
