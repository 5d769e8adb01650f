package model

// InsightType classifies a coaching insight.
type InsightType string

const (
	InsightTypeFollowUp     InsightType = "follow_up"
	InsightTypeReminder     InsightType = "reminder"
	InsightTypePattern      InsightType = "pattern"
	InsightTypeOrganization InsightType = "organization"
	InsightTypeSearch       InsightType = "search"
)

// InsightPriority ranks an insight.
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Insight is a structured, prioritized coaching suggestion surfaced
// alongside a chat response.
type Insight struct {
	Type       InsightType     `json:"type"`
	Priority   InsightPriority `json:"priority"`
	Message    string          `json:"message"`
	Suggestion string          `json:"suggestion"`
	// Set on entity-triggered insights.
	Entity string `json:"entity,omitempty"`
	// Set on pattern insights.
	Pattern   string `json:"pattern,omitempty"`
	Frequency int    `json:"frequency,omitempty"`
}
