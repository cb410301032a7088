package domain

import "time"

// Question is a clarifying question surfaced to the user before a dashboard
// is generated. Answers are collected as a map from question ID to the
// chosen option string.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Impact  string   `json:"impact"`
}

// LayoutHints carries a domain's preferred layout and what it emphasizes.
type LayoutHints struct {
	PreferredLayout string `json:"preferred_layout"`
	Emphasis        string `json:"emphasis,omitempty"`
}

// Creator values for Config.CreatedBy.
const (
	CreatedBySystem = "system"
	CreatedByAI     = "ai"
)

// Config describes a known dashboard domain. System configs are compiled
// in; AI-proposed configs are appended to the registry after the user
// confirms them and reloaded at startup.
type Config struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Keywords    []string    `json:"keywords"`
	Questions   []Question  `json:"questions,omitempty"`
	LayoutHints LayoutHints `json:"layout_hints"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}
