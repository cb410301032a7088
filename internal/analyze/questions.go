package analyze

import (
	"sort"

	"dashforge/internal/domain"
)

// orderedKeys returns the map keys sorted lexicographically. Decoded JSON
// objects carry no insertion order in Go, so sorting is what keeps the
// whole pipeline deterministic.
func orderedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// domainQuestions maps a detected context id to its one domain-specific
// question. At most one of these is appended per analysis.
var domainQuestions = map[string]domain.Question{
	"github_repo": {
		ID:      "focus_area",
		Text:    "What aspect of the repository matters most?",
		Options: []string{"Code activity", "Community health", "Issues & PRs", "Releases"},
		Impact:  "sections",
	},
	"ecommerce": {
		ID:      "focus_area",
		Text:    "Which part of the business do you track?",
		Options: []string{"Sales performance", "Customer behavior", "Inventory", "Fulfillment"},
		Impact:  "sections",
	},
	"analytics": {
		ID:      "focus_area",
		Text:    "Which signal matters most?",
		Options: []string{"Traffic", "Engagement", "Conversion", "Retention"},
		Impact:  "sections",
	},
	"financial": {
		ID:      "focus_area",
		Text:    "What is the financial focus?",
		Options: []string{"Revenue", "Expenses", "Profitability", "Cash flow"},
		Impact:  "sections",
	},
	"project_management": {
		ID:      "focus_area",
		Text:    "What do you need to keep an eye on?",
		Options: []string{"Task progress", "Team workload", "Deadlines", "Blockers"},
		Impact:  "sections",
	},
	"iot": {
		ID:      "focus_area",
		Text:    "What matters most for the fleet?",
		Options: []string{"Device status", "Sensor readings", "Alerts", "Uptime"},
		Impact:  "sections",
	},
	"social_media": {
		ID:      "focus_area",
		Text:    "Which audience signal matters most?",
		Options: []string{"Audience growth", "Engagement", "Content performance", "Reach"},
		Impact:  "sections",
	},
}

// FocusKeywords maps a focus_area answer to the key fragments that mark a
// field or entity as relevant to it. The generator uses it both to filter
// metric candidates and to float matching entities to the front.
var FocusKeywords = map[string][]string{
	"Code activity":       {"commit", "push", "branch", "merge"},
	"Community health":    {"star", "fork", "contributor", "watcher"},
	"Issues & PRs":        {"issue", "pull", "pr", "review"},
	"Releases":            {"release", "tag", "version"},
	"Sales performance":   {"revenue", "sales", "order", "total"},
	"Customer behavior":   {"customer", "user", "session", "cart"},
	"Inventory":           {"stock", "inventory", "product", "sku"},
	"Fulfillment":         {"ship", "deliver", "fulfil", "return"},
	"Traffic":             {"visit", "view", "session", "pageview"},
	"Engagement":          {"engagement", "like", "comment", "share", "click"},
	"Conversion":          {"conversion", "signup", "purchase", "rate"},
	"Retention":           {"retention", "churn", "repeat"},
	"Revenue":             {"revenue", "income", "sales"},
	"Expenses":            {"expense", "cost", "spend"},
	"Profitability":       {"profit", "margin", "net"},
	"Cash flow":           {"cash", "balance", "flow"},
	"Task progress":       {"task", "done", "complete", "progress"},
	"Team workload":       {"assign", "member", "team", "capacity"},
	"Deadlines":           {"due", "deadline", "date"},
	"Blockers":            {"block", "risk", "issue"},
	"Device status":       {"device", "online", "offline", "status"},
	"Sensor readings":     {"temp", "sensor", "humidity", "reading"},
	"Alerts":              {"alert", "warn", "error"},
	"Uptime":              {"uptime", "avail"},
	"Audience growth":     {"follower", "subscriber", "audience", "growth"},
	"Content performance": {"post", "video", "content", "impression"},
	"Reach":               {"reach", "impression", "view"},
}

// GenerateQuestions builds the clarifying-question set: one universal
// priority question, at most one domain-specific question, then one
// question per detected data shape. The order is fixed.
func GenerateQuestions(contextType string, dataTypes []DataType, entities []string) []domain.Question {
	questions := []domain.Question{
		{
			ID:      "priority",
			Text:    "What is the primary focus of this dashboard?",
			Options: []string{"Overview metrics", "Detailed lists", "Activity/timeline", "All equal"},
			Impact:  "layout",
		},
	}
	if q, ok := domainQuestions[contextType]; ok {
		questions = append(questions, q)
	}
	has := func(t DataType) bool {
		for _, dt := range dataTypes {
			if dt == t {
				return true
			}
		}
		return false
	}
	if has(TypeMetrics) {
		questions = append(questions, domain.Question{
			ID:      "metric_style",
			Text:    "How should metrics be displayed?",
			Options: []string{"Simple numbers", "Cards with trends", "With charts"},
			Impact:  "metrics",
		})
	}
	if has(TypeLists) {
		questions = append(questions, domain.Question{
			ID:      "list_actions",
			Text:    "What actions should list items offer?",
			Options: []string{"Read-only", "Quick actions", "Full management"},
			Impact:  "lists",
		})
	}
	if has(TypeNested) && len(entities) > 0 {
		questions = append(questions, domain.Question{
			ID:      "chart_preference",
			Text:    "How should nested data be visualized?",
			Options: []string{"Charts/graphs", "Detailed tables", "Simple breakdown"},
			Impact:  "charts",
		})
	}
	return questions
}
