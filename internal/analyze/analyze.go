package analyze

import (
	"strings"

	"dashforge/internal/domain"
)

// DataType tags the broad shapes found among an input's top-level values.
type DataType string

const (
	TypeMetrics  DataType = "metrics"
	TypeLists    DataType = "lists"
	TypeNested   DataType = "nested"
	TypeTimeline DataType = "timeline"
)

// Suggested layouts.
const (
	LayoutGrid         = "grid"
	LayoutSingleColumn = "single-column"
	LayoutTabs         = "tabs"
)

// Analysis is what the analyzer hands to the schema generator.
type Analysis struct {
	DataTypes       []DataType        `json:"data_types"`
	Entities        []string          `json:"entities"`
	SuggestedLayout string            `json:"suggested_layout"`
	DetectedContext string            `json:"detected_context"`
	Questions       []domain.Question `json:"questions"`
	MatchedDomain   *domain.Config    `json:"matched_domain,omitempty"`
}

// HasType reports whether the analysis carries the given tag.
func (a Analysis) HasType(t DataType) bool {
	for _, dt := range a.DataTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Analyzer classifies arbitrary JSON-shaped input without any external
// call. The domain registry is injected so tests can swap it out.
type Analyzer struct {
	Domains *domain.Registry
}

// NewAnalyzer returns an analyzer bound to the given registry. A nil
// registry is allowed; domain matching is then skipped.
func NewAnalyzer(domains *domain.Registry) *Analyzer {
	return &Analyzer{Domains: domains}
}

// AnalyzeContext accepts either a raw data object or a {type, data}
// wrapper, classifies the data, resolves the domain and proposes a layout
// and a question set. It is total: an empty object produces an empty but
// valid analysis.
func (a *Analyzer) AnalyzeContext(input any, customDomain *domain.Config) Analysis {
	data, providedType := unwrapInput(input)

	dataTypes := DetectDataTypes(data)

	matched := customDomain
	if matched == nil && a != nil && a.Domains != nil {
		matched = a.Domains.Match(data)
	}

	entities := detectEntities(data)

	detected := ""
	switch {
	case matched != nil:
		detected = matched.ID
	case providedType != "":
		detected = providedType
	default:
		detected = DetectContextType(data)
	}

	layout := suggestLayout(matched, dataTypes, len(entities))

	questions := GenerateQuestions(detected, dataTypes, entities)
	if matched != nil && len(matched.Questions) > 0 {
		questions = append([]domain.Question(nil), matched.Questions...)
	}

	return Analysis{
		DataTypes:       dataTypes,
		Entities:        entities,
		SuggestedLayout: layout,
		DetectedContext: detected,
		Questions:       questions,
		MatchedDomain:   matched,
	}
}

func unwrapInput(input any) (map[string]any, string) {
	m, ok := input.(map[string]any)
	if !ok {
		return map[string]any{}, ""
	}
	if inner, ok := m["data"].(map[string]any); ok {
		providedType, _ := m["type"].(string)
		return inner, providedType
	}
	return m, ""
}

// DetectDataTypes tags each top-level value: numbers are metrics, arrays
// are lists (plus timeline when rows carry a date-ish key), and plain
// objects are timeline or nested depending on their own keys. Tags are
// deduplicated in first-seen order.
func DetectDataTypes(data map[string]any) []DataType {
	var out []DataType
	seen := map[DataType]bool{}
	add := func(t DataType) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, key := range orderedKeys(data) {
		switch v := data[key].(type) {
		case float64, int, int64, float32:
			add(TypeMetrics)
		case []any:
			add(TypeLists)
			if anyElementHasDateKey(v) {
				add(TypeTimeline)
			}
		case map[string]any:
			if hasDateKey(v) {
				add(TypeTimeline)
			} else {
				add(TypeNested)
			}
		}
	}
	return out
}

var dateKeys = []string{"date", "time", "timestamp"}

func hasDateKey(m map[string]any) bool {
	for _, k := range dateKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func anyElementHasDateKey(arr []any) bool {
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok && hasDateKey(m) {
			return true
		}
	}
	return false
}

// contextRule pairs a context id with the top-level keys that signal it.
// Order is the match priority. The financial rule additionally refuses any
// key set mentioning products, so storefront data stays ecommerce.
type contextRule struct {
	id       string
	keywords []string
}

var contextRules = []contextRule{
	{"github_repo", []string{"stars", "forks", "commits", "contributors", "watchers", "branches", "pull_requests"}},
	{"ecommerce", []string{"products", "orders", "customers", "cart", "checkout", "inventory"}},
	{"analytics", []string{"visitors", "pageviews", "sessions", "bounce_rate", "conversions", "traffic"}},
	{"financial", []string{"revenue", "expenses", "profit", "balance", "transactions", "budget"}},
	{"project_management", []string{"tasks", "projects", "milestones", "sprints", "backlog", "assignees"}},
	{"iot", []string{"devices", "sensors", "readings", "telemetry", "temperature", "humidity"}},
	{"social_media", []string{"followers", "posts", "likes", "shares", "comments", "engagement"}},
}

// DetectContextType guesses a context id from the top-level key names
// alone. The first rule with an exact key hit wins; "generic" is the
// default.
func DetectContextType(data map[string]any) string {
	keys := make([]string, 0, len(data))
	hasProduct := false
	for k := range data {
		lower := strings.ToLower(k)
		keys = append(keys, lower)
		if strings.Contains(lower, "product") {
			hasProduct = true
		}
	}
	for _, rule := range contextRules {
		if rule.id == "financial" && hasProduct {
			continue
		}
		for _, kw := range rule.keywords {
			for _, key := range keys {
				if key == kw {
					return rule.id
				}
			}
		}
	}
	return "generic"
}

func detectEntities(data map[string]any) []string {
	var out []string
	for _, key := range orderedKeys(data) {
		switch data[key].(type) {
		case []any, map[string]any:
			out = append(out, key)
		}
	}
	return out
}

func suggestLayout(matched *domain.Config, dataTypes []DataType, entityCount int) string {
	if matched != nil && matched.LayoutHints.PreferredLayout != "" {
		return matched.LayoutHints.PreferredLayout
	}
	has := func(t DataType) bool {
		for _, dt := range dataTypes {
			if dt == t {
				return true
			}
		}
		return false
	}
	switch {
	case len(dataTypes) == 1 && dataTypes[0] == TypeLists:
		return LayoutSingleColumn
	case entityCount > 5:
		return LayoutTabs
	case has(TypeMetrics) && entityCount <= 2:
		return LayoutGrid
	default:
		return LayoutGrid
	}
}
