package schema

import "encoding/json"

// Kind identifies one of the fixed component kinds a dashboard schema may
// use. The set is closed; the renderer and the contract table both key on
// it.
type Kind string

const (
	KindContainer Kind = "Container"
	KindCard      Kind = "Card"
	KindSection   Kind = "Section"
	KindMetric    Kind = "Metric"
	KindTable     Kind = "Table"
	KindList      Kind = "List"
	KindChart     Kind = "Chart"
	KindButton    Kind = "Button"
	KindFilter    Kind = "Filter"
	KindTabs      Kind = "Tabs"
	KindBadge     Kind = "Badge"
	KindProgress  Kind = "Progress"
)

// Kinds lists every known component kind in registry order.
var Kinds = []Kind{
	KindContainer, KindCard, KindSection, KindMetric,
	KindTable, KindList, KindChart, KindButton,
	KindFilter, KindTabs, KindBadge, KindProgress,
}

// ComponentSchema is one node of the declarative dashboard tree. Prop
// values are restricted to JSON-representable types plus binding strings
// ($data.* / $item.*), so a tree round-trips through plain JSON with no
// loss.
type ComponentSchema struct {
	Component Kind              `json:"component"`
	Props     map[string]any    `json:"props,omitempty"`
	Children  []ComponentSchema `json:"children,omitempty"`
}

// Clone returns a deep copy of the node via a JSON round trip. Prop values
// are JSON-shaped by contract, so nothing is lost; numeric props come back
// as float64 either way.
func (s *ComponentSchema) Clone() *ComponentSchema {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	var out ComponentSchema
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}
