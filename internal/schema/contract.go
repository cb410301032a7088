package schema

import "fmt"

// Contract lists the property names a component kind accepts and the subset
// it cannot render without. Validation is presence-only: a required prop set
// to null or to the wrong type still passes.
type Contract struct {
	AllowedProps  []string
	RequiredProps []string
}

// Contracts is the static registry of component contracts, one entry per
// kind.
var Contracts = map[Kind]Contract{
	KindContainer: {
		AllowedProps: []string{"cols", "gap", "padding"},
	},
	KindCard: {
		AllowedProps:  []string{"title", "subtitle", "colSpan", "variant"},
		RequiredProps: []string{"title"},
	},
	KindSection: {
		AllowedProps:  []string{"title", "collapsible", "defaultOpen"},
		RequiredProps: []string{"title"},
	},
	KindMetric: {
		AllowedProps:  []string{"label", "value", "icon", "trend", "format", "colSpan"},
		RequiredProps: []string{"label", "value"},
	},
	KindTable: {
		AllowedProps:  []string{"data", "columns", "pageSize", "sortable"},
		RequiredProps: []string{"data", "columns"},
	},
	KindList: {
		AllowedProps:  []string{"data", "primaryField", "secondaryField", "avatar", "actions"},
		RequiredProps: []string{"data"},
	},
	KindChart: {
		AllowedProps:  []string{"data", "type", "xField", "yField", "height", "colSpan"},
		RequiredProps: []string{"data", "type"},
	},
	KindButton: {
		AllowedProps:  []string{"label", "action", "variant", "icon"},
		RequiredProps: []string{"label"},
	},
	KindFilter: {
		AllowedProps:  []string{"field", "label", "options", "multi"},
		RequiredProps: []string{"field"},
	},
	KindTabs: {
		AllowedProps:  []string{"tabs", "defaultTab"},
		RequiredProps: []string{"tabs"},
	},
	KindBadge: {
		AllowedProps:  []string{"text", "color", "icon"},
		RequiredProps: []string{"text"},
	},
	KindProgress: {
		AllowedProps:  []string{"value", "max", "label", "color"},
		RequiredProps: []string{"value"},
	},
}

// ValidationResult carries the outcome of a schema-tree check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateSchema checks a schema tree against the contract table. It never
// returns an error value; problems accumulate as messages so callers can
// log them and still hand the tree to the renderer, which has its own
// fallbacks for malformed nodes.
func ValidateSchema(node *ComponentSchema) ValidationResult {
	errs := validateNode(node)
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateNode(node *ComponentSchema) []string {
	if node == nil {
		return []string{"schema node is nil"}
	}
	var errs []string
	contract, known := Contracts[node.Component]
	if !known {
		errs = append(errs, fmt.Sprintf("unknown component kind: %s", node.Component))
	} else {
		for _, name := range contract.RequiredProps {
			if _, ok := node.Props[name]; !ok {
				errs = append(errs, fmt.Sprintf("%s missing required prop: %s", node.Component, name))
			}
		}
	}
	for i := range node.Children {
		errs = append(errs, validateNode(&node.Children[i])...)
	}
	return errs
}
