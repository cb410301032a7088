package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValidateSchemaMissingRequired(t *testing.T) {
	node := &ComponentSchema{Component: KindMetric, Props: map[string]any{}}
	res := ValidateSchema(node)
	if res.Valid {
		t.Fatalf("expected invalid result")
	}
	want := []string{
		"Metric missing required prop: label",
		"Metric missing required prop: value",
	}
	if !reflect.DeepEqual(res.Errors, want) {
		t.Fatalf("errors = %v, want %v", res.Errors, want)
	}
}

func TestValidateSchemaUnknownKind(t *testing.T) {
	node := &ComponentSchema{Component: Kind("Widget")}
	res := ValidateSchema(node)
	if res.Valid || len(res.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Errors[0] != "unknown component kind: Widget" {
		t.Fatalf("error = %q", res.Errors[0])
	}
}

func TestValidateSchemaRecursesIntoChildren(t *testing.T) {
	node := &ComponentSchema{
		Component: KindContainer,
		Props:     map[string]any{"cols": 3},
		Children: []ComponentSchema{
			{
				Component: KindCard,
				Props:     map[string]any{"title": "Overview"},
				Children: []ComponentSchema{
					{Component: KindMetric, Props: map[string]any{"label": "Stars"}},
				},
			},
		},
	}
	res := ValidateSchema(node)
	if res.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Metric missing required prop: value" {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestValidateSchemaPresenceOnly(t *testing.T) {
	// Null and wrong-typed values still count as present.
	node := &ComponentSchema{
		Component: KindMetric,
		Props:     map[string]any{"label": nil, "value": []any{}},
	}
	if res := ValidateSchema(node); !res.Valid {
		t.Fatalf("presence-only check failed: %v", res.Errors)
	}
}

func TestComponentSchemaJSONRoundTrip(t *testing.T) {
	node := &ComponentSchema{
		Component: KindCard,
		Props:     map[string]any{"title": "Activity", "colSpan": float64(2)},
		Children: []ComponentSchema{
			{Component: KindList, Props: map[string]any{"data": "$data.commits"}},
		},
	}
	raw, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ComponentSchema
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&back, node) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", back, node)
	}
}

func TestClone(t *testing.T) {
	node := &ComponentSchema{
		Component: KindContainer,
		Props:     map[string]any{"cols": float64(3)},
		Children: []ComponentSchema{
			{Component: KindBadge, Props: map[string]any{"text": "live"}},
		},
	}
	clone := node.Clone()
	if clone == nil || !reflect.DeepEqual(clone, node) {
		t.Fatalf("clone mismatch: %+v", clone)
	}
	clone.Children[0].Props["text"] = "stale"
	if node.Children[0].Props["text"] != "live" {
		t.Fatalf("clone shares state with original")
	}
}
