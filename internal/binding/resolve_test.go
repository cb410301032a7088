package binding

import (
	"reflect"
	"testing"
)

func sampleData() map[string]any {
	return map[string]any{
		"stars": float64(1247),
		"repo": map[string]any{
			"name":  "dashforge",
			"owner": map[string]any{"login": "acme"},
		},
		"commits": []any{
			map[string]any{"sha": "abc123"},
			map[string]any{"sha": "def456"},
		},
	}
}

func TestGetNestedValue(t *testing.T) {
	data := sampleData()
	if got := GetNestedValue(data, "repo.owner.login"); got != "acme" {
		t.Fatalf("repo.owner.login = %v", got)
	}
	if got := GetNestedValue(data, "commits[1].sha"); got != "def456" {
		t.Fatalf("commits[1].sha = %v", got)
	}
	if got := GetNestedValue(data, "repo.missing.deep"); got != nil {
		t.Fatalf("expected nil for missing intermediate, got %v", got)
	}
	if got := GetNestedValue(data, "commits[9].sha"); got != nil {
		t.Fatalf("expected nil for out-of-range index, got %v", got)
	}
	if got := GetNestedValue(nil, "a.b"); got != nil {
		t.Fatalf("expected nil for nil object, got %v", got)
	}
	if got := GetNestedValue(data, ""); got != nil {
		t.Fatalf("expected nil for empty path, got %v", got)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	obj := map[string]any{}
	SetNestedValue(obj, "a.b.c", 42)
	if got := GetNestedValue(obj, "a.b.c"); got != 42 {
		t.Fatalf("round trip = %v", got)
	}
	SetNestedValue(obj, "a.b.c", "replaced")
	if got := GetNestedValue(obj, "a.b.c"); got != "replaced" {
		t.Fatalf("overwrite = %v", got)
	}
}

func TestSetNestedValueBracketIsLiteralKey(t *testing.T) {
	obj := map[string]any{}
	SetNestedValue(obj, "items[0].name", "x")
	inner, ok := obj["items[0]"].(map[string]any)
	if !ok {
		t.Fatalf("expected literal key items[0], got %v", obj)
	}
	if inner["name"] != "x" {
		t.Fatalf("unexpected inner value: %v", inner)
	}
}

func TestResolveValue(t *testing.T) {
	data := sampleData()
	if got := ResolveValue("$data.stars", data, nil); got != float64(1247) {
		t.Fatalf("$data.stars = %v", got)
	}
	if got := ResolveValue("$data.repo.name", data, nil); got != "dashforge" {
		t.Fatalf("$data.repo.name = %v", got)
	}
	item := map[string]any{"sha": "abc123"}
	if got := ResolveValue("$item.sha", data, item); got != "abc123" {
		t.Fatalf("$item.sha = %v", got)
	}
	// $item bindings are a no-op without an item context.
	if got := ResolveValue("$item.sha", data, nil); got != "$item.sha" {
		t.Fatalf("expected pass-through without item, got %v", got)
	}
	if got := ResolveValue("plain text", data, nil); got != "plain text" {
		t.Fatalf("plain string = %v", got)
	}
	if got := ResolveValue(7, data, nil); got != 7 {
		t.Fatalf("non-string = %v", got)
	}
	if got := ResolveValue("$data.nope", data, nil); got != nil {
		t.Fatalf("missing path should resolve to nil, got %v", got)
	}
}

func TestHasBinding(t *testing.T) {
	if !HasBinding("total is $data.count today") {
		t.Fatalf("expected embedded $data binding to be detected")
	}
	if !HasBinding("$item.name") {
		t.Fatalf("expected $item binding to be detected")
	}
	if HasBinding("$datacount") {
		t.Fatalf("prefix without dot should not count")
	}
}

func TestExtractBindingsOrdering(t *testing.T) {
	got := ExtractBindings("$item.c and $data.a.b")
	want := []string{"$data.a.b", "$item.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractBindings = %v, want %v", got, want)
	}
}

func TestInterpolateTemplate(t *testing.T) {
	data := sampleData()
	got := InterpolateTemplate("${$data.repo.name} has ${$data.stars} stars", data, nil)
	if got != "dashforge has 1247 stars" {
		t.Fatalf("interpolate = %q", got)
	}
	got = InterpolateTemplate("missing: ${$data.nope}", data, nil)
	if got != "missing: " {
		t.Fatalf("missing binding should render empty, got %q", got)
	}
	item := map[string]any{"sha": "abc123"}
	got = InterpolateTemplate("commit ${ $item.sha }", data, item)
	if got != "commit abc123" {
		t.Fatalf("item interpolation = %q", got)
	}
}

func TestResolveProps(t *testing.T) {
	data := sampleData()
	props := map[string]any{
		"value": "$data.stars",
		"meta": map[string]any{
			"name": "$data.repo.name",
		},
		"tags":  []any{"$data.repo.owner.login", "static"},
		"count": 3,
	}
	got := ResolveProps(props, data, nil)
	if got["value"] != float64(1247) {
		t.Fatalf("value = %v", got["value"])
	}
	meta := got["meta"].(map[string]any)
	if meta["name"] != "dashforge" {
		t.Fatalf("meta.name = %v", meta["name"])
	}
	tags := got["tags"].([]any)
	if tags[0] != "acme" || tags[1] != "static" {
		t.Fatalf("tags = %v", tags)
	}
	if got["count"] != 3 {
		t.Fatalf("count = %v", got["count"])
	}
}

func TestResolvePropsIdempotentWithoutBindings(t *testing.T) {
	data := sampleData()
	props := map[string]any{
		"label": "Stars",
		"nested": map[string]any{
			"gap": "md",
		},
	}
	once := ResolveProps(props, data, nil)
	twice := ResolveProps(once, data, nil)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("resolution is not idempotent: %v vs %v", once, twice)
	}
}
