package generate

import (
	"sort"
	"strings"
)

// isNumber reports whether v is a numeric JSON value. Decoded JSON always
// yields float64, but data built in Go code may carry native ints.
func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint32, uint64:
		return true
	}
	return false
}

func isScalar(v any) bool {
	if isNumber(v) {
		return true
	}
	_, ok := v.(string)
	return ok
}

// isScalarObject reports whether every value in the map is a number or a
// string. Empty maps do not qualify.
func isScalarObject(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		if !isScalar(v) {
			return false
		}
	}
	return true
}

// isNumericObject reports whether every value in the map is numeric.
func isNumericObject(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		if !isNumber(v) {
			return false
		}
	}
	return true
}

// sortedKeys keeps every scan over a decoded JSON object deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// humanizeKey turns snake_case or dotted field names into a display label:
// "recent_commits" becomes "Recent Commits".
func humanizeKey(key string) string {
	fields := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '.' || r == '-' || r == ' '
	})
	for i, f := range fields {
		if f == "" {
			continue
		}
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

// iconRules map key fragments to icon names, checked in order.
var iconRules = []struct {
	fragment string
	icon     string
}{
	{"star", "star"},
	{"fork", "git-branch"},
	{"commit", "git-commit"},
	{"branch", "git-branch"},
	{"contributor", "users"},
	{"user", "users"},
	{"customer", "users"},
	{"member", "users"},
	{"follower", "users"},
	{"revenue", "dollar-sign"},
	{"sales", "dollar-sign"},
	{"income", "dollar-sign"},
	{"price", "dollar-sign"},
	{"total", "dollar-sign"},
	{"profit", "dollar-sign"},
	{"order", "shopping-cart"},
	{"product", "package"},
	{"inventory", "package"},
	{"view", "eye"},
	{"visit", "eye"},
	{"issue", "alert-circle"},
	{"error", "alert-circle"},
	{"bug", "alert-circle"},
	{"alert", "alert-circle"},
	{"task", "check-square"},
	{"device", "cpu"},
	{"sensor", "cpu"},
	{"date", "clock"},
	{"time", "clock"},
	{"uptime", "clock"},
	{"message", "message-square"},
	{"comment", "message-square"},
	{"like", "heart"},
	{"download", "download"},
}

// guessIcon picks an icon name from the field name; "info" is the default.
func guessIcon(key string) string {
	lower := strings.ToLower(key)
	for _, rule := range iconRules {
		if strings.Contains(lower, rule.fragment) {
			return rule.icon
		}
	}
	return "info"
}

var (
	trendUpFragments = []string{
		"revenue", "growth", "sales", "profit", "star", "follower",
		"subscriber", "conversion", "uptime", "fork",
	}
	trendDownFragments = []string{
		"issue", "error", "bug", "churn", "expense", "cost",
		"bounce", "fail", "downtime",
	}
)

// guessTrend classifies a metric key as trending up, down or neutral from
// keyword lists alone. It is a display hint, not a statement about the
// data.
func guessTrend(key string) string {
	lower := strings.ToLower(key)
	for _, f := range trendUpFragments {
		if strings.Contains(lower, f) {
			return "up"
		}
	}
	for _, f := range trendDownFragments {
		if strings.Contains(lower, f) {
			return "down"
		}
	}
	return "neutral"
}

// columnPriority lists field names promoted to the front of table columns.
var columnPriority = []string{"id", "name", "title", "status", "date", "total", "revenue", "count"}

const maxTableColumns = 6

// pickColumns selects up to six columns from a sample row: priority fields
// first, then the remaining keys in sorted order.
func pickColumns(row map[string]any) []string {
	var cols []string
	used := map[string]bool{}
	for _, p := range columnPriority {
		if _, ok := row[p]; ok {
			cols = append(cols, p)
			used[p] = true
		}
	}
	for _, k := range sortedKeys(row) {
		if !used[k] {
			cols = append(cols, k)
		}
	}
	if len(cols) > maxTableColumns {
		cols = cols[:maxTableColumns]
	}
	return cols
}

var (
	primaryFieldPriority   = []string{"name", "title", "label", "username", "email", "id"}
	secondaryFieldPriority = []string{"description", "status", "date", "message", "email", "role"}
	avatarFields           = []string{"name", "author", "customer", "customerName"}
)

// pickPrimaryField chooses the field a list row leads with: a preferred
// name first, then the first string field, then the first field of any
// shape.
func pickPrimaryField(row map[string]any) string {
	for _, p := range primaryFieldPriority {
		if _, ok := row[p]; ok {
			return p
		}
	}
	keys := sortedKeys(row)
	for _, k := range keys {
		if _, ok := row[k].(string); ok {
			return k
		}
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}

// pickSecondaryField chooses the supporting field: a preferred name first,
// then the first numeric field that is not the primary, then the second
// field overall.
func pickSecondaryField(row map[string]any, primary string) string {
	for _, p := range secondaryFieldPriority {
		if p == primary {
			continue
		}
		if _, ok := row[p]; ok {
			return p
		}
	}
	keys := sortedKeys(row)
	for _, k := range keys {
		if k != primary && isNumber(row[k]) {
			return k
		}
	}
	if len(keys) > 1 {
		for _, k := range keys {
			if k != primary {
				return k
			}
		}
	}
	return ""
}

func hasAvatarField(row map[string]any) bool {
	for _, f := range avatarFields {
		if _, ok := row[f]; ok {
			return true
		}
	}
	return false
}

// matchesFocus reports whether the key mentions any of the focus keywords.
func matchesFocus(key string, keywords []string) bool {
	lower := strings.ToLower(key)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
