package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Binding prefixes. A value string carrying one of these resolves against
// the top-level data context ($data.) or the per-row item context ($item.).
const (
	DataPrefix = "$data."
	ItemPrefix = "$item."
)

var (
	indexedSegmentRe = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
	dataBindingRe    = regexp.MustCompile(`\$data\.[\w.\[\]]+`)
	itemBindingRe    = regexp.MustCompile(`\$item\.[\w.\[\]]+`)
	templateExprRe   = regexp.MustCompile(`\$\{([^}]+)\}`)
)

// ResolveValue resolves a single prop value against the data and item
// contexts. Non-string values pass through unchanged. Detection is
// prefix-based: the binding must occupy the whole string. Strings with an
// embedded binding go through InterpolateTemplate instead.
func ResolveValue(value any, data, item map[string]any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	switch {
	case strings.HasPrefix(s, DataPrefix):
		return GetNestedValue(data, strings.TrimPrefix(s, DataPrefix))
	case strings.HasPrefix(s, ItemPrefix):
		if item == nil {
			return value
		}
		return GetNestedValue(item, strings.TrimPrefix(s, ItemPrefix))
	default:
		return value
	}
}

// GetNestedValue walks a dot-separated path through nested maps. A segment
// of the form name[idx] indexes into a slice after the map lookup; only a
// single bracket per segment is supported. A missing or nil intermediate
// yields nil rather than an error.
func GetNestedValue(obj map[string]any, path string) any {
	if obj == nil || path == "" {
		return nil
	}
	var current any = obj
	for _, seg := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if match := indexedSegmentRe.FindStringSubmatch(seg); match != nil {
			arr, ok := m[match[1]].([]any)
			if !ok {
				return nil
			}
			idx, err := strconv.Atoi(match[2])
			if err != nil || idx < 0 || idx >= len(arr) {
				return nil
			}
			current = arr[idx]
			continue
		}
		next, ok := m[seg]
		if !ok || next == nil {
			return nil
		}
		current = next
	}
	return current
}

// SetNestedValue assigns value at a dot-separated path, creating missing
// intermediate maps along the way. Unlike GetNestedValue it does not parse
// bracket indices: a segment like "items[0]" becomes a literal map key.
// The asymmetry is long-standing and kept so stored schemas round-trip.
func SetNestedValue(obj map[string]any, path string, value any) {
	if obj == nil || path == "" {
		return
	}
	segs := strings.Split(path, ".")
	current := obj
	for _, seg := range segs[:len(segs)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	current[segs[len(segs)-1]] = value
}

// HasBinding reports whether the string mentions a binding anywhere, even
// in the middle of surrounding text.
func HasBinding(value string) bool {
	return strings.Contains(value, DataPrefix) || strings.Contains(value, ItemPrefix)
}

// ExtractBindings returns every binding substring in value. All $data.
// matches come before all $item. matches regardless of their position in
// the source string; existing consumers depend on that ordering.
func ExtractBindings(value string) []string {
	var out []string
	out = append(out, dataBindingRe.FindAllString(value, -1)...)
	out = append(out, itemBindingRe.FindAllString(value, -1)...)
	return out
}

// InterpolateTemplate replaces every ${expr} occurrence by resolving the
// trimmed expression as a binding and stringifying the result. An
// unresolved expression renders as the empty string.
func InterpolateTemplate(template string, data, item map[string]any) string {
	return templateExprRe.ReplaceAllStringFunc(template, func(m string) string {
		expr := strings.TrimSpace(m[2 : len(m)-1])
		resolved := ResolveValue(expr, data, item)
		if resolved == nil {
			return ""
		}
		if s, ok := resolved.(string); ok && s == expr {
			// Not a binding; leave literal expressions untouched.
			return s
		}
		return Stringify(resolved)
	})
}

// ResolveProps produces a new prop map with every binding substituted.
// Slices are resolved element-wise and nested maps are recursed into;
// schemas are trees, so the recursion terminates.
func ResolveProps(props map[string]any, data, item map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for key, value := range props {
		out[key] = resolveAny(value, data, item)
	}
	return out
}

func resolveAny(value any, data, item map[string]any) any {
	switch v := value.(type) {
	case []any:
		resolved := make([]any, len(v))
		for i := range v {
			resolved[i] = resolveAny(v[i], data, item)
		}
		return resolved
	case map[string]any:
		return ResolveProps(v, data, item)
	default:
		return ResolveValue(value, data, item)
	}
}

// Stringify renders a resolved value for display. Floats that carry no
// fractional part print as integers so JSON-decoded numbers stay readable.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(value)
	}
}
