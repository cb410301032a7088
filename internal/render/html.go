package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"dashforge/internal/binding"
	"dashforge/internal/schema"
)

// HTMLRenderer renders schema nodes into standalone HTML fragments. Each
// kind has a handler in a fixed dispatch table; unknown kinds render a
// visible error box instead of failing.
type HTMLRenderer struct{}

type htmlHandler func(r *HTMLRenderer, props map[string]any, children []string) string

var htmlHandlers = map[schema.Kind]htmlHandler{
	schema.KindContainer: (*HTMLRenderer).container,
	schema.KindCard:      (*HTMLRenderer).card,
	schema.KindSection:   (*HTMLRenderer).section,
	schema.KindMetric:    (*HTMLRenderer).metric,
	schema.KindTable:     (*HTMLRenderer).table,
	schema.KindList:      (*HTMLRenderer).list,
	schema.KindChart:     (*HTMLRenderer).chart,
	schema.KindButton:    (*HTMLRenderer).button,
	schema.KindFilter:    (*HTMLRenderer).filter,
	schema.KindTabs:      (*HTMLRenderer).tabs,
	schema.KindBadge:     (*HTMLRenderer).badge,
	schema.KindProgress:  (*HTMLRenderer).progress,
}

// Render dispatches on the component kind.
func (r *HTMLRenderer) Render(kind schema.Kind, props map[string]any, children []string) string {
	handler, ok := htmlHandlers[kind]
	if !ok {
		return fmt.Sprintf(`<div class="df-error">unknown component: %s</div>`, html.EscapeString(string(kind)))
	}
	if props == nil {
		props = map[string]any{}
	}
	return handler(r, props, children)
}

func propString(props map[string]any, key, fallback string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return fallback
	}
	return binding.Stringify(v)
}

func propInt(props map[string]any, key string, fallback int) int {
	switch v := props[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func (r *HTMLRenderer) container(props map[string]any, children []string) string {
	cols := propInt(props, "cols", 1)
	gap := propString(props, "gap", "md")
	return fmt.Sprintf(`<div class="df-grid df-cols-%d df-gap-%s">%s</div>`,
		cols, html.EscapeString(gap), strings.Join(children, ""))
}

func (r *HTMLRenderer) card(props map[string]any, children []string) string {
	title := propString(props, "title", "Untitled")
	span := propInt(props, "colSpan", 1)
	var sub string
	if s := propString(props, "subtitle", ""); s != "" {
		sub = fmt.Sprintf(`<p class="df-subtitle">%s</p>`, html.EscapeString(s))
	}
	return fmt.Sprintf(`<div class="df-card df-span-%d"><h3>%s</h3>%s%s</div>`,
		span, html.EscapeString(title), sub, strings.Join(children, ""))
}

func (r *HTMLRenderer) section(props map[string]any, children []string) string {
	title := propString(props, "title", "Section")
	if props["collapsible"] == true {
		return fmt.Sprintf(`<details class="df-section" open><summary>%s</summary>%s</details>`,
			html.EscapeString(title), strings.Join(children, ""))
	}
	return fmt.Sprintf(`<section class="df-section"><h2>%s</h2>%s</section>`,
		html.EscapeString(title), strings.Join(children, ""))
}

func (r *HTMLRenderer) metric(props map[string]any, _ []string) string {
	label := propString(props, "label", "—")
	value := propString(props, "value", "—")
	if value == "" {
		value = "—"
	}
	trend := propString(props, "trend", "")
	var trendTag string
	switch trend {
	case "up":
		trendTag = `<span class="df-trend df-up">▲</span>`
	case "down":
		trendTag = `<span class="df-trend df-down">▼</span>`
	}
	return fmt.Sprintf(`<div class="df-metric"><span class="df-label">%s</span><span class="df-value">%s</span>%s</div>`,
		html.EscapeString(label), html.EscapeString(value), trendTag)
}

func (r *HTMLRenderer) table(props map[string]any, _ []string) string {
	rows, _ := props["data"].([]any)
	columns, _ := props["columns"].([]any)

	var fields []string
	var head strings.Builder
	for _, c := range columns {
		col, ok := c.(map[string]any)
		if !ok {
			continue
		}
		field := propString(col, "field", "")
		fields = append(fields, field)
		fmt.Fprintf(&head, "<th>%s</th>", html.EscapeString(propString(col, "label", field)))
	}

	var body strings.Builder
	for _, rowAny := range rows {
		row, ok := rowAny.(map[string]any)
		if !ok {
			continue
		}
		body.WriteString("<tr>")
		for _, f := range fields {
			fmt.Fprintf(&body, "<td>%s</td>", html.EscapeString(binding.Stringify(row[f])))
		}
		body.WriteString("</tr>")
	}
	if body.Len() == 0 {
		return `<p class="df-empty">No data</p>`
	}
	return fmt.Sprintf(`<table class="df-table"><thead><tr>%s</tr></thead><tbody>%s</tbody></table>`,
		head.String(), body.String())
}

func (r *HTMLRenderer) list(props map[string]any, _ []string) string {
	rows, _ := props["data"].([]any)
	if len(rows) == 0 {
		return `<p class="df-empty">No data</p>`
	}
	primary := propString(props, "primaryField", "")
	secondary := propString(props, "secondaryField", "")

	var buf strings.Builder
	buf.WriteString(`<ul class="df-list">`)
	for _, rowAny := range rows {
		row, ok := rowAny.(map[string]any)
		if !ok {
			fmt.Fprintf(&buf, "<li>%s</li>", html.EscapeString(binding.Stringify(rowAny)))
			continue
		}
		main := binding.Stringify(row[primary])
		if main == "" {
			main = "—"
		}
		fmt.Fprintf(&buf, `<li><span class="df-primary">%s</span>`, html.EscapeString(main))
		if secondary != "" {
			fmt.Fprintf(&buf, `<span class="df-secondary">%s</span>`, html.EscapeString(binding.Stringify(row[secondary])))
		}
		buf.WriteString("</li>")
	}
	buf.WriteString("</ul>")
	return buf.String()
}

func (r *HTMLRenderer) chart(props map[string]any, _ []string) string {
	chartType := propString(props, "type", "bar")
	series, ok := props["data"].(map[string]any)
	if !ok || len(series) == 0 {
		return `<p class="df-empty">No data</p>`
	}
	// Static preview: a labeled value bar per entry stands in for a real
	// chart widget.
	var buf strings.Builder
	fmt.Fprintf(&buf, `<div class="df-chart df-chart-%s">`, html.EscapeString(chartType))
	for _, k := range sortedKeys(series) {
		fmt.Fprintf(&buf, `<div class="df-series"><span>%s</span><span>%s</span></div>`,
			html.EscapeString(k), html.EscapeString(binding.Stringify(series[k])))
	}
	buf.WriteString("</div>")
	return buf.String()
}

func (r *HTMLRenderer) button(props map[string]any, _ []string) string {
	return fmt.Sprintf(`<button class="df-button">%s</button>`,
		html.EscapeString(propString(props, "label", "Button")))
}

func (r *HTMLRenderer) filter(props map[string]any, _ []string) string {
	field := propString(props, "field", "")
	options, _ := props["options"].([]any)
	var buf strings.Builder
	fmt.Fprintf(&buf, `<select class="df-filter" name="%s">`, html.EscapeString(field))
	for _, o := range options {
		v := html.EscapeString(binding.Stringify(o))
		fmt.Fprintf(&buf, `<option value="%s">%s</option>`, v, v)
	}
	buf.WriteString("</select>")
	return buf.String()
}

func (r *HTMLRenderer) tabs(props map[string]any, children []string) string {
	tabs, _ := props["tabs"].([]any)
	var buf strings.Builder
	buf.WriteString(`<div class="df-tabs"><nav>`)
	for _, tab := range tabs {
		fmt.Fprintf(&buf, `<span class="df-tab">%s</span>`, html.EscapeString(binding.Stringify(tab)))
	}
	buf.WriteString("</nav>")
	buf.WriteString(strings.Join(children, ""))
	buf.WriteString("</div>")
	return buf.String()
}

func (r *HTMLRenderer) badge(props map[string]any, _ []string) string {
	color := propString(props, "color", "gray")
	return fmt.Sprintf(`<span class="df-badge df-%s">%s</span>`,
		html.EscapeString(color), html.EscapeString(propString(props, "text", "")))
}

func (r *HTMLRenderer) progress(props map[string]any, _ []string) string {
	value := propString(props, "value", "0")
	max := propString(props, "max", "100")
	return fmt.Sprintf(`<progress class="df-progress" value="%s" max="%s"></progress>`,
		html.EscapeString(value), html.EscapeString(max))
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;padding:24px;background:#f5f6f8;color:#1c2333}
.df-grid{display:grid;gap:16px}
.df-cols-1{grid-template-columns:1fr}
.df-cols-2{grid-template-columns:repeat(2,1fr)}
.df-cols-3{grid-template-columns:repeat(3,1fr)}
.df-cols-4{grid-template-columns:repeat(4,1fr)}
.df-span-2{grid-column:span 2}
.df-span-3{grid-column:span 3}
.df-card{background:#fff;border-radius:8px;padding:16px;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.df-metric{display:flex;flex-direction:column;gap:4px;padding:8px}
.df-metric .df-value{font-size:1.6em;font-weight:600}
.df-metric .df-label{color:#5b6472;font-size:.85em}
.df-trend.df-up{color:#1a9f5c}
.df-trend.df-down{color:#d64545}
.df-table{width:100%%;border-collapse:collapse}
.df-table th,.df-table td{text-align:left;padding:8px;border-bottom:1px solid #e4e7ec}
.df-list{list-style:none;margin:0;padding:0}
.df-list li{display:flex;justify-content:space-between;padding:8px 0;border-bottom:1px solid #e4e7ec}
.df-secondary{color:#5b6472}
.df-series{display:flex;justify-content:space-between;padding:4px 0}
.df-badge{border-radius:12px;padding:2px 10px;font-size:.8em;background:#e4e7ec}
.df-empty{color:#8a93a2;font-style:italic}
.df-error{border:1px solid #d64545;color:#d64545;padding:8px;border-radius:4px}
</style>
</head>
<body>
%s
</body>
</html>
`

// RenderDocument renders the schema tree into a self-contained HTML page
// suitable for export.
func RenderDocument(title string, node *schema.ComponentSchema, data map[string]any) string {
	body := RenderTree(&HTMLRenderer{}, node, data)
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), body)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
