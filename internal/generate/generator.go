package generate

import (
	"log"
	"sort"

	"dashforge/internal/analyze"
	"dashforge/internal/binding"
	"dashforge/internal/schema"
)

// Answer keys and the option values the generator branches on.
const (
	answerPriority    = "priority"
	answerFocusArea   = "focus_area"
	answerMetricStyle = "metric_style"
	answerListActions = "list_actions"
	answerChartPref   = "chart_preference"

	metricStyleSimple = "Simple numbers"
	metricStyleTrends = "Cards with trends"
	metricStyleCharts = "With charts"

	listActionsQuick = "Quick actions"
	listActionsFull  = "Full management"

	chartPrefGraphs    = "Charts/graphs"
	chartPrefTables    = "Detailed tables"
	chartPrefBreakdown = "Simple breakdown"
)

// Generate deterministically builds a component tree for the data. It never
// fails: empty input yields an empty root container. Contract violations
// are logged and the tree is returned anyway; the renderer defends itself.
func Generate(data map[string]any, analysis analyze.Analysis, answers map[string]string) *schema.ComponentSchema {
	if data == nil {
		data = map[string]any{}
	}
	if answers == nil {
		answers = map[string]string{}
	}
	lp := layoutFor(answers[answerPriority])

	var sections []schema.ComponentSchema
	if analysis.HasType(analyze.TypeMetrics) {
		if metrics := buildMetricsSection(data, answers, lp); metrics != nil {
			sections = append(sections, *metrics)
		}
	}
	sections = append(sections, buildEntitySections(data, answers, lp)...)
	sections = append(sections, buildNestedSections(data, answers)...)

	gap := "md"
	if answers[answerPriority] == priorityLists {
		gap = "lg"
	}
	root := &schema.ComponentSchema{
		Component: schema.KindContainer,
		Props:     map[string]any{"cols": lp.Cols, "gap": gap},
		Children:  sections,
	}

	if res := schema.ValidateSchema(root); !res.Valid {
		log.Printf("generate: schema validation warnings: %v", res.Errors)
	}
	return root
}

type metricCandidate struct {
	key   string // dotted path into the data
	value any
}

// buildMetricsSection collects numeric top-level values plus numeric leaves
// of all-scalar nested objects, filters them by focus area when that keeps
// at least one candidate, and wraps the Metric nodes per the metric_style
// answer. All-numeric nested objects stay out of the candidate pool when
// charts are requested; the chart pass claims them instead.
func buildMetricsSection(data map[string]any, answers map[string]string, lp layoutParams) *schema.ComponentSchema {
	var candidates []metricCandidate
	for _, key := range sortedKeys(data) {
		value := data[key]
		if isNumber(value) {
			candidates = append(candidates, metricCandidate{key: key, value: value})
			continue
		}
		nested, ok := value.(map[string]any)
		if !ok || !isScalarObject(nested) {
			continue
		}
		if isNumericObject(nested) && answers[answerChartPref] == chartPrefGraphs {
			continue
		}
		for _, nk := range sortedKeys(nested) {
			if isNumber(nested[nk]) {
				candidates = append(candidates, metricCandidate{key: key + "." + nk, value: nested[nk]})
			}
		}
	}

	if keywords, ok := analyze.FocusKeywords[answers[answerFocusArea]]; ok {
		var filtered []metricCandidate
		for _, c := range candidates {
			if matchesFocus(c.key, keywords) {
				filtered = append(filtered, c)
			}
		}
		// Never filter down to zero; an empty metrics block helps nobody.
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	withTrends := answers[answerMetricStyle] == metricStyleTrends
	metrics := make([]schema.ComponentSchema, 0, len(candidates))
	for _, c := range candidates {
		props := map[string]any{
			"label": humanizeKey(c.key),
			"value": binding.DataPrefix + c.key,
			"icon":  guessIcon(c.key),
		}
		if withTrends {
			props["trend"] = guessTrend(c.key)
		}
		metrics = append(metrics, schema.ComponentSchema{
			Component: schema.KindMetric,
			Props:     props,
		})
	}

	grid := func(maxCols int, gap string) schema.ComponentSchema {
		cols := len(metrics)
		if cols > maxCols {
			cols = maxCols
		}
		return schema.ComponentSchema{
			Component: schema.KindContainer,
			Props:     map[string]any{"cols": cols, "gap": gap},
			Children:  metrics,
		}
	}

	switch answers[answerMetricStyle] {
	case metricStyleSimple:
		return &schema.ComponentSchema{
			Component: schema.KindSection,
			Props:     map[string]any{"title": "Key Metrics", "collapsible": true},
			Children:  []schema.ComponentSchema{grid(4, "sm")},
		}
	case metricStyleCharts:
		return &schema.ComponentSchema{
			Component: schema.KindCard,
			Props:     map[string]any{"title": "Performance Overview", "colSpan": lp.MetricSpan},
			Children:  []schema.ComponentSchema{grid(3, "md")},
		}
	default:
		return &schema.ComponentSchema{
			Component: schema.KindCard,
			Props:     map[string]any{"title": "Overview", "colSpan": lp.MetricSpan},
			Children:  []schema.ComponentSchema{grid(4, "sm")},
		}
	}
}

// buildEntitySections emits one Card per array-valued entity: a Table when
// rows are wide and the user asked for detailed tables, a List otherwise.
func buildEntitySections(data map[string]any, answers map[string]string, lp layoutParams) []schema.ComponentSchema {
	entities := make([]string, 0)
	for _, key := range sortedKeys(data) {
		if _, ok := data[key].([]any); ok {
			entities = append(entities, key)
		}
	}
	if keywords, ok := analyze.FocusKeywords[answers[answerFocusArea]]; ok {
		sort.SliceStable(entities, func(i, j int) bool {
			return matchesFocus(entities[i], keywords) && !matchesFocus(entities[j], keywords)
		})
	}

	var sections []schema.ComponentSchema
	for _, key := range entities {
		arr := data[key].([]any)
		if len(arr) == 0 {
			continue
		}
		firstRow, _ := arr[0].(map[string]any)
		if len(firstRow) > 4 && answers[answerChartPref] == chartPrefTables {
			sections = append(sections, buildTableSection(key, firstRow))
			continue
		}
		sections = append(sections, buildListSection(key, firstRow, answers, lp))
	}
	return sections
}

func buildTableSection(key string, firstRow map[string]any) schema.ComponentSchema {
	cols := pickColumns(firstRow)
	columns := make([]any, 0, len(cols))
	for _, c := range cols {
		columns = append(columns, map[string]any{"field": c, "label": humanizeKey(c)})
	}
	return schema.ComponentSchema{
		Component: schema.KindCard,
		Props:     map[string]any{"title": humanizeKey(key), "colSpan": 3},
		Children: []schema.ComponentSchema{{
			Component: schema.KindTable,
			Props: map[string]any{
				"data":    binding.DataPrefix + key,
				"columns": columns,
			},
		}},
	}
}

func buildListSection(key string, firstRow map[string]any, answers map[string]string, lp layoutParams) schema.ComponentSchema {
	listProps := map[string]any{
		"data": binding.DataPrefix + key,
	}
	if primary := pickPrimaryField(firstRow); primary != "" {
		listProps["primaryField"] = primary
		if secondary := pickSecondaryField(firstRow, primary); secondary != "" {
			listProps["secondaryField"] = secondary
		}
	}
	if hasAvatarField(firstRow) {
		listProps["avatar"] = true
	}
	switch answers[answerListActions] {
	case listActionsQuick:
		listProps["actions"] = []any{"view", "edit"}
	case listActionsFull:
		listProps["actions"] = []any{"view", "edit", "delete"}
	}

	span := lp.ListSpan
	if answers[answerPriority] == priorityLists {
		span = 3
	}
	return schema.ComponentSchema{
		Component: schema.KindCard,
		Props:     map[string]any{"title": humanizeKey(key), "colSpan": span},
		Children: []schema.ComponentSchema{{
			Component: schema.KindList,
			Props:     listProps,
		}},
	}
}

// buildNestedSections turns plain-object entities into chart cards or
// breakdown tables depending on the chart preference. "Simple breakdown"
// suppresses the pass entirely.
func buildNestedSections(data map[string]any, answers map[string]string) []schema.ComponentSchema {
	pref := answers[answerChartPref]
	if pref == chartPrefBreakdown {
		return nil
	}

	var sections []schema.ComponentSchema
	for _, key := range sortedKeys(data) {
		nested, ok := data[key].(map[string]any)
		if !ok || len(nested) == 0 {
			continue
		}
		if isScalarObject(nested) && pref != chartPrefGraphs {
			// Metrics containers already surfaced through the metrics pass.
			continue
		}
		switch pref {
		case chartPrefGraphs:
			sections = append(sections, buildChartSection(key, nested, answers))
		case chartPrefTables:
			sections = append(sections, buildBreakdownSection(key, nested))
		}
	}
	return sections
}

func buildChartSection(key string, nested map[string]any, answers map[string]string) schema.ComponentSchema {
	chartType := "bar"
	if isNumericObject(nested) {
		chartType = "pie"
	}
	span := 2
	if answers[answerMetricStyle] == metricStyleCharts {
		span = 1
	}
	return schema.ComponentSchema{
		Component: schema.KindCard,
		Props:     map[string]any{"title": humanizeKey(key), "colSpan": span},
		Children: []schema.ComponentSchema{{
			Component: schema.KindChart,
			Props: map[string]any{
				"data": binding.DataPrefix + key,
				"type": chartType,
			},
		}},
	}
}

func buildBreakdownSection(key string, nested map[string]any) schema.ComponentSchema {
	metrics := make([]schema.ComponentSchema, 0, len(nested))
	for _, nk := range sortedKeys(nested) {
		metrics = append(metrics, schema.ComponentSchema{
			Component: schema.KindMetric,
			Props: map[string]any{
				"label": humanizeKey(nk),
				"value": binding.Stringify(nested[nk]),
				"icon":  "info",
			},
		})
	}
	return schema.ComponentSchema{
		Component: schema.KindCard,
		Props:     map[string]any{"title": humanizeKey(key), "colSpan": 2},
		Children: []schema.ComponentSchema{{
			Component: schema.KindContainer,
			Props:     map[string]any{"cols": 2, "gap": "sm"},
			Children:  metrics,
		}},
	}
}
