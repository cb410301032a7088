package generate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dashforge/internal/analyze"
	"dashforge/internal/schema"
)

func githubData() map[string]any {
	return map[string]any{
		"stars": float64(1247),
		"forks": float64(89),
		"recent_commits": []any{
			map[string]any{"sha": "a1", "message": "fix parser", "date": "2026-08-01"},
			map[string]any{"sha": "b2", "message": "add cache", "date": "2026-08-02"},
			map[string]any{"sha": "c3", "message": "bump deps", "date": "2026-08-03"},
		},
		"contributors": []any{
			map[string]any{"name": "lee", "commits": float64(40)},
			map[string]any{"name": "kim", "commits": float64(25)},
			map[string]any{"name": "cho", "commits": float64(12)},
		},
		"languages": map[string]any{
			"TypeScript": float64(65),
			"Python":     float64(30),
			"Shell":      float64(5),
		},
	}
}

func TestGenerateGithubDashboard(t *testing.T) {
	data := githubData()
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	answers := map[string]string{
		"priority":         "Overview metrics",
		"metric_style":     "Cards with trends",
		"list_actions":     "Quick actions",
		"chart_preference": "Charts/graphs",
	}

	root := Generate(data, analysis, answers)
	require.Equal(t, schema.KindContainer, root.Component)
	require.Equal(t, 3, root.Props["cols"])
	require.Len(t, root.Children, 4)

	overview := root.Children[0]
	require.Equal(t, schema.KindCard, overview.Component)
	require.Equal(t, "Overview", overview.Props["title"])
	require.Equal(t, 3, overview.Props["colSpan"])
	require.Len(t, overview.Children, 1)

	grid := overview.Children[0]
	require.Equal(t, schema.KindContainer, grid.Component)
	require.Len(t, grid.Children, 2)
	labels := map[string]string{}
	for _, m := range grid.Children {
		require.Equal(t, schema.KindMetric, m.Component)
		require.Contains(t, []any{"up", "down", "neutral"}, m.Props["trend"])
		labels[m.Props["label"].(string)] = m.Props["value"].(string)
	}
	require.Equal(t, map[string]string{
		"Forks": "$data.forks",
		"Stars": "$data.stars",
	}, labels)

	// Entity list sections, in sorted key order.
	contributors := root.Children[1]
	require.Equal(t, "Contributors", contributors.Props["title"])
	list := contributors.Children[0]
	require.Equal(t, schema.KindList, list.Component)
	require.Equal(t, "$data.contributors", list.Props["data"])
	require.Equal(t, "name", list.Props["primaryField"])
	require.Equal(t, true, list.Props["avatar"])
	require.Equal(t, []any{"view", "edit"}, list.Props["actions"])

	commits := root.Children[2]
	require.Equal(t, "Recent Commits", commits.Props["title"])
	require.Equal(t, "$data.recent_commits", commits.Children[0].Props["data"])

	chart := root.Children[3]
	require.Equal(t, schema.KindCard, chart.Component)
	require.Equal(t, "Languages", chart.Props["title"])
	require.Equal(t, 2, chart.Props["colSpan"])
	inner := chart.Children[0]
	require.Equal(t, schema.KindChart, inner.Component)
	require.Equal(t, "pie", inner.Props["type"])
	require.Equal(t, "$data.languages", inner.Props["data"])

	require.True(t, schema.ValidateSchema(root).Valid)
}

func TestGenerateEmptyInput(t *testing.T) {
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(map[string]any{}, nil)
	root := Generate(map[string]any{}, analysis, nil)
	if root == nil || root.Component != schema.KindContainer {
		t.Fatalf("expected empty container root, got %+v", root)
	}
	if len(root.Children) != 0 {
		t.Fatalf("expected no sections, got %d", len(root.Children))
	}
}

func TestGenerateFocusFilterKeepsAtLeastOneMetric(t *testing.T) {
	data := map[string]any{
		"stars":       float64(10),
		"forks":       float64(3),
		"open_issues": float64(7),
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)

	// "Community health" keywords match stars and forks but not issues.
	root := Generate(data, analysis, map[string]string{"focus_area": "Community health"})
	grid := root.Children[0].Children[0]
	if len(grid.Children) != 2 {
		t.Fatalf("expected focus filter to keep 2 metrics, got %d", len(grid.Children))
	}

	// A focus with no matching keys must not filter everything away.
	root = Generate(data, analysis, map[string]string{"focus_area": "Sensor readings"})
	grid = root.Children[0].Children[0]
	if len(grid.Children) != 3 {
		t.Fatalf("expected filter to be skipped, got %d metrics", len(grid.Children))
	}
}

func TestGenerateMetricStyleWrappers(t *testing.T) {
	data := map[string]any{"revenue": float64(50000)}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)

	simple := Generate(data, analysis, map[string]string{"metric_style": "Simple numbers"})
	section := simple.Children[0]
	if section.Component != schema.KindSection || section.Props["title"] != "Key Metrics" {
		t.Fatalf("simple style = %+v", section)
	}
	if section.Props["collapsible"] != true {
		t.Fatalf("expected collapsible section")
	}

	charts := Generate(data, analysis, map[string]string{"metric_style": "With charts"})
	card := charts.Children[0]
	if card.Props["title"] != "Performance Overview" {
		t.Fatalf("charts style = %+v", card)
	}
}

func TestGenerateFlattensScalarObjects(t *testing.T) {
	data := map[string]any{
		"uptime": float64(99.9),
		"build_info": map[string]any{
			"duration_sec": float64(142),
			"status":       "green",
		},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, nil)
	grid := root.Children[0].Children[0]
	labels := map[string]bool{}
	for _, m := range grid.Children {
		labels[m.Props["label"].(string)] = true
	}
	// Only the numeric nested entry becomes a metric; the string entry
	// just passes the all-scalar gate.
	if !labels["Build Info Duration Sec"] || !labels["Uptime"] || len(labels) != 2 {
		t.Fatalf("labels = %v", labels)
	}
}

func TestGenerateDetailedTables(t *testing.T) {
	data := map[string]any{
		"orders": []any{
			map[string]any{
				"id": "o-1", "name": "Widget", "status": "paid",
				"total": float64(25), "date": "2026-08-01", "region": "EU",
			},
		},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, map[string]string{"chart_preference": "Detailed tables"})
	card := root.Children[0]
	require.Equal(t, 3, card.Props["colSpan"])
	table := card.Children[0]
	require.Equal(t, schema.KindTable, table.Component)
	require.Equal(t, "$data.orders", table.Props["data"])
	cols := table.Props["columns"].([]any)
	require.Len(t, cols, 6)
	first := cols[0].(map[string]any)
	require.Equal(t, "id", first["field"])
}

func TestGenerateNarrowRowsStayLists(t *testing.T) {
	data := map[string]any{
		"tasks": []any{
			map[string]any{"title": "ship it", "status": "open"},
		},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, map[string]string{"chart_preference": "Detailed tables"})
	if root.Children[0].Children[0].Component != schema.KindList {
		t.Fatalf("rows with few fields should stay a list")
	}
}

func TestGenerateBreakdownTables(t *testing.T) {
	// Non-scalar nested objects survive the metrics-container skip and
	// become a breakdown card under "Detailed tables".
	data := map[string]any{
		"deployment": map[string]any{
			"version": "1.2.3",
			"regions": []any{"eu", "us"},
		},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, map[string]string{"chart_preference": "Detailed tables"})
	require.Len(t, root.Children, 1)
	breakdown := root.Children[0]
	require.Equal(t, "Deployment", breakdown.Props["title"])
	grid := breakdown.Children[0]
	require.Equal(t, schema.KindContainer, grid.Component)
	require.Len(t, grid.Children, 2)
	for _, m := range grid.Children {
		require.Equal(t, schema.KindMetric, m.Component)
		require.Equal(t, "info", m.Props["icon"])
	}
}

func TestGenerateMetricsContainersSkippedWithoutCharts(t *testing.T) {
	// An all-scalar nested object belongs to the metrics pass; the nested
	// pass only claims it for pie charts.
	data := map[string]any{
		"stars":     float64(3),
		"languages": map[string]any{"Go": float64(80), "Shell": float64(20)},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, map[string]string{"chart_preference": "Detailed tables"})
	require.Len(t, root.Children, 1)
	grid := root.Children[0].Children[0]
	require.Len(t, grid.Children, 3) // stars + two flattened languages
}

func TestGenerateSimpleBreakdownSuppressesNestedSections(t *testing.T) {
	data := map[string]any{
		"profile": map[string]any{"bio": "hi", "links": []any{"a"}},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, map[string]string{"chart_preference": "Simple breakdown"})
	if len(root.Children) != 0 {
		t.Fatalf("expected no sections, got %d", len(root.Children))
	}
}

func TestGenerateDetailedListsLayout(t *testing.T) {
	data := map[string]any{
		"items": []any{map[string]any{"name": "a"}},
	}
	analysis := analyze.NewAnalyzer(nil).AnalyzeContext(data, nil)
	root := Generate(data, analysis, map[string]string{"priority": "Detailed lists"})
	if root.Props["gap"] != "lg" {
		t.Fatalf("gap = %v", root.Props["gap"])
	}
	if root.Children[0].Props["colSpan"] != 3 {
		t.Fatalf("list colSpan = %v", root.Children[0].Props["colSpan"])
	}
}

func TestGuessHelpers(t *testing.T) {
	if guessIcon("stars") != "star" {
		t.Fatalf("icon for stars = %q", guessIcon("stars"))
	}
	if guessIcon("whatever") != "info" {
		t.Fatalf("default icon = %q", guessIcon("whatever"))
	}
	if guessTrend("monthly_revenue") != "up" {
		t.Fatalf("trend for revenue = %q", guessTrend("monthly_revenue"))
	}
	if guessTrend("open_issues") != "down" {
		t.Fatalf("trend for issues = %q", guessTrend("open_issues"))
	}
	if guessTrend("plain_count") != "neutral" {
		t.Fatalf("trend default = %q", guessTrend("plain_count"))
	}
	if humanizeKey("recent_commits") != "Recent Commits" {
		t.Fatalf("humanize = %q", humanizeKey("recent_commits"))
	}
}
