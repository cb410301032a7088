package generate

// layoutParams derive from the priority answer and drive grid columns and
// section spans for the whole tree.
type layoutParams struct {
	Cols       int
	MetricSpan int
	ListSpan   int
}

// Priority answer values recognized by the generator.
const (
	priorityMetrics  = "Overview metrics"
	priorityLists    = "Detailed lists"
	priorityTimeline = "Activity/timeline"
	priorityDefault  = "All equal"
)

func layoutFor(priority string) layoutParams {
	switch priority {
	case priorityMetrics:
		return layoutParams{Cols: 3, MetricSpan: 3, ListSpan: 1}
	case priorityLists:
		return layoutParams{Cols: 3, MetricSpan: 2, ListSpan: 3}
	case priorityTimeline:
		return layoutParams{Cols: 2, MetricSpan: 2, ListSpan: 2}
	default:
		return layoutParams{Cols: 3, MetricSpan: 3, ListSpan: 2}
	}
}
