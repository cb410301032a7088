package domain

// SystemConfigs returns the domains that ship with the binary. They are
// matched before any persisted custom domains and never written back to the
// store.
func SystemConfigs() []Config {
	return []Config{
		{
			ID:          "github_repo",
			Name:        "GitHub Repository",
			Description: "Repository health, activity and community metrics",
			Keywords:    []string{"star", "fork", "commit", "contributor", "branch", "pull", "issue", "watcher"},
			Questions: []Question{
				{
					ID:      "priority",
					Text:    "What should the dashboard emphasize?",
					Options: []string{"Overview metrics", "Detailed lists", "Activity/timeline", "All equal"},
					Impact:  "layout",
				},
				{
					ID:      "focus_area",
					Text:    "What aspect of the repository matters most?",
					Options: []string{"Code activity", "Community health", "Issues & PRs", "Releases"},
					Impact:  "sections",
				},
			},
			LayoutHints: LayoutHints{PreferredLayout: "grid", Emphasis: "metrics"},
			CreatedBy:   CreatedBySystem,
		},
		{
			ID:          "ecommerce",
			Name:        "E-commerce Store",
			Description: "Sales, orders, customers and inventory",
			Keywords:    []string{"product", "order", "customer", "cart", "inventory", "sku", "checkout"},
			Questions: []Question{
				{
					ID:      "priority",
					Text:    "What should the dashboard emphasize?",
					Options: []string{"Overview metrics", "Detailed lists", "Activity/timeline", "All equal"},
					Impact:  "layout",
				},
				{
					ID:      "focus_area",
					Text:    "Which part of the business do you track?",
					Options: []string{"Sales performance", "Customer behavior", "Inventory", "Fulfillment"},
					Impact:  "sections",
				},
			},
			LayoutHints: LayoutHints{PreferredLayout: "grid", Emphasis: "metrics"},
			CreatedBy:   CreatedBySystem,
		},
		{
			ID:          "financial",
			Name:        "Financial Overview",
			Description: "Revenue, expenses and cash position",
			Keywords:    []string{"revenue", "expense", "profit", "balance", "transaction", "budget"},
			LayoutHints: LayoutHints{PreferredLayout: "grid", Emphasis: "metrics"},
			CreatedBy:   CreatedBySystem,
		},
		{
			ID:          "analytics",
			Name:        "Web Analytics",
			Description: "Traffic, engagement and conversion",
			Keywords:    []string{"visitor", "pageview", "session", "bounce", "conversion", "traffic"},
			LayoutHints: LayoutHints{PreferredLayout: "grid", Emphasis: "charts"},
			CreatedBy:   CreatedBySystem,
		},
		{
			ID:          "iot",
			Name:        "IoT Fleet",
			Description: "Device status, sensor readings and alerts",
			Keywords:    []string{"device", "sensor", "telemetry", "reading", "temperature", "humidity"},
			LayoutHints: LayoutHints{PreferredLayout: "grid", Emphasis: "metrics"},
			CreatedBy:   CreatedBySystem,
		},
	}
}
