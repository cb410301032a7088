// Package render is the visual collaborator of the schema pipeline. It
// consumes resolved schema nodes and degrades gracefully on anything
// malformed: the contract validator upstream only warns, so the renderer
// is the last line of defense.
package render

import (
	"dashforge/internal/binding"
	"dashforge/internal/schema"
)

// Renderer turns one component kind plus its resolved props and
// already-rendered children into output. Implementations must tolerate
// unknown kinds and missing required props.
type Renderer interface {
	Render(kind schema.Kind, props map[string]any, children []string) string
}

// RenderTree resolves every prop in the tree against the data context and
// renders bottom-up through r. Missing bindings resolve to nil and render
// as placeholders, never as failures.
func RenderTree(r Renderer, node *schema.ComponentSchema, data map[string]any) string {
	if r == nil || node == nil {
		return ""
	}
	children := make([]string, 0, len(node.Children))
	for i := range node.Children {
		children = append(children, RenderTree(r, &node.Children[i], data))
	}
	props := binding.ResolveProps(node.Props, data, nil)
	return r.Render(node.Component, props, children)
}
