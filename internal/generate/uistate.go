package generate

import (
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"dashforge/internal/schema"
	"dashforge/internal/util/jsonutil"
)

// Diff records one evolution step applied to a UI state. The path is kept
// for audit even though only root-level appends are applied today.
type Diff struct {
	Operation string                  `json:"operation"`
	Path      string                  `json:"path"`
	Value     *schema.ComponentSchema `json:"value,omitempty"`
}

// HistoryEntry is one append-only history record.
type HistoryEntry struct {
	Version   string    `json:"version"`
	Diff      Diff      `json:"diff"`
	Timestamp time.Time `json:"timestamp"`
}

// UIState wraps a generated schema with versioning and an evolution
// history.
type UIState struct {
	Version     string                  `json:"version"`
	ContextHash string                  `json:"context_hash"`
	Schema      *schema.ComponentSchema `json:"schema"`
	CreatedAt   time.Time               `json:"created_at"`
	History     []HistoryEntry          `json:"history"`
}

// CreateUIState wraps a freshly generated schema. The context hash is a
// pure function of the serialized input, so identical inputs always share
// a hash.
func CreateUIState(input any, s *schema.ComponentSchema) *UIState {
	return &UIState{
		Version:     "1.0.0",
		ContextHash: ContextHash(input),
		Schema:      s,
		CreatedAt:   time.Now(),
		History:     []HistoryEntry{},
	}
}

// ContextHash digests the JSON encoding of the input with a 32-bit rolling
// hash and renders it as 12 base-36 characters.
func ContextHash(input any) string {
	raw, err := jsonutil.MarshalNoEscape(input)
	if err != nil {
		raw = []byte("null")
	}
	var h int32
	for _, b := range raw {
		h = h*31 + int32(b)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	enc := strconv.FormatInt(v, 36)
	if len(enc) < 12 {
		enc = strings.Repeat("0", 12-len(enc)) + enc
	}
	return enc[:12]
}

// EvolveUI appends a history entry and bumps the patch version. The only
// structural operation applied today is "add" with a value, which appends
// the node to the root's children; the path argument is recorded but not
// used for targeting.
func EvolveUI(state *UIState, operation, path string, value *schema.ComponentSchema) {
	if state == nil {
		return
	}
	state.History = append(state.History, HistoryEntry{
		Version:   state.Version,
		Diff:      Diff{Operation: operation, Path: path, Value: value},
		Timestamp: time.Now(),
	})
	if operation == "add" && value != nil && state.Schema != nil {
		state.Schema.Children = append(state.Schema.Children, *value)
	}
	state.Version = bumpPatch(state.Version)
}

func bumpPatch(version string) string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "1.0.1"
	}
	next := v.IncPatch()
	return next.String()
}
