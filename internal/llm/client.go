package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrInvalidJSON is returned when the model produced no usable JSON
// payload.
var ErrInvalidJSON = errors.New("llm: invalid JSON from model")

// Client is the minimal surface the pipeline needs from a language model:
// a single prompt in, a JSON document out.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}
