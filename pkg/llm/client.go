package llm

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("llm credential not configured")
	ErrEmptyResponse = errors.New("llm returned an empty response")
	ErrSchema        = errors.New("llm response does not match schema")
)

type Tool string

const ToolWebSearch Tool = "web_search"

type Request struct {
	Prompt            string
	SystemInstruction string
	Schema            *Schema
	Tools             []Tool
	Temperature       float64
	TopP              float64
	MaxOutputTokens   int
}

func (r Request) wantsTool(t Tool) bool {
	for _, tool := range r.Tools {
		if tool == t {
			return true
		}
	}
	return false
}

// Citation is a grounding source attached by the provider to generated text.
type Citation struct {
	Title string
	URI   string
}

type Response struct {
	Text      string
	Citations []Citation
	ModelUsed string
}

// Generator is a hosted model that turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string
}
