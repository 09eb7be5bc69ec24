package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestNew_MissingKeyIsUnconfigured(t *testing.T) {
	gen, err := New(context.Background(), "gemini", "", "")
	assert.Equal(t, nil, err)
	assert.Equal(t, "gemini", gen.Name())

	_, err = gen.Generate(context.Background(), Request{Prompt: "hi"})
	assert.Equal(t, true, errors.Is(err, ErrNotConfigured))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "mystery", "key", "")
	assert.NotEqual(t, nil, err)
}

func TestNew_Providers(t *testing.T) {
	gen, err := New(context.Background(), "openai", "key", "")
	assert.Equal(t, nil, err)
	assert.Equal(t, "openai", gen.Name())

	gen, err = New(context.Background(), "anthropic", "key", "")
	assert.Equal(t, nil, err)
	assert.Equal(t, "anthropic", gen.Name())
}

func TestSchemaInstruction(t *testing.T) {
	got := schemaInstruction(ObjectOfStrings("title"))
	want := "Output as JSON only, no other text. The JSON must validate against this schema:\n" +
		`{"type":"object","properties":{"title":{"type":"string"}},"required":["title"]}`
	assert.Equal(t, want, got)
}
