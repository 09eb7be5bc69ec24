// Package gateway is the boundary to the hosted model. Every operation is
// total: failures come back as a renderable fallback plus an Outcome, never
// as an error.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/kevo-dev/Portfolio2/internal/model"
	"github.com/kevo-dev/Portfolio2/internal/profile"
	"github.com/kevo-dev/Portfolio2/pkg/llm"
)

const (
	FallbackReply     = "Something went wrong. Please try again later."
	EmptyReply        = "I'm sorry, I couldn't process that request."
	ConfigErrorReply  = "The assistant is not configured right now. Please try again later."
	FallbackExpansion = "Expansion failed due to neural connectivity issues."
	ConfigErrorExpand = "Article expansion is not configured right now."
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeConfigError
	OutcomeTransportError
	OutcomeSchemaError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeConfigError:
		return "configuration_error"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeSchemaError:
		return "schema_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Reply struct {
	Text    string
	Outcome Outcome
}

type FeedResult struct {
	Articles []model.Article
	Outcome  Outcome
}

type Expansion struct {
	Content string
	Sources []model.Source
	Outcome Outcome
}

type Gateway struct {
	gen      llm.Generator
	profile  *profile.Profile
	feedSize int
	likes    func() int
	newID    func() string
}

type Option func(*Gateway)

func WithFeedSize(n int) Option {
	return func(g *Gateway) {
		g.feedSize = n
	}
}

// WithLikeSeed replaces the random like-count seed.
func WithLikeSeed(fn func() int) Option {
	return func(g *Gateway) {
		g.likes = fn
	}
}

func WithIDs(fn func() string) Option {
	return func(g *Gateway) {
		g.newID = fn
	}
}

func New(gen llm.Generator, p *profile.Profile, opts ...Option) *Gateway {
	g := &Gateway{
		gen:      gen,
		profile:  p,
		feedSize: model.DefaultFeedSize,
		likes: func() int {
			return model.MinSeedLikes + rand.IntN(model.MaxSeedLikes-model.MinSeedLikes)
		},
		newID: func() string {
			return uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) Converse(ctx context.Context, message string) Reply {
	resp, err := g.generate(ctx, llm.Request{
		Prompt:            message,
		SystemInstruction: personaInstruction(g.profile),
		Temperature:       0.7,
		TopP:              0.95,
		MaxOutputTokens:   500,
	})
	if errors.Is(err, llm.ErrEmptyResponse) {
		return Reply{Text: EmptyReply, Outcome: OutcomeOK}
	}
	if err != nil {
		outcome := classify(err)
		slog.Error("error generating chat reply", "provider", g.gen.Name(), "outcome", outcome, "error", err)
		if outcome == OutcomeConfigError {
			return Reply{Text: ConfigErrorReply, Outcome: outcome}
		}
		return Reply{Text: FallbackReply, Outcome: outcome}
	}

	return Reply{Text: resp.Text, Outcome: OutcomeOK}
}

type feedItem struct {
	Title    *string `json:"title"`
	Summary  *string `json:"summary"`
	Date     *string `json:"date"`
	Category *string `json:"category"`
}

var feedSchema = llm.ArrayOf(llm.ObjectOfStrings("title", "summary", "date", "category"))

func (g *Gateway) SynthesizeFeed(ctx context.Context) FeedResult {
	resp, err := g.generate(ctx, llm.Request{
		Prompt:      feedPrompt(g.feedSize),
		Schema:      feedSchema,
		Temperature: 1.0,
	})
	if err != nil {
		outcome := classify(err)
		slog.Error("error synthesizing feed", "provider", g.gen.Name(), "outcome", outcome, "error", err)
		return FeedResult{Articles: []model.Article{}, Outcome: outcome}
	}

	items, err := parseFeed(resp.Text)
	if err != nil {
		slog.Error("error parsing synthesized feed", "provider", g.gen.Name(), "error", err)
		return FeedResult{Articles: []model.Article{}, Outcome: OutcomeSchemaError}
	}

	articles := make([]model.Article, 0, len(items))
	for _, it := range items {
		articles = append(articles, model.Article{
			ID:        g.newID(),
			Title:     *it.Title,
			Summary:   *it.Summary,
			Date:      normalizeDate(*it.Date),
			Category:  *it.Category,
			SourceURL: sourceFor(*it.Title, resp.Citations),
			LikeCount: g.likes(),
			Comments:  []model.Comment{},
		})
	}

	return FeedResult{Articles: articles, Outcome: OutcomeOK}
}

func parseFeed(text string) ([]feedItem, error) {
	var items []feedItem
	if err := json.Unmarshal([]byte(llm.CleanJSON(text)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrSchema, err)
	}

	for i, it := range items {
		if it.Title == nil || it.Summary == nil || it.Date == nil || it.Category == nil {
			return nil, fmt.Errorf("%w: item %d is missing a required field", llm.ErrSchema, i)
		}
	}
	return items, nil
}

func (g *Gateway) ExpandArticle(ctx context.Context, title, summary, sourceURL string) Expansion {
	resp, err := g.generate(ctx, llm.Request{
		Prompt:      expandPrompt(g.profile.Owner, title, summary, sourceURL),
		Tools:       []llm.Tool{llm.ToolWebSearch},
		Temperature: 0.8,
	})
	if err != nil {
		outcome := classify(err)
		slog.Error("error expanding article", "provider", g.gen.Name(), "title", title, "outcome", outcome, "error", err)
		content := FallbackExpansion
		if outcome == OutcomeConfigError {
			content = ConfigErrorExpand
		}
		return Expansion{Content: content, Sources: []model.Source{}, Outcome: outcome}
	}

	return Expansion{
		Content: resp.Text,
		Sources: toSources(resp.Citations),
		Outcome: OutcomeOK,
	}
}

// generate reports a nil response as llm.ErrEmptyResponse.
func (g *Gateway) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	resp, err := g.gen.Generate(ctx, req)
	if err == nil && resp == nil {
		return nil, llm.ErrEmptyResponse
	}
	return resp, err
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return OutcomeConfigError
	case errors.Is(err, llm.ErrSchema):
		return OutcomeSchemaError
	default:
		return OutcomeTransportError
	}
}

// toSources drops citations without a URI and repeats of the same URI.
func toSources(citations []llm.Citation) []model.Source {
	sources := []model.Source{}
	seen := make(map[string]bool)
	for _, c := range citations {
		if c.URI == "" || seen[c.URI] {
			continue
		}
		seen[c.URI] = true
		title := c.Title
		if title == "" {
			title = c.URI
		}
		sources = append(sources, model.Source{Title: title, URI: c.URI})
	}
	return sources
}

// sourceFor picks the citation whose title mentions the story, falling back
// to the placeholder source.
func sourceFor(title string, citations []llm.Citation) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return model.DefaultSourceURL
	}
	for _, c := range citations {
		if c.URI == "" || c.Title == "" {
			continue
		}
		ct := strings.ToLower(c.Title)
		if strings.Contains(ct, t) || strings.Contains(t, ct) {
			return c.URI
		}
	}
	return model.DefaultSourceURL
}

func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}
