package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/kevo-dev/Portfolio2/internal/gateway"
	"github.com/kevo-dev/Portfolio2/internal/model"
)

type fakeGateway struct {
	reply       gateway.Reply
	feed        gateway.FeedResult
	expansion   gateway.Expansion
	messages    []string
	expandCalls int
}

func (f *fakeGateway) Converse(ctx context.Context, message string) gateway.Reply {
	f.messages = append(f.messages, message)
	return f.reply
}

func (f *fakeGateway) SynthesizeFeed(ctx context.Context) gateway.FeedResult {
	articles := make([]model.Article, len(f.feed.Articles))
	copy(articles, f.feed.Articles)
	return gateway.FeedResult{Articles: articles, Outcome: f.feed.Outcome}
}

func (f *fakeGateway) ExpandArticle(ctx context.Context, title, summary, sourceURL string) gateway.Expansion {
	f.expandCalls++
	return f.expansion
}

func testArticles() []model.Article {
	return []model.Article{
		{ID: "a1", Title: "React 20 ships", Summary: "s1", Date: "2026-10-15", Category: "Frontend", SourceURL: model.DefaultSourceURL, LikeCount: 20, Comments: []model.Comment{}},
		{ID: "a2", Title: "Go 1.27 freeze", Summary: "s2", Date: "2026-10-14", Category: "Languages", SourceURL: "https://go.dev/blog", LikeCount: 33, Comments: []model.Comment{}},
	}
}

func newBlogRouter(gw Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBlogHandler(gw)
	r.POST("/api/chat", h.PostChat)
	r.GET("/api/blog/posts", h.GetPosts)
	r.POST("/api/blog/expand", h.PostExpand)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPostChat_OK(t *testing.T) {
	gw := &fakeGateway{reply: gateway.Reply{Text: "He writes Go.", Outcome: gateway.OutcomeOK}}
	r := newBlogRouter(gw)

	w := doJSON(r, "POST", "/api/chat", `{"message":"What does Kev use?"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var res ChatResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "He writes Go.", res.Text)
	assert.Equal(t, []string{"What does Kev use?"}, gw.messages)
}

func TestPostChat_Failures(t *testing.T) {
	tests := []struct {
		name    string
		outcome gateway.Outcome
		text    string
		status  int
	}{
		{"transport", gateway.OutcomeTransportError, gateway.FallbackReply, http.StatusInternalServerError},
		{"schema", gateway.OutcomeSchemaError, gateway.FallbackReply, http.StatusInternalServerError},
		{"config", gateway.OutcomeConfigError, gateway.ConfigErrorReply, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBlogRouter(&fakeGateway{reply: gateway.Reply{Text: tt.text, Outcome: tt.outcome}})

			w := doJSON(r, "POST", "/api/chat", `{"message":"hi"}`)

			assert.Equal(t, tt.status, w.Code)
			var res ChatResponse
			json.Unmarshal(w.Body.Bytes(), &res)
			assert.Equal(t, tt.text, res.Text)
		})
	}
}

func TestPostChat_BadRequest(t *testing.T) {
	gw := &fakeGateway{}
	r := newBlogRouter(gw)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, "POST", "/api/chat", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, "POST", "/api/chat", `{"message":"  "}`).Code)
	assert.Equal(t, 0, len(gw.messages))
}

func TestGetPosts_OK(t *testing.T) {
	r := newBlogRouter(&fakeGateway{feed: gateway.FeedResult{Articles: testArticles()}})

	w := doJSON(r, "GET", "/api/blog/posts", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var res []PostResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "React 20 ships", res[0].Title)
	assert.Equal(t, model.DefaultSourceURL, res[0].URL)
	assert.Equal(t, 20, res[0].Likes)
	assert.Equal(t, 0, len(res[0].Comments))
	assert.Equal(t, "", res[0].Content)
}

func TestGetPosts_FailureReturnsEmptyArray(t *testing.T) {
	r := newBlogRouter(&fakeGateway{feed: gateway.FeedResult{Articles: []model.Article{}, Outcome: gateway.OutcomeSchemaError}})

	w := doJSON(r, "GET", "/api/blog/posts", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestPostExpand_OK(t *testing.T) {
	gw := &fakeGateway{expansion: gateway.Expansion{
		Content: "# Deep dive\n\n## Kev's Engineering Perspective\n\nShip it.",
		Sources: []model.Source{{Title: "React blog", URI: "https://react.dev/blog"}},
	}}
	r := newBlogRouter(gw)

	w := doJSON(r, "POST", "/api/blog/expand", `{"title":"React 20 ships","summary":"s1","url":"https://news.ycombinator.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var res ExpandResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, gw.expansion.Content, res.Content)
	assert.Equal(t, true, strings.Contains(res.ContentHTML, "<h1>Deep dive</h1>"))
	assert.Equal(t, true, strings.Contains(res.ContentHTML, "Engineering Perspective</h2>"))
	assert.Equal(t, []SourceResponse{{Title: "React blog", URI: "https://react.dev/blog"}}, res.Sources)
}

func TestPostExpand_Failure(t *testing.T) {
	r := newBlogRouter(&fakeGateway{expansion: gateway.Expansion{
		Content: gateway.FallbackExpansion,
		Sources: []model.Source{},
		Outcome: gateway.OutcomeTransportError,
	}})

	w := doJSON(r, "POST", "/api/blog/expand", `{"title":"React 20 ships"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var res ExpandResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, gateway.FallbackExpansion, res.Content)
	assert.Equal(t, 0, len(res.Sources))
}

func TestPostExpand_MissingTitle(t *testing.T) {
	gw := &fakeGateway{}
	r := newBlogRouter(gw)

	w := doJSON(r, "POST", "/api/blog/expand", `{"summary":"s1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gw.expandCalls)
}

func TestRenderMarkdown_DropsRawHTML(t *testing.T) {
	html := renderMarkdown("**bold**\n\n<script>alert(1)</script>")

	assert.Equal(t, true, strings.Contains(html, "<strong>bold</strong>"))
	assert.Equal(t, false, strings.Contains(html, "<script>"))
}

func TestToCommentResponses_RelativeTime(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	comments := []model.Comment{{ID: "1", UserName: "Ada", Text: "nice", Timestamp: now.Add(-2 * time.Hour)}}

	res := toCommentResponses(comments, now)

	assert.Equal(t, "2 hours ago", res[0].Ago)
	assert.Equal(t, "2026-10-16T10:00:00Z", res[0].Timestamp)
}
