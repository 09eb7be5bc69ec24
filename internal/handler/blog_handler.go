package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kevo-dev/Portfolio2/internal/gateway"
)

// Gateway is the model boundary the stateless routes call into.
type Gateway interface {
	Converse(ctx context.Context, message string) gateway.Reply
	SynthesizeFeed(ctx context.Context) gateway.FeedResult
	ExpandArticle(ctx context.Context, title, summary, sourceURL string) gateway.Expansion
}

type BlogHandler struct {
	gateway Gateway
	now     func() time.Time
}

func NewBlogHandler(gw Gateway) *BlogHandler {
	return &BlogHandler{gateway: gw, now: time.Now}
}

func (h *BlogHandler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid chat request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply := h.gateway.Converse(c.Request.Context(), req.Message)
	c.JSON(statusFor(reply.Outcome), ChatResponse{Text: reply.Text})
}

func (h *BlogHandler) GetPosts(c *gin.Context) {
	res := h.gateway.SynthesizeFeed(c.Request.Context())

	now := h.now()
	posts := make([]PostResponse, 0, len(res.Articles))
	for _, a := range res.Articles {
		posts = append(posts, toPostResponse(a, now, renderMarkdown))
	}

	c.JSON(statusFor(res.Outcome), posts)
}

func (h *BlogHandler) PostExpand(c *gin.Context) {
	var req ExpandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid expand request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	exp := h.gateway.ExpandArticle(c.Request.Context(), req.Title, req.Summary, req.URL)
	c.JSON(statusFor(exp.Outcome), ExpandResponse{
		Content:     exp.Content,
		ContentHTML: renderMarkdown(exp.Content),
		Sources:     toSourceResponses(exp.Sources),
	})
}

func statusFor(o gateway.Outcome) int {
	switch o {
	case gateway.OutcomeOK:
		return http.StatusOK
	case gateway.OutcomeConfigError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
