package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kevo-dev/Portfolio2/internal/feed"
	"github.com/kevo-dev/Portfolio2/internal/session"
)

const (
	VisitorCookie    = "portfolio_visitor"
	visitorCookieAge = 60 * 60 * 24 * 365
)

type Visitors interface {
	Visitor(id string) *session.Visitor
}

// VisitorHandler serves the stateful blog and assistant views. Each browser
// is identified by a cookie issued on first contact.
type VisitorHandler struct {
	visitors Visitors
	now      func() time.Time
}

func NewVisitorHandler(visitors Visitors) *VisitorHandler {
	return &VisitorHandler{visitors: visitors, now: time.Now}
}

func (h *VisitorHandler) visitor(c *gin.Context) *session.Visitor {
	id, err := c.Cookie(VisitorCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, id, visitorCookieAge, "/", "", false, true)
	}
	return h.visitors.Visitor(id)
}

func (h *VisitorHandler) LoadFeed(c *gin.Context) {
	v := h.visitor(c)
	v.Feed.Load(c.Request.Context())
	h.writeFeed(c, v)
}

func (h *VisitorHandler) GetFeed(c *gin.Context) {
	h.writeFeed(c, h.visitor(c))
}

func (h *VisitorHandler) OpenArticle(c *gin.Context) {
	v := h.visitor(c)

	a, err := v.Feed.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.feedError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(a, h.now(), renderMarkdown))
}

func (h *VisitorHandler) Back(c *gin.Context) {
	v := h.visitor(c)
	v.Feed.Back()
	h.writeFeed(c, v)
}

func (h *VisitorHandler) Like(c *gin.Context) {
	v := h.visitor(c)

	n, err := v.Feed.Like(c.Param("id"))
	if err != nil {
		h.feedError(c, err)
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Likes: n})
}

func (h *VisitorHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid comment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	v := h.visitor(c)
	a, accepted, err := v.Feed.AddComment(c.Request.Context(), c.Param("id"), req.UserName, req.Text)
	if err != nil {
		h.feedError(c, err)
		return
	}

	c.JSON(http.StatusOK, CommentResult{
		Accepted: accepted,
		Post:     toPostResponse(a, h.now(), renderMarkdown),
	})
}

func (h *VisitorHandler) SetUserName(c *gin.Context) {
	var req UserNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid user name request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	v := h.visitor(c)
	if err := v.Feed.SetUserName(c.Request.Context(), req.UserName); err != nil {
		slog.Error("error saving user name", "visitor", v.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	c.JSON(http.StatusOK, UserNameRequest{UserName: v.Feed.UserName(c.Request.Context())})
}

func (h *VisitorHandler) GetAssistant(c *gin.Context) {
	v := h.visitor(c)
	c.JSON(http.StatusOK, AssistantResponse{
		Transcript:   toMessageResponses(v.Assistant.Transcript()),
		Busy:         v.Assistant.Busy(),
		QuickReplies: v.Assistant.QuickReplies(),
	})
}

func (h *VisitorHandler) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid assistant message", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	v := h.visitor(c)
	var accepted bool
	if req.QuickReply != nil {
		accepted = v.Assistant.SendQuickReply(c.Request.Context(), *req.QuickReply)
	} else {
		accepted = v.Assistant.Send(c.Request.Context(), req.Text)
	}

	c.JSON(http.StatusOK, SendResponse{
		Accepted:   accepted,
		Transcript: toMessageResponses(v.Assistant.Transcript()),
	})
}

func (h *VisitorHandler) writeFeed(c *gin.Context, v *session.Visitor) {
	now := h.now()

	articles := v.Feed.Articles()
	res := FeedResponse{
		State:    v.Feed.State().String(),
		Posts:    make([]PostResponse, 0, len(articles)),
		UserName: v.Feed.UserName(c.Request.Context()),
	}
	for _, a := range articles {
		res.Posts = append(res.Posts, toPostResponse(a, now, renderMarkdown))
	}
	if a, ok := v.Feed.Selected(); ok {
		selected := toPostResponse(a, now, renderMarkdown)
		res.Selected = &selected
	}

	c.JSON(http.StatusOK, res)
}

func (h *VisitorHandler) feedError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, feed.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
	case errors.Is(err, feed.ErrNotListed):
		c.JSON(http.StatusConflict, gin.H{"error": "Feed not loaded"})
	default:
		slog.Warn("feed request abandoned", "error", err)
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request cancelled"})
	}
}
