package handler

import (
	"encoding/xml"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kevo-dev/Portfolio2/internal/model"
)

type PostResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary"`
	Content     string            `json:"content,omitempty"`
	ContentHTML string            `json:"contentHtml,omitempty"`
	URL         string            `json:"url"`
	Date        string            `json:"date"`
	Category    string            `json:"category"`
	Likes       int               `json:"likes"`
	Comments    []CommentResponse `json:"comments"`
	Sources     []SourceResponse  `json:"sources,omitempty"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Ago       string `json:"ago"`
}

type SourceResponse struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Text string `json:"text"`
}

type ExpandRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

type ExpandResponse struct {
	Content     string           `json:"content"`
	ContentHTML string           `json:"contentHtml"`
	Sources     []SourceResponse `json:"sources"`
}

type FeedResponse struct {
	State    string         `json:"state"`
	Posts    []PostResponse `json:"posts"`
	Selected *PostResponse  `json:"selected,omitempty"`
	UserName string         `json:"userName"`
}

type LikeResponse struct {
	Likes int `json:"likes"`
}

type CommentRequest struct {
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

type CommentResult struct {
	Accepted bool         `json:"accepted"`
	Post     PostResponse `json:"post"`
}

type UserNameRequest struct {
	UserName string `json:"userName"`
}

type MessageResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type AssistantResponse struct {
	Transcript   []MessageResponse `json:"transcript"`
	Busy         bool              `json:"busy"`
	QuickReplies []string          `json:"quickReplies"`
}

type SendRequest struct {
	Text       string `json:"text"`
	QuickReply *int   `json:"quickReply"`
}

type SendResponse struct {
	Accepted   bool              `json:"accepted"`
	Transcript []MessageResponse `json:"transcript"`
}

type ViewResponse struct {
	View      string `json:"view"`
	ArticleID string `json:"articleId,omitempty"`
	Canonical string `json:"canonical"`
}

type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

func toPostResponse(a model.Article, now time.Time, render func(string) string) PostResponse {
	res := PostResponse{
		ID:       a.ID,
		Title:    a.Title,
		Summary:  a.Summary,
		URL:      a.SourceURL,
		Date:     a.Date,
		Category: a.Category,
		Likes:    a.LikeCount,
		Comments: toCommentResponses(a.Comments, now),
		Sources:  toSourceResponses(a.Sources),
	}
	if a.Expanded {
		res.Content = a.FullContent
		res.ContentHTML = render(a.FullContent)
	}
	return res
}

func toCommentResponses(comments []model.Comment, now time.Time) []CommentResponse {
	res := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		res = append(res, CommentResponse{
			ID:        c.ID,
			UserName:  c.UserName,
			Text:      c.Text,
			Timestamp: c.Timestamp.Format(time.RFC3339),
			Ago:       humanize.RelTime(c.Timestamp, now, "ago", "from now"),
		})
	}
	return res
}

func toSourceResponses(sources []model.Source) []SourceResponse {
	res := make([]SourceResponse, 0, len(sources))
	for _, s := range sources {
		res = append(res, SourceResponse{Title: s.Title, URI: s.URI})
	}
	return res
}

func toMessageResponses(messages []model.Message) []MessageResponse {
	res := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, MessageResponse{Role: string(m.Role), Text: m.Text})
	}
	return res
}
