// Package feed drives the blog view: it loads a synthesized feed, expands
// articles on first open and keeps likes and reader comments on the
// in-memory records.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kevo-dev/Portfolio2/internal/gateway"
	"github.com/kevo-dev/Portfolio2/internal/model"
	"golang.org/x/sync/singleflight"
)

var (
	ErrArticleNotFound = errors.New("article not found in current feed")
	ErrNotListed       = errors.New("feed is not loaded")
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateListing
	StateArticleOpen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateListing:
		return "listing"
	case StateArticleOpen:
		return "article_open"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type ExpansionState int

const (
	NotExpanded ExpansionState = iota
	Expanding
	Expanded
)

func (e ExpansionState) String() string {
	switch e {
	case NotExpanded:
		return "not_expanded"
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("expansion(%d)", int(e))
	}
}

// Source is the model-backed content the feed is built from.
type Source interface {
	SynthesizeFeed(ctx context.Context) gateway.FeedResult
	ExpandArticle(ctx context.Context, title, summary, sourceURL string) gateway.Expansion
}

type CommentStore interface {
	GetComments(ctx context.Context, title string) ([]model.Comment, error)
	SaveComments(ctx context.Context, title string, comments []model.Comment) error
	GetUserName(ctx context.Context, visitor string) (string, error)
	SetUserName(ctx context.Context, visitor, name string) error
}

type entry struct {
	article   model.Article
	expansion ExpansionState
}

type Session struct {
	visitor  string
	source   Source
	comments CommentStore
	now      func() time.Time
	group    singleflight.Group

	mu             sync.Mutex
	state          State
	generation     uint64
	order          []string
	entries        map[string]*entry
	selected       string
	userName       string
	userNameLoaded bool
}

func NewSession(visitor string, source Source, comments CommentStore) *Session {
	return &Session{
		visitor:  visitor,
		source:   source,
		comments: comments,
		now:      time.Now,
		entries:  make(map[string]*entry),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load replaces the feed with a freshly synthesized one. A failed synthesis
// leaves an empty listing.
func (s *Session) Load(ctx context.Context) []model.Article {
	s.mu.Lock()
	s.state = StateLoading
	s.selected = ""
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	res := s.source.SynthesizeFeed(ctx)
	articles := res.Articles
	for i := range articles {
		stored, err := s.comments.GetComments(ctx, articles[i].Title)
		if err != nil {
			slog.Warn("error loading stored comments", "title", articles[i].Title, "error", err)
			continue
		}
		if len(stored) > 0 {
			articles[i].Comments = stored
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// a newer Load started while this one was waiting on the model
	if gen != s.generation {
		return s.articlesLocked()
	}

	s.order = make([]string, 0, len(articles))
	s.entries = make(map[string]*entry, len(articles))
	for _, a := range articles {
		s.order = append(s.order, a.ID)
		s.entries[a.ID] = &entry{article: a}
	}
	s.state = StateListing

	return s.articlesLocked()
}

func (s *Session) Articles() []model.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articlesLocked()
}

// Selected returns the open article, if any.
func (s *Session) Selected() (model.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateArticleOpen {
		return model.Article{}, false
	}
	e, ok := s.entries[s.selected]
	if !ok {
		return model.Article{}, false
	}
	return cloneArticle(e.article), true
}

// Open selects id and expands it the first time it is opened in this feed.
// Concurrent opens of the same article share one expansion request.
func (s *Session) Open(ctx context.Context, id string) (model.Article, error) {
	s.mu.Lock()
	e, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return model.Article{}, err
	}

	s.state = StateArticleOpen
	s.selected = id
	if e.expansion == Expanded {
		a := cloneArticle(e.article)
		s.mu.Unlock()
		return a, nil
	}

	e.expansion = Expanding
	gen := s.generation
	title, summary, sourceURL := e.article.Title, e.article.Summary, e.article.SourceURL
	s.mu.Unlock()

	// shared by every waiter, so it outlives the caller that started it
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do(fmt.Sprintf("%d/%s", gen, id), func() (any, error) {
		s.mu.Lock()
		if e.expansion == Expanded {
			done := gateway.Expansion{Content: e.article.FullContent, Sources: e.article.Sources}
			s.mu.Unlock()
			return done, nil
		}
		s.mu.Unlock()
		return s.source.ExpandArticle(shared, title, summary, sourceURL), nil
	})
	exp := v.(gateway.Expansion)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := gen == s.generation && s.entries[id] == e
	switch {
	case e.expansion == Expanded:
	case current:
		e.article.FullContent = exp.Content
		e.article.Sources = exp.Sources
		e.article.Expanded = true
		e.expansion = Expanded
	default:
		// the feed was reloaded, this record is no longer listed
		a := cloneArticle(e.article)
		a.FullContent, a.Sources, a.Expanded = exp.Content, exp.Sources, true
		return a, nil
	}

	return cloneArticle(e.article), nil
}

// Back returns to the listing. Expanded content stays cached.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateArticleOpen {
		s.state = StateListing
	}
	s.selected = ""
}

func (s *Session) Expansion(id string) (ExpansionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return NotExpanded, ErrArticleNotFound
	}
	return e.expansion, nil
}

func (s *Session) Like(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookupLocked(id)
	if err != nil {
		return 0, err
	}
	e.article.LikeCount++
	return e.article.LikeCount, nil
}

// AddComment prepends a comment to id and persists the thread by title.
// Blank text is ignored and reported as not accepted. An empty userName
// falls back to the remembered name, then to AnonymousReader.
func (s *Session) AddComment(ctx context.Context, id, userName, text string) (model.Article, bool, error) {
	text = strings.TrimSpace(text)
	userName = strings.TrimSpace(userName)

	s.ensureUserName(ctx)

	s.mu.Lock()
	e, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return model.Article{}, false, err
	}
	if text == "" {
		a := cloneArticle(e.article)
		s.mu.Unlock()
		return a, false, nil
	}

	remember := false
	switch {
	case userName != "":
		remember = userName != s.userName
		s.userName = userName
	case s.userName != "":
		userName = s.userName
	default:
		userName = model.AnonymousReader
	}

	now := s.now()
	comment := model.Comment{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		UserName:  userName,
		Text:      text,
		Timestamp: now,
	}
	e.article.Comments = append([]model.Comment{comment}, e.article.Comments...)

	title := e.article.Title
	thread := append([]model.Comment(nil), e.article.Comments...)
	a := cloneArticle(e.article)
	s.mu.Unlock()

	if err := s.comments.SaveComments(ctx, title, thread); err != nil {
		slog.Error("error saving comments", "title", title, "error", err)
	}
	if remember {
		if err := s.comments.SetUserName(ctx, s.visitor, userName); err != nil {
			slog.Error("error saving user name", "visitor", s.visitor, "error", err)
		}
	}

	return a, true, nil
}

func (s *Session) UserName(ctx context.Context) string {
	s.ensureUserName(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

func (s *Session) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	s.userName = name
	s.userNameLoaded = true
	s.mu.Unlock()
	return s.comments.SetUserName(ctx, s.visitor, name)
}

func (s *Session) ensureUserName(ctx context.Context) {
	s.mu.Lock()
	loaded := s.userNameLoaded
	s.mu.Unlock()
	if loaded {
		return
	}

	name, err := s.comments.GetUserName(ctx, s.visitor)
	if err != nil {
		slog.Warn("error loading remembered user name", "visitor", s.visitor, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.userNameLoaded {
		s.userName = name
		s.userNameLoaded = true
	}
}

func (s *Session) lookupLocked(id string) (*entry, error) {
	if s.state == StateIdle || s.state == StateLoading {
		return nil, ErrNotListed
	}
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrArticleNotFound
	}
	return e, nil
}

func (s *Session) articlesLocked() []model.Article {
	out := make([]model.Article, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneArticle(s.entries[id].article))
	}
	return out
}

func cloneArticle(a model.Article) model.Article {
	a.Comments = append([]model.Comment{}, a.Comments...)
	if a.Sources != nil {
		a.Sources = append([]model.Source{}, a.Sources...)
	}
	return a
}
