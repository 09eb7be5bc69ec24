package navigation

import (
	"sync"
	"time"
)

// SectionScrollDelay gives the home view time to mount before an anchor is
// scrolled into view.
const SectionScrollDelay = 50 * time.Millisecond

// Browser is the address bar and viewport the controller drives.
type Browser interface {
	URL() string
	SetURL(u string)
	ScrollToTop()
	ScrollIntoView(sectionID string)
}

type Controller struct {
	mu        sync.Mutex
	browser   Browser
	view      View
	articleID string
	after     func(d time.Duration, f func())
	listeners map[int]func(Location)
	nextID    int
}

type Option func(*Controller)

// WithDeferral replaces time.AfterFunc for the delayed section scroll.
func WithDeferral(after func(d time.Duration, f func())) Option {
	return func(c *Controller) {
		c.after = after
	}
}

// NewController decodes the browser's current address into the initial view.
func NewController(b Browser, opts ...Option) *Controller {
	c := &Controller{
		browser: b,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		listeners: make(map[int]func(Location)),
	}
	for _, opt := range opts {
		opt(c)
	}

	loc := Decode(b.URL())
	c.view, c.articleID = loc.View, loc.ArticleID
	return c
}

func (c *Controller) CurrentView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) Current() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Location{View: c.view, ArticleID: c.articleID}
}

// NavigateTo switches view and writes it to the address bar. For home with a
// sectionID the anchor scroll runs after SectionScrollDelay.
func (c *Controller) NavigateTo(view View, sectionID string) {
	c.navigate(Location{View: view}, sectionID)
}

// OpenArticle navigates to the blog view with a deep link to id.
func (c *Controller) OpenArticle(id string) {
	c.navigate(Location{View: Blog, ArticleID: id}, "")
}

func (c *Controller) navigate(loc Location, sectionID string) {
	if !loc.View.Valid() {
		loc.View = Home
	}

	c.mu.Lock()
	changed := c.view != loc.View || c.articleID != loc.ArticleID
	c.view, c.articleID = loc.View, loc.ArticleID
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	// SetURL may re-enter HandleLocationChange
	c.browser.SetURL(Encode(c.browser.URL(), loc))

	switch {
	case loc.View == Blog:
		c.browser.ScrollToTop()
	case sectionID != "":
		c.after(SectionScrollDelay, func() {
			c.browser.ScrollIntoView(sectionID)
		})
	default:
		c.browser.ScrollToTop()
	}

	if changed {
		notify(listeners, loc)
	}
}

// HandleLocationChange re-reads the address after a hashchange or
// back/forward event.
func (c *Controller) HandleLocationChange() {
	loc := Decode(c.browser.URL())

	c.mu.Lock()
	changed := c.view != loc.View || c.articleID != loc.ArticleID
	c.view, c.articleID = loc.View, loc.ArticleID
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if changed {
		notify(listeners, loc)
	}
}

// Subscribe registers fn for view changes and returns its cancel func.
func (c *Controller) Subscribe(fn func(Location)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) snapshotListeners() []func(Location) {
	out := make([]func(Location), 0, len(c.listeners))
	for i := 0; i < c.nextID; i++ {
		if fn, ok := c.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(Location), loc Location) {
	for _, fn := range listeners {
		fn(loc)
	}
}
