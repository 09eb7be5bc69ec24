package navigation

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeBrowser struct {
	url          string
	scrolledTop  int
	scrolledInto []string
}

func (b *fakeBrowser) URL() string     { return b.url }
func (b *fakeBrowser) SetURL(u string) { b.url = u }
func (b *fakeBrowser) ScrollToTop()    { b.scrolledTop++ }
func (b *fakeBrowser) ScrollIntoView(sectionID string) {
	b.scrolledInto = append(b.scrolledInto, sectionID)
}

type deferred struct {
	delay time.Duration
	fn    func()
}

func newTestController(startURL string) (*Controller, *fakeBrowser, *[]deferred) {
	b := &fakeBrowser{url: startURL}
	var pending []deferred
	c := NewController(b, WithDeferral(func(d time.Duration, f func()) {
		pending = append(pending, deferred{delay: d, fn: f})
	}))
	return c, b, &pending
}

func TestNewController_DecodesStartURL(t *testing.T) {
	c, _, _ := newTestController("https://kevowino.dev/#blog")
	assert.Equal(t, Blog, c.CurrentView())

	c, _, _ = newTestController("https://kevowino.dev/blog")
	assert.Equal(t, Blog, c.CurrentView())

	c, _, _ = newTestController("https://kevowino.dev/")
	assert.Equal(t, Home, c.CurrentView())
}

func TestNavigateTo_Blog(t *testing.T) {
	c, b, pending := newTestController("https://kevowino.dev/")

	c.NavigateTo(Blog, "")

	assert.Equal(t, Blog, c.CurrentView())
	assert.Equal(t, "https://kevowino.dev/#blog", b.url)
	assert.Equal(t, 1, b.scrolledTop)
	assert.Equal(t, 0, len(*pending))
}

func TestNavigateTo_HomeSectionIsDeferred(t *testing.T) {
	c, b, pending := newTestController("https://kevowino.dev/#blog")

	c.NavigateTo(Home, SectionContact)

	assert.Equal(t, Home, c.CurrentView())
	assert.Equal(t, "https://kevowino.dev/", b.url)
	assert.Equal(t, 0, len(b.scrolledInto))
	assert.Equal(t, 1, len(*pending))
	assert.Equal(t, SectionScrollDelay, (*pending)[0].delay)

	(*pending)[0].fn()
	assert.Equal(t, []string{SectionContact}, b.scrolledInto)
}

func TestNavigateTo_HomeWithoutSectionScrollsTop(t *testing.T) {
	c, b, pending := newTestController("https://kevowino.dev/#blog")

	c.NavigateTo(Home, "")

	assert.Equal(t, 1, b.scrolledTop)
	assert.Equal(t, 0, len(*pending))
	assert.Equal(t, Home, Decode(b.url).View)
}

func TestNavigateTo_RoundTrip(t *testing.T) {
	c, b, _ := newTestController("https://kevowino.dev/blog")

	for _, v := range []View{Home, Blog, Blog, Home} {
		c.NavigateTo(v, "")
		assert.Equal(t, v, Decode(b.url).View)
		assert.Equal(t, v, c.CurrentView())
	}
}

func TestNavigateTo_InvalidViewIsHome(t *testing.T) {
	c, _, _ := newTestController("https://kevowino.dev/#blog")
	c.NavigateTo(View("admin"), "")
	assert.Equal(t, Home, c.CurrentView())
}

func TestOpenArticle(t *testing.T) {
	c, b, _ := newTestController("https://kevowino.dev/")

	c.OpenArticle("a1")

	assert.Equal(t, Location{View: Blog, ArticleID: "a1"}, c.Current())
	assert.Equal(t, Location{View: Blog, ArticleID: "a1"}, Decode(b.url))
}

func TestHandleLocationChange_NotifiesSubscribers(t *testing.T) {
	c, b, _ := newTestController("https://kevowino.dev/")

	var seen []View
	cancel := c.Subscribe(func(loc Location) { seen = append(seen, loc.View) })

	b.url = "https://kevowino.dev/#blog"
	c.HandleLocationChange()
	assert.Equal(t, Blog, c.CurrentView())

	// same location again is not a change
	c.HandleLocationChange()

	b.url = "https://kevowino.dev/"
	c.HandleLocationChange()

	cancel()
	c.NavigateTo(Blog, "")

	assert.Equal(t, []View{Blog, Home}, seen)
}

// echoBrowser fires a location change synchronously, like a hashchange
// listener wired straight to the controller.
type echoBrowser struct {
	fakeBrowser
	c *Controller
}

func (b *echoBrowser) SetURL(u string) {
	b.url = u
	b.c.HandleLocationChange()
}

func TestNavigateTo_BrowserReentersController(t *testing.T) {
	b := &echoBrowser{fakeBrowser: fakeBrowser{url: "https://kevowino.dev/"}}
	c := NewController(b)
	b.c = c

	var seen []Location
	c.Subscribe(func(loc Location) { seen = append(seen, loc) })

	done := make(chan struct{})
	go func() {
		c.OpenArticle("abc")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("navigation blocked on a re-entrant location change")
	}

	assert.Equal(t, Location{View: Blog, ArticleID: "abc"}, c.Current())
	assert.Equal(t, "https://kevowino.dev/?post=abc#blog", b.url)
	assert.Equal(t, 1, len(seen))
}
