// Package navigation maps the portfolio's two views onto a browser address.
//
// The encoding is hash based: "#blog" selects the blog view and an empty
// fragment selects home. Encode always resets the path to "/" so the path
// and the fragment cannot disagree after a navigation. Decode also accepts
// the path form ("/blog") and the "post" deep-link parameter, with a
// non-empty fragment taking precedence over both.
package navigation

import (
	"net/url"
	"strings"
)

type View string

const (
	Home View = "home"
	Blog View = "blog"
)

func (v View) Valid() bool {
	return v == Home || v == Blog
}

// Section anchors on the home view.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionProjects = "projects"
	SectionBlog     = "blog"
	SectionSkills   = "skills"
	SectionContact  = "contact"
)

const (
	blogFragment = "blog"
	blogPath     = "/blog"
	articleParam = "post"
)

type Location struct {
	View      View
	ArticleID string
}

// Decode resolves rawURL to a Location. It never fails; anything it cannot
// read is home.
func Decode(rawURL string) Location {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Location{View: Home}
	}

	articleID := u.Query().Get(articleParam)

	if u.Fragment != "" {
		if strings.HasPrefix(u.Fragment, blogFragment) {
			return Location{View: Blog, ArticleID: articleID}
		}
		return Location{View: Home}
	}

	if u.Path == blogPath || strings.HasPrefix(u.Path, blogPath+"/") {
		return Location{View: Blog, ArticleID: articleID}
	}

	if articleID != "" {
		return Location{View: Blog, ArticleID: articleID}
	}

	return Location{View: Home}
}

// Encode rewrites rawURL so that Decode returns loc. Scheme, host and
// unrelated query parameters are preserved.
func Encode(rawURL string, loc Location) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = &url.URL{}
	}

	u.Path = "/"
	u.RawPath = ""

	q := u.Query()
	q.Del(articleParam)

	switch loc.View {
	case Blog:
		u.Fragment = blogFragment
		if loc.ArticleID != "" {
			q.Set(articleParam, loc.ArticleID)
		}
	default:
		u.Fragment = ""
	}
	u.RawFragment = ""
	u.RawQuery = q.Encode()

	return u.String()
}
