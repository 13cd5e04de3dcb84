package quill

import (
	"github.com/a-h/templ"

	"github.com/eringen/quill/posts"
	"github.com/eringen/quill/views"
)

// ViewFuncs holds the templ components the build calls when rendering pages.
// Any nil field falls back to the matching component in the views package.
type ViewFuncs struct {
	Home     func(site views.Site, list []posts.Summary) templ.Component
	Post     func(site views.Site, post posts.Detail) templ.Component
	NotFound func(site views.Site) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Home == nil {
		v.Home = views.Home
	}
	if v.Post == nil {
		v.Post = views.Post
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
}

// BuildReport summarises one Build run.
type BuildReport struct {
	Posts    int // post pages written
	Skipped  int // listed posts whose page could not be loaded
	Assets   int // static files copied
	Images   int // static images scaled down
	Duration string
}
