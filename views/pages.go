package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/quill/posts"
)

// Home lists every post, newest first, as the site index.
func Home(site Site, list []posts.Summary) templ.Component {
	meta := PageMeta{
		Title:  site.Title,
		URL:    buildURL(site.URL),
		OGType: site.Type,
		JSONLD: WebsiteJsonLD(site),
	}
	return Layout(site, meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>Blog Posts</h1>")
		if len(list) == 0 {
			h.raw("<p class=\"empty\">No posts yet.</p>")
			return h.err
		}
		h.raw("<div class=\"post-list\">")
		for _, p := range list {
			h.raw("<article class=\"post-summary\"><a")
			h.href(p.Link)
			h.raw("><h2>")
			h.text(p.Title)
			h.raw("</h2></a>")
			writeTime(h, p.Date)
			if p.Excerpt != "" {
				h.raw("<p class=\"excerpt\">")
				h.text(p.Excerpt)
				h.raw("</p>")
			}
			h.raw("</article>")
		}
		h.raw("</div>")
		return h.err
	}))
}

// Post renders a single post. Content is embedded as-is: it has already been
// rendered (and sanitized unless the site runs unsafe) by the markdown package.
func Post(site Site, post posts.Detail) templ.Component {
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         buildURL(site.URL, post.Slug),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(site, post.Summary),
	}
	return Layout(site, meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<article class=\"post\"><h1>")
		h.text(post.Title)
		h.raw("</h1>")
		writeTime(h, post.Date)
		h.raw("<div class=\"prose\">")
		h.raw(post.Content)
		h.raw("</div></article>")
		return h.err
	}))
}

// NotFound is the page served for unknown paths and missing posts.
func NotFound(site Site) templ.Component {
	meta := PageMeta{Title: "Not found"}
	return Layout(site, meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"not-found\"><h1>Page not found</h1>")
		h.raw("<p>The page you are looking for does not exist.</p>")
		h.raw("<p><a href=\"/\">Back to all posts</a></p></section>")
		return h.err
	}))
}

func writeTime(h *htmlWriter, date string) {
	h.raw("<time")
	h.attr("datetime", date)
	h.raw(">")
	h.text(FormatDate(date))
	h.raw("</time>")
}
