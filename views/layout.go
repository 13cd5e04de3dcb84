package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Layout wraps body in the shared page shell: head with SEO and social
// metadata, site header and footer.
func Layout(site Site, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>\n<html lang=\"en\"><head>")
		h.raw("<meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<title>")
		h.text(pageTitle(site, meta))
		h.raw("</title>")
		writeHead(h, site, meta)
		for _, href := range site.Stylesheets {
			h.raw("<link rel=\"stylesheet\"")
			h.href(href)
			h.raw(">")
		}
		h.raw("</head><body>")
		writeHeader(h, site)
		h.raw("<main class=\"container\">")
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main>")
		writeFooter(h, site)
		h.raw("</body></html>\n")
		return h.err
	})
}

func pageTitle(site Site, meta PageMeta) string {
	if meta.Title == "" || meta.Title == site.Title {
		return site.Title
	}
	return meta.Title + " | " + site.Title
}

func writeHead(h *htmlWriter, site Site, meta PageMeta) {
	description := meta.Description
	if description == "" {
		description = site.Description
	}
	if description != "" {
		h.raw("<meta name=\"description\"")
		h.attr("content", description)
		h.raw(">")
	}
	if meta.URL != "" {
		h.raw("<link rel=\"canonical\"")
		h.href(meta.URL)
		h.raw(">")
	}

	ogType := meta.OGType
	if ogType == "" {
		ogType = site.Type
	}
	properties := [][2]string{
		{"og:title", pageTitle(site, meta)},
		{"og:description", description},
		{"og:url", meta.URL},
		{"og:type", ogType},
		{"og:site_name", site.Name},
		{"og:image", site.MainImage},
	}
	for _, p := range properties {
		if p[1] == "" {
			continue
		}
		h.raw("<meta")
		h.attr("property", p[0])
		h.attr("content", p[1])
		h.raw(">")
	}

	h.raw("<meta name=\"twitter:card\" content=\"summary_large_image\">")
	if site.TwitterHandle != "" {
		h.raw("<meta name=\"twitter:site\"")
		h.attr("content", site.TwitterHandle)
		h.raw("><meta name=\"twitter:creator\"")
		h.attr("content", site.TwitterHandle)
		h.raw(">")
	}

	h.raw("<link rel=\"alternate\" type=\"application/rss+xml\"")
	h.attr("title", site.Name)
	h.raw(" href=\"/feed.xml\">")

	if meta.JSONLD != "" {
		// json.Marshal escapes <, > and & so the block cannot close the script tag.
		h.raw("<script type=\"application/ld+json\">")
		h.raw(meta.JSONLD)
		h.raw("</script>")
	}
}

func writeHeader(h *htmlWriter, site Site) {
	h.raw("<header class=\"site-header\"><a class=\"site-name\" href=\"/\">")
	h.text(site.Name)
	h.raw("</a><nav>")
	links := [][2]string{
		{"Twitter", site.TwitterURL},
		{"GitHub", site.GitHubURL},
	}
	for _, l := range links {
		if l[1] == "" {
			continue
		}
		h.raw("<a rel=\"me\"")
		h.href(l[1])
		h.raw(">")
		h.text(l[0])
		h.raw("</a>")
	}
	h.raw("<a href=\"/feed.xml\">RSS</a></nav></header>")
}

func writeFooter(h *htmlWriter, site Site) {
	h.raw("<footer class=\"site-footer\"><p>")
	owner := strings.TrimSpace(site.Author)
	if owner == "" {
		owner = site.Name
	}
	h.text("© " + owner)
	h.raw("</p></footer>")
}
