package views

// Site holds site-wide settings handed to every template. It is built once
// from the application config and never modified by the views.
type Site struct {
	Name          string
	Title         string
	URL           string
	Description   string
	Author        string
	TwitterHandle string
	TwitterURL    string
	GitHubURL     string
	MainImage     string
	Type          string // OpenGraph type of the home page, "website" by default
	Stylesheets   []string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}
