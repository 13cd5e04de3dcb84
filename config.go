package quill

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/eringen/quill/posts"
)

// SiteConfig holds all configuration for a quill site. Build it once at
// startup and hand it to New; nothing reads configuration from globals.
type SiteConfig struct {
	Name          string `mapstructure:"name"`          // Site name (default "Blog")
	Title         string `mapstructure:"title"`         // Home page title (default Name)
	URL           string `mapstructure:"url"`           // Canonical URL (default "http://localhost:3000")
	Description   string `mapstructure:"description"`   // Site description for RSS and meta tags
	Author        string `mapstructure:"author"`        // Author name for JSON-LD and the footer
	TwitterHandle string `mapstructure:"twitterHandle"` // e.g. "@someone"
	TwitterURL    string `mapstructure:"twitterURL"`
	GitHubURL     string `mapstructure:"githubURL"`
	MainImage     string `mapstructure:"mainImage"` // og:image for every page
	SiteType      string `mapstructure:"siteType"`  // og:type of the home page (default "website")

	ContentDir  string   `mapstructure:"contentDir"` // Post directory (default "content/posts")
	OutputDir   string   `mapstructure:"outputDir"`  // Generated site (default "public")
	StaticDir   string   `mapstructure:"staticDir"`  // Copied verbatim into OutputDir (default "static")
	Addr        string   `mapstructure:"addr"`       // Preview server listen address (default ":3000")
	Stylesheets []string `mapstructure:"stylesheets"`

	ListingPolicy      posts.Policy `mapstructure:"onError"` // "abort" (default) or "skip"
	Unsafe             bool         `mapstructure:"unsafe"`  // Skip HTML sanitization of post bodies
	HardWraps          bool         `mapstructure:"hardWraps"`
	MarkdownExtensions []string     `mapstructure:"markdownExtensions"`
	Debug              bool         `mapstructure:"debug"`

	MaxImageWidth int `mapstructure:"maxImageWidth"` // Wider static images are scaled down (default 800)
	JPEGQuality   int `mapstructure:"jpegQuality"`   // Re-encode quality (default 80)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.Title == "" {
		c.Title = c.Name
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.SiteType == "" {
		c.SiteType = "website"
	}
	if c.ContentDir == "" {
		c.ContentDir = filepath.Join("content", "posts")
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if len(c.Stylesheets) == 0 {
		c.Stylesheets = []string{"/" + stylesheetName}
	}
	if c.ListingPolicy == "" {
		c.ListingPolicy = posts.PolicyAbort
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 800
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = 80
	}
}

func (c SiteConfig) validate() error {
	if _, err := posts.ParsePolicy(string(c.ListingPolicy)); err != nil {
		return fmt.Errorf("quill: %w", err)
	}
	out := filepath.Clean(c.OutputDir)
	if out == "." || out == string(filepath.Separator) {
		return fmt.Errorf("quill: refusing to use %q as output directory", c.OutputDir)
	}
	for _, src := range []string{c.ContentDir, c.StaticDir} {
		overlap, err := overlaps(c.OutputDir, src)
		if err != nil {
			return fmt.Errorf("quill: %w", err)
		}
		if overlap {
			return fmt.Errorf("quill: output directory %q overlaps source directory %q", c.OutputDir, src)
		}
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("quill: jpegQuality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	return nil
}

// overlaps reports whether a and b are the same directory or one contains
// the other.
func overlaps(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return within(absA, absB) || within(absB, absA), nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the preview server.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "static").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithViews overrides the built-in templates. Nil fields keep the defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
