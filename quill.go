// Package quill is a static blog generator built with Go, goldmark and templ.
// It reads markdown posts with front-matter from a content directory and
// writes a post index, one page per post, an RSS feed and a sitemap.
//
// Users can provide their own templ components via the ViewFuncs struct;
// quill handles loading, ordering, rendering and the local preview server.
package quill

import (
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/quill/markdown"
	"github.com/eringen/quill/posts"
	"github.com/eringen/quill/views"
)

// App is the central quill application. It wires together the post loader,
// templates, build pipeline and preview server.
type App struct {
	Config SiteConfig
	Posts  *posts.Loader
	Views  ViewFuncs
	Echo   *echo.Echo
	Logger *log.Logger

	customRoutes []func(*App)
	buildMu      sync.Mutex
	setupOnce    sync.Once
}

// New creates a quill App with the given configuration. The config is copied
// and treated as read-only from here on.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	logger := log.New("quill")
	if cfg.Debug {
		logger.SetLevel(log.DEBUG)
	} else {
		logger.SetLevel(log.INFO)
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Logger: logger,
	}

	for _, opt := range opts {
		opt(a)
	}
	a.Views.setDefaults()

	a.Echo.HideBanner = true
	a.Echo.Logger = a.Logger

	a.Posts = posts.NewLoader(posts.Config{
		Dir: a.Config.ContentDir,
		Renderer: markdown.NewRenderer(markdown.Options{
			Extensions: a.Config.MarkdownExtensions,
			HardWraps:  a.Config.HardWraps,
			Unsafe:     a.Config.Unsafe,
		}),
		Policy: a.Config.ListingPolicy,
		Logger: a.Logger,
	})

	return a
}

// Site returns the presentational view of the config passed to templates.
func (a *App) Site() views.Site {
	c := a.Config
	return views.Site{
		Name:          c.Name,
		Title:         c.Title,
		URL:           c.URL,
		Description:   c.Description,
		Author:        c.Author,
		TwitterHandle: c.TwitterHandle,
		TwitterURL:    c.TwitterURL,
		GitHubURL:     c.GitHubURL,
		MainImage:     c.MainImage,
		Type:          c.SiteType,
		Stylesheets:   append([]string(nil), c.Stylesheets...),
	}
}
