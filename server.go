package quill

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Handler returns the preview server's http.Handler, serving the built site
// from OutputDir. Middleware and custom routes are installed on first use.
func (a *App) Handler() http.Handler {
	a.setupOnce.Do(a.setupRoutes)
	return a.Echo
}

func (a *App) setupRoutes() {
	a.setupMiddleware()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.Echo.Static("/", a.Config.OutputDir)
}

const staticRoute = "/*"

// Serve starts the preview server on Config.Addr and blocks until it stops.
// A shutdown through Shutdown is not reported as an error.
func (a *App) Serve() error {
	a.Handler()
	a.Logger.Infof("serving %s on %s", a.Config.OutputDir, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the preview server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		c.Response().Header().Set("Cache-Control", "no-cache")
		if page, ferr := os.ReadFile(filepath.Join(a.Config.OutputDir, "404.html")); ferr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, page)
			return
		}
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
