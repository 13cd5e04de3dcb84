package quill

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/eringen/quill/posts"
)

// Build regenerates the whole site into OutputDir: the index, one page per
// post, the 404 page, feed.xml, sitemap.xml, robots.txt, the bundled
// stylesheet and everything under StaticDir. The output directory is
// emptied first. Concurrent calls are serialised.
func (a *App) Build() (BuildReport, error) {
	a.buildMu.Lock()
	defer a.buildMu.Unlock()

	start := time.Now()
	var report BuildReport

	if err := a.Config.validate(); err != nil {
		return report, err
	}

	list, err := a.Posts.FetchAllSummaries()
	if err != nil {
		return report, fmt.Errorf("list posts: %w", err)
	}

	// Load every page before touching the output so a failing build leaves
	// the previous site in place.
	details := make([]posts.Detail, 0, len(list))
	published := make([]posts.Summary, 0, len(list))
	for _, s := range list {
		if reservedOutputs[s.Slug] {
			a.Logger.Warnf("build: post %q clashes with a generated file, leaving it out", s.Slug)
			report.Skipped++
			continue
		}
		d, err := a.Posts.FetchOne(s.Slug)
		if errors.Is(err, posts.ErrNotFound) {
			a.Logger.Warnf("build: post %q disappeared or failed to render, leaving it out", s.Slug)
			report.Skipped++
			continue
		}
		if err != nil {
			return report, err
		}
		details = append(details, d)
		published = append(published, s)
	}

	if err := cleanDir(a.Config.OutputDir); err != nil {
		return report, err
	}

	ctx := context.Background()
	site := a.Site()

	if err := a.writePage(ctx, "index.html", a.Views.Home(site, published)); err != nil {
		return report, err
	}
	for _, d := range details {
		if err := a.writePage(ctx, filepath.Join(d.Slug, "index.html"), a.Views.Post(site, d)); err != nil {
			return report, err
		}
		a.Logger.Debugf("build: wrote %s", d.Link)
		report.Posts++
	}
	if err := a.writePage(ctx, "404.html", a.Views.NotFound(site)); err != nil {
		return report, err
	}

	var buf bytes.Buffer
	if err := a.writeRSS(&buf, published); err != nil {
		return report, fmt.Errorf("render feed: %w", err)
	}
	if err := a.writeOutput("feed.xml", buf.Bytes()); err != nil {
		return report, err
	}
	buf.Reset()
	if err := a.writeSitemap(&buf, published); err != nil {
		return report, fmt.Errorf("render sitemap: %w", err)
	}
	if err := a.writeOutput("sitemap.xml", buf.Bytes()); err != nil {
		return report, err
	}
	buf.Reset()
	if err := a.writeRobots(&buf); err != nil {
		return report, err
	}
	if err := a.writeOutput("robots.txt", buf.Bytes()); err != nil {
		return report, err
	}

	css, err := fs.ReadFile(EmbeddedAssets, "embedded/"+stylesheetName)
	if err != nil {
		return report, fmt.Errorf("read embedded stylesheet: %w", err)
	}
	if err := a.writeOutput(stylesheetName, css); err != nil {
		return report, err
	}

	if err := a.copyStatic(&report); err != nil {
		return report, err
	}

	report.Duration = time.Since(start).Round(time.Millisecond).String()
	a.Logger.Infof("build: %d posts, %d skipped, %d assets (%d images resized) in %s",
		report.Posts, report.Skipped, report.Assets, report.Images, report.Duration)
	return report, nil
}

// reservedOutputs are written at the top of OutputDir, so no post may use
// them as its slug.
var reservedOutputs = map[string]bool{
	"index.html":   true,
	"404.html":     true,
	"feed.xml":     true,
	"sitemap.xml":  true,
	"robots.txt":   true,
	stylesheetName: true,
}

// cleanDir removes and recreates dir. It refuses the working directory and
// the filesystem root.
func cleanDir(dir string) error {
	clean := filepath.Clean(dir)
	if clean == "." || clean == string(filepath.Separator) || clean == "" {
		return fmt.Errorf("refusing to clean %q", dir)
	}
	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("clean output dir: %w", err)
	}
	if err := os.MkdirAll(clean, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// copyStatic mirrors StaticDir into the output directory. JPEG and PNG files
// wider than MaxImageWidth are scaled down on the way. A missing StaticDir
// is not an error.
func (a *App) copyStatic(report *BuildReport) error {
	src := a.Config.StaticDir
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		a.Logger.Debugf("build: no static dir at %s", src)
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(a.Config.OutputDir, rel), 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if isImage(path) {
			img, out, err := processImage(data, filepath.ToSlash(rel), a.Config.MaxImageWidth, a.Config.JPEGQuality)
			if err != nil {
				a.Logger.Warnf("build: copying %s unchanged: %v", rel, err)
			} else {
				data = out
				if img.Resized {
					a.Logger.Debugf("build: resized %s to %dx%d (%d bytes)", img.Filename, img.Width, img.Height, img.Size)
					report.Images++
				}
			}
		}
		if err := a.writeOutput(filepath.ToSlash(rel), data); err != nil {
			return err
		}
		report.Assets++
		return nil
	})
}
