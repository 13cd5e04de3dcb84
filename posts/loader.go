package posts

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/eringen/quill/markdown"
)

// Renderer converts a markdown body into display HTML.
type Renderer interface {
	Render(source []byte) (string, error)
}

// Config controls where the loader reads posts from and how it treats them.
type Config struct {
	// Dir is the content root. Ignored when FS is set.
	Dir string
	// FS overrides the filesystem rooted at Dir (mostly for tests).
	FS fs.FS
	// Extension of post files, ".md" by default.
	Extension string
	// Renderer converts bodies to HTML. Defaults to a sanitizing goldmark renderer.
	Renderer Renderer
	// Policy for unreadable or malformed files during FetchAllSummaries.
	Policy Policy
	Logger Logger
}

// Loader reads posts from a flat content directory.
type Loader struct {
	fs       fs.FS
	ext      string
	renderer Renderer
	policy   Policy
	logger   Logger
}

// NewLoader builds a Loader from cfg, filling in defaults.
func NewLoader(cfg Config) *Loader {
	filesystem := cfg.FS
	if filesystem == nil {
		dir := cfg.Dir
		if strings.TrimSpace(dir) == "" {
			dir = "."
		}
		filesystem = os.DirFS(dir)
	}
	ext := cfg.Extension
	if ext == "" {
		ext = ".md"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = markdown.NewRenderer(markdown.Options{})
	}
	policy := cfg.Policy
	if policy == "" {
		policy = PolicyAbort
	}
	var logger Logger = noopLogger{}
	if cfg.Logger != nil {
		logger = cfg.Logger
	}
	return &Loader{
		fs:       filesystem,
		ext:      ext,
		renderer: renderer,
		policy:   policy,
		logger:   logger,
	}
}

// FetchOne loads a single post with its body rendered. It never returns the
// underlying cause: any failure is logged at debug level and reported as
// ErrNotFound.
func (l *Loader) FetchOne(slug string) (Detail, error) {
	detail, err := l.fetch(slug)
	if err != nil {
		l.logger.Debugf("posts: fetch %q: %v", slug, err)
		return Detail{}, ErrNotFound
	}
	return detail, nil
}

func (l *Loader) fetch(slug string) (Detail, error) {
	if !validSlug(slug) {
		return Detail{}, fmt.Errorf("invalid slug")
	}
	meta, body, err := l.readDocument(slug + l.ext)
	if err != nil {
		return Detail{}, err
	}
	content, err := l.renderer.Render(body)
	if err != nil {
		return Detail{}, fmt.Errorf("render: %w", err)
	}
	return Detail{
		Summary: newSummary(slug, meta),
		Content: content,
	}, nil
}

// FetchAllSummaries lists every post file directly under the content root,
// reading only front-matter, and returns the summaries newest first. A bad
// file aborts the listing with a *ListingError under PolicyAbort and is
// skipped with a warning under PolicySkip.
func (l *Loader) FetchAllSummaries() ([]Summary, error) {
	entries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("posts: read content dir: %w", err)
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != l.ext {
			continue
		}
		slug := strings.TrimSuffix(name, l.ext)
		meta, _, err := l.readDocument(name)
		if err == nil && !validSlug(slug) {
			err = fmt.Errorf("%w: file name %q has no usable slug", ErrMalformedMetadata, name)
		}
		if err != nil {
			if l.policy == PolicySkip {
				l.logger.Warnf("posts: skipping %s: %v", name, err)
				continue
			}
			return nil, &ListingError{File: name, Err: err}
		}
		summaries = append(summaries, newSummary(slug, meta))
	}
	return SortByDateDescending(summaries), nil
}

func (l *Loader) readDocument(name string) (metadata, []byte, error) {
	source, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return metadata{}, nil, fmt.Errorf("read %s: %w", name, err)
	}
	return parseDocument(source)
}

func newSummary(slug string, meta metadata) Summary {
	return Summary{
		Slug:    slug,
		Title:   meta.Title,
		Date:    meta.Date,
		Excerpt: meta.Excerpt,
		Link:    Link(slug),
	}
}

// validSlug accepts a non-empty file stem without separators or dot segments.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	if strings.ContainsAny(slug, `/\`) {
		return false
	}
	return fs.ValidPath(slug)
}
