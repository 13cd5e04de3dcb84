package posts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func post(title, date, body string) *fstest.MapFile {
	src := "---\ntitle: \"" + title + "\"\ndate: \"" + date + "\"\n---\n" + body
	return &fstest.MapFile{Data: []byte(src)}
}

func newTestLoader(files fstest.MapFS, policy Policy) *Loader {
	return NewLoader(Config{FS: files, Policy: policy})
}

func TestFetchOneRoundTrip(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"hello-world.md": post("Hello World", "2024-05-01", "# Hi\n"),
	}, "")

	got, err := l.FetchOne("hello-world")
	if err != nil {
		t.Fatalf("FetchOne failed: %v", err)
	}
	if got.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q", got.Slug, "hello-world")
	}
	if got.Title != "Hello World" {
		t.Errorf("Title = %q, want %q", got.Title, "Hello World")
	}
	if got.Date != "2024-05-01" {
		t.Errorf("Date = %q, want %q", got.Date, "2024-05-01")
	}
	if got.Link != "/hello-world/" {
		t.Errorf("Link = %q, want %q", got.Link, "/hello-world/")
	}
	if !strings.Contains(got.Content, "<h1") || !strings.Contains(got.Content, "Hi</h1>") {
		t.Errorf("Content = %q, want rendered heading for Hi", got.Content)
	}
}

func TestFetchOneUnquotedDateAndExcerpt(t *testing.T) {
	src := "---\ntitle: Plain\ndate: 2024-02-03\nexcerpt: Short text\n---\nbody\n"
	l := newTestLoader(fstest.MapFS{"plain.md": {Data: []byte(src)}}, "")

	got, err := l.FetchOne("plain")
	if err != nil {
		t.Fatalf("FetchOne failed: %v", err)
	}
	if got.Date != "2024-02-03" {
		t.Errorf("Date = %q, want %q", got.Date, "2024-02-03")
	}
	if got.Excerpt != "Short text" {
		t.Errorf("Excerpt = %q, want %q", got.Excerpt, "Short text")
	}
}

func TestFetchOneNotFound(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"hello-world.md": post("Hello World", "2024-05-01", "# Hi\n"),
		"broken.md":      {Data: []byte("---\ntitle: [unclosed\n---\nbody")},
		"no-title.md":    {Data: []byte("---\ndate: 2024-01-01\n---\nbody")},
		"no-meta.md":     {Data: []byte("just a body")},
		"nested/deep.md": post("Deep", "2024-01-01", "x"),
	}, "")

	tests := []string{
		"does-not-exist",
		"broken",
		"no-title",
		"no-meta",
		"",
		"..",
		"nested/deep",
		"hello-*",
		"hello-world.md",
	}
	for _, slug := range tests {
		got, err := l.FetchOne(slug)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("FetchOne(%q) error = %v, want ErrNotFound", slug, err)
		}
		if err != ErrNotFound {
			t.Errorf("FetchOne(%q) error = %v, want the bare ErrNotFound", slug, err)
		}
		if got.Slug != "" {
			t.Errorf("FetchOne(%q) returned a record: %+v", slug, got)
		}
	}
}

type failingRenderer struct{}

func (failingRenderer) Render([]byte) (string, error) {
	return "", errors.New("boom")
}

func TestFetchOneRenderErrorIsNotFound(t *testing.T) {
	l := NewLoader(Config{
		FS:       fstest.MapFS{"a.md": post("A", "2024-01-01", "body")},
		Renderer: failingRenderer{},
	})
	if _, err := l.FetchOne("a"); err != ErrNotFound {
		t.Errorf("FetchOne error = %v, want ErrNotFound", err)
	}
}

type recordingLogger struct {
	debug []string
	warn  []string
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) {
	r.debug = append(r.debug, format)
}

func (r *recordingLogger) Warnf(format string, args ...interface{}) {
	r.warn = append(r.warn, format)
}

func TestFetchOneLogsCause(t *testing.T) {
	rec := &recordingLogger{}
	l := NewLoader(Config{FS: fstest.MapFS{}, Logger: rec})
	_, _ = l.FetchOne("missing")
	if len(rec.debug) != 1 {
		t.Errorf("debug entries = %d, want 1", len(rec.debug))
	}
}

func TestFetchAllSummariesOrdering(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"first.md":  post("First", "2024-01-01", "one"),
		"third.md":  post("Third", "2024-03-01", "three"),
		"second.md": post("Second", "2024-02-01", "two"),
	}, "")

	got, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	want := []string{"2024-03-01", "2024-02-01", "2024-01-01"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Date != w {
			t.Errorf("got[%d].Date = %q, want %q", i, got[i].Date, w)
		}
	}
}

func TestFetchAllSummariesOnePerFile(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"a.md":          post("A", "2024-01-01", "a"),
		"b.md":          post("B", "2024-01-02", "b"),
		"c.md":          post("C", "2024-01-03", "c"),
		"notes.txt":     {Data: []byte("ignored")},
		"drafts/old.md": post("Old", "2020-01-01", "nested posts are not listed"),
	}, "")

	got, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s.Slug] {
			t.Errorf("duplicate slug %q", s.Slug)
		}
		seen[s.Slug] = true
	}
	for _, slug := range []string{"a", "b", "c"} {
		if !seen[slug] {
			t.Errorf("missing slug %q", slug)
		}
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestFetchAllSummariesIdempotent(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"a.md": post("A", "2024-01-01", "a"),
		"b.md": post("B", "2024-01-01", "b"),
		"c.md": post("C", "2023-06-01", "c"),
	}, "")

	first, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	second, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFetchAllSummariesDoesNotRender(t *testing.T) {
	l := NewLoader(Config{
		FS:       fstest.MapFS{"a.md": post("A", "2024-01-01", "body")},
		Renderer: failingRenderer{},
	})
	got, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "A" {
		t.Errorf("got %+v, want one summary titled A", got)
	}
}

func TestFetchAllSummariesAbortsOnMalformedFile(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"good.md": post("Good", "2024-01-01", "ok"),
		"bad.md":  {Data: []byte("---\ntitle: Missing date\n---\nbody")},
	}, PolicyAbort)

	got, err := l.FetchAllSummaries()
	if err == nil {
		t.Fatalf("expected error, got %+v", got)
	}
	var listErr *ListingError
	if !errors.As(err, &listErr) {
		t.Fatalf("error = %T, want *ListingError", err)
	}
	if listErr.File != "bad.md" {
		t.Errorf("File = %q, want %q", listErr.File, "bad.md")
	}
	if !errors.Is(err, ErrMalformedMetadata) {
		t.Errorf("error %v should wrap ErrMalformedMetadata", err)
	}
	if got != nil {
		t.Errorf("expected nil summaries on abort, got %+v", got)
	}
}

func TestFetchAllSummariesSkipPolicy(t *testing.T) {
	rec := &recordingLogger{}
	l := NewLoader(Config{
		FS: fstest.MapFS{
			"good.md": post("Good", "2024-01-01", "ok"),
			"bad.md":  {Data: []byte("no front matter at all")},
		},
		Policy: PolicySkip,
		Logger: rec,
	})

	got, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "good" {
		t.Errorf("got %+v, want only the good post", got)
	}
	if len(rec.warn) != 1 {
		t.Errorf("warn entries = %d, want 1", len(rec.warn))
	}
}

type unreadableFS struct {
	fstest.MapFS
	name string
}

func (u unreadableFS) Open(name string) (fs.File, error) {
	if name == u.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return u.MapFS.Open(name)
}

func (u unreadableFS) ReadFile(name string) ([]byte, error) {
	if name == u.name {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrPermission}
	}
	return u.MapFS.ReadFile(name)
}

func TestFetchAllSummariesUnreadableFile(t *testing.T) {
	files := unreadableFS{
		MapFS: fstest.MapFS{
			"good.md":   post("Good", "2024-01-01", "ok"),
			"locked.md": post("Locked", "2024-01-02", "secret"),
		},
		name: "locked.md",
	}

	_, err := NewLoader(Config{FS: files}).FetchAllSummaries()
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("error = %v, want fs.ErrPermission", err)
	}

	got, err := NewLoader(Config{FS: files, Policy: PolicySkip}).FetchAllSummaries()
	if err != nil {
		t.Fatalf("skip policy failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestFetchAllSummariesMissingDir(t *testing.T) {
	l := NewLoader(Config{Dir: filepath.Join(t.TempDir(), "nope")})
	if _, err := l.FetchAllSummaries(); err == nil {
		t.Fatal("expected error for missing content dir")
	}
}

func TestLoaderReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	src := "---\ntitle: Disk\ndate: 2024-04-04\n---\nSome *text*.\n"
	if err := os.WriteFile(filepath.Join(dir, "disk.markdown"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(Config{Dir: dir, Extension: "markdown"})
	got, err := l.FetchOne("disk")
	if err != nil {
		t.Fatalf("FetchOne failed: %v", err)
	}
	if !strings.Contains(got.Content, "<em>text</em>") {
		t.Errorf("Content = %q, want emphasis", got.Content)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  Policy
		err   bool
	}{
		{"", PolicyAbort, false},
		{"abort", PolicyAbort, false},
		{"skip", PolicySkip, false},
		{"ignore", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("ParsePolicy(%q) error = %v, want error %v", tt.input, err, tt.err)
		}
		if tt.err && !errors.Is(err, ErrInvalidPolicy) {
			t.Errorf("ParsePolicy(%q) error = %v, want ErrInvalidPolicy", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestListedSlugsCanBeFetched(t *testing.T) {
	l := newTestLoader(fstest.MapFS{
		"what-is-[x].md": post("Brackets", "2024-01-01", "b"),
		"why?.md":        post("Question", "2024-01-02", "q"),
		"plain.md":       post("Plain", "2024-01-03", "p"),
	}, "")

	list, err := l.FetchAllSummaries()
	if err != nil {
		t.Fatalf("FetchAllSummaries failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for _, s := range list {
		got, err := l.FetchOne(s.Slug)
		if err != nil {
			t.Errorf("listed slug %q cannot be fetched: %v", s.Slug, err)
			continue
		}
		if got.Summary != s {
			t.Errorf("FetchOne(%q).Summary = %+v, want %+v", s.Slug, got.Summary, s)
		}
	}
}

func TestFetchAllSummariesEmptyStem(t *testing.T) {
	files := fstest.MapFS{
		".md":   post("Nameless", "2024-01-01", "x"),
		"ok.md": post("OK", "2024-01-02", "y"),
	}

	_, err := newTestLoader(files, PolicyAbort).FetchAllSummaries()
	var le *ListingError
	if !errors.As(err, &le) || le.File != ".md" {
		t.Fatalf("abort policy: err = %v, want ListingError for .md", err)
	}
	if !errors.Is(err, ErrMalformedMetadata) {
		t.Errorf("err = %v, want ErrMalformedMetadata", err)
	}

	got, err := newTestLoader(files, PolicySkip).FetchAllSummaries()
	if err != nil {
		t.Fatalf("skip policy: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "ok" {
		t.Errorf("skip policy = %+v, want only ok", got)
	}
}
