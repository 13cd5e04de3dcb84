// Package posts loads blog posts from a directory of markdown files with
// front-matter. It is the only source of post data: records are derived
// fresh from disk on every call and files are never written.
package posts

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	// ErrNotFound is returned by FetchOne for every failure: a missing file,
	// an unreadable one, malformed front-matter or a render error.
	ErrNotFound = errors.New("posts: not found")

	// ErrMalformedMetadata marks a file whose front-matter cannot be parsed
	// or lacks a required field (title, date).
	ErrMalformedMetadata = errors.New("posts: malformed metadata")

	// ErrInvalidPolicy is returned by ParsePolicy for unknown policy names.
	ErrInvalidPolicy = errors.New("posts: invalid listing policy")
)

// ListingError reports the file that aborted a FetchAllSummaries call.
type ListingError struct {
	File string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("posts: listing %s: %v", e.File, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// Summary is the metadata-only projection of a post used by list pages.
type Summary struct {
	Slug    string
	Title   string
	Date    string
	Excerpt string
	Link    string
}

// Published returns the parsed post date, if Date is a recognised ISO-8601 value.
func (s Summary) Published() (time.Time, bool) {
	return ParseDate(s.Date)
}

// Detail is a Summary plus the rendered HTML body.
type Detail struct {
	Summary
	Content string
}

// Link returns the site-relative URL of a post.
func Link(slug string) string {
	return "/" + url.PathEscape(slug) + "/"
}

// Policy decides what FetchAllSummaries does with a file it cannot load.
type Policy string

const (
	// PolicyAbort fails the whole listing on the first bad file.
	PolicyAbort Policy = "abort"
	// PolicySkip logs the bad file, leaves it out and keeps going.
	PolicySkip Policy = "skip"
)

// ParsePolicy validates a policy name. An empty name yields PolicyAbort.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, name)
	}
}

// Logger is the subset of a leveled logger the loader writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}
