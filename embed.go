package quill

import "embed"

const stylesheetName = "quill.css"

// EmbeddedAssets contains static assets shipped with quill and written into
// every build: quill.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
