package markdown

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// postTransformer rewrites the AST of a post body before rendering:
// relative links to sibling posts ("other.md") point at their pages
// ("/other/"), and every image after the first loads lazily.
type postTransformer struct{}

func (t *postTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	images := 0
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			if dest, ok := postLink(v.Destination); ok {
				v.Destination = dest
			}
		case *ast.Image:
			images++
			if images > 1 {
				v.SetAttributeString("loading", []byte("lazy"))
			}
		}
		return ast.WalkContinue, nil
	})
}

// postLink maps "other.md" or "./other.md#part" to "/other/" or
// "/other/#part". Absolute URLs and non-markdown targets are left alone.
func postLink(dest []byte) ([]byte, bool) {
	target, fragment, _ := strings.Cut(string(dest), "#")
	if !strings.HasSuffix(target, ".md") {
		return nil, false
	}
	if u, err := url.Parse(target); err != nil || u.IsAbs() || u.Host != "" {
		return nil, false
	}
	if strings.HasPrefix(target, "/") {
		return nil, false
	}
	slug := strings.TrimSuffix(path.Base(target), ".md")
	if slug == "" || slug == "." {
		return nil, false
	}
	var buf bytes.Buffer
	buf.WriteString("/")
	buf.WriteString(slug)
	buf.WriteString("/")
	if fragment != "" {
		buf.WriteString("#")
		buf.WriteString(fragment)
	}
	return buf.Bytes(), true
}
