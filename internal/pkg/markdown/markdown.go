// Package markdown renders editorial markdown (guide and field manual bodies)
// to HTML with a heading outline.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

const wordsPerMinute = 220

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		extension.Footnote,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithXHTML(),
	),
)

// Heading is one h2/h3 entry of the outline.
type Heading struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Rendered struct {
	HTML           string    `json:"html"`
	Outline        []Heading `json:"outline"`
	ReadingMinutes int       `json:"readingMinutes"`
}

// Render converts src. On a conversion failure the escaped source is returned
// so a page still shows its text.
func Render(src string) Rendered {
	src = strings.TrimSpace(src)
	out := Rendered{Outline: []Heading{}}
	if src == "" {
		return out
	}
	out.ReadingMinutes = readingMinutes(src)

	source := []byte(src)
	doc := engine.Parser().Parse(text.NewReader(source))
	out.Outline = outline(doc, source)

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, source, doc); err != nil {
		out.HTML = "<p>" + template.HTMLEscapeString(src) + "</p>"
		return out
	}
	out.HTML = buf.String()
	return out
}

func outline(doc ast.Node, source []byte) []Heading {
	headings := []Heading{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level < 2 || h.Level > 3 {
			return ast.WalkContinue, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		headings = append(headings, Heading{ID: id, Level: h.Level, Text: plainText(h, source)})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func readingMinutes(src string) int {
	words := len(strings.Fields(src))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
