package main

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const (
	chapterTitlePrefix    = "<strong>"
	chapterTitleSuffix    = "</strong>"
	chapterTitleDelimiter = "/"
)

// fragment is the body of one content document of the book.
type fragment struct {
	title string
	html  string
}

type renderer struct {
	cfg       config
	sanitizer *bluemonday.Policy
}

func newRenderer(cfg config) *renderer {
	r := &renderer{cfg: cfg}

	if cfg.Sanitize {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class", "dir", "lang").Globally()
		r.sanitizer = p
	}

	return r
}

// renderFragments returns the introduction followed by every chapter, in
// source order, and the colophon last when one is configured.
func (r *renderer) renderFragments(doc *sourceDocument) []fragment {
	fragments := make([]fragment, 0, len(doc.Chapters)+2)

	fragments = append(fragments, r.renderIntroduction(doc))
	fragments = append(fragments, r.renderChapters(doc)...)

	if r.cfg.Colophon != "" {
		fragments = append(fragments, r.renderColophon())
	}

	return fragments
}

func (r *renderer) renderIntroduction(doc *sourceDocument) fragment {
	var builder strings.Builder

	title := r.cfg.IntroductionTitle

	logInfo("Converting introduction to HTML...")

	builder.WriteString(`<h1>` + title + `</h1>`)

	for _, paragraph := range doc.Introduction {
		builder.WriteString(`<p>` + r.paragraph(paragraph) + `</p>`)
	}

	return fragment{title: title, html: builder.String()}
}

func (r *renderer) renderChapters(doc *sourceDocument) []fragment {
	fragments := make([]fragment, 0, len(doc.Chapters))

	for _, c := range doc.Chapters {
		var builder strings.Builder

		title := cleanTitle(c[0][0])

		logInfo("Converting %s to HTML...", title)

		builder.WriteString(`<h1>` + title + `</h1>`)

		for _, subChapter := range c {
			for _, paragraph := range subChapter {
				builder.WriteString(`<p>` + r.paragraph(paragraph) + `</p>`)
			}

			builder.WriteString(`<br>`)
		}

		fragments = append(fragments, fragment{title: title, html: builder.String()})
	}

	return fragments
}

func (r *renderer) renderColophon() fragment {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	document := p.Parse([]byte(r.cfg.Colophon))
	htmlRenderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	})

	b := markdown.Render(document, htmlRenderer)

	title := r.cfg.ColophonTitle

	return fragment{title: title, html: `<h1>` + title + `</h1>` + string(b)}
}

func (r *renderer) paragraph(s string) string {
	if r.sanitizer == nil {
		return s
	}

	return r.sanitizer.Sanitize(s)
}

// cleanTitle turns the raw first paragraph of a chapter, such as
// `<strong>Title/Rest</strong>`, into a display title. Double quotes become
// two single quotes so the title is safe inside attribute values.
func cleanTitle(raw string) string {
	title := strings.TrimPrefix(strings.TrimSpace(raw), chapterTitlePrefix)
	title = strings.TrimSuffix(title, chapterTitleSuffix)
	title = strings.SplitN(title, chapterTitleDelimiter, 2)[0]
	title = strings.TrimSpace(title)

	return strings.ReplaceAll(title, `"`, `''`)
}
