package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	bookDirection       = "rtl"
	bookContentDir      = "EPUB/"
	bookStylesheetID    = "css_default"
	bookStylesheetHref  = "style/default.css"
	bookDocumentExt     = ".xhtml"
	bookDocumentIDStart = "chapter_"
	bookNavHref         = "nav.xhtml"
	bookNCXHref         = "toc.ncx"
	bookOPFHref         = "content.opf"
)

// bookReservedHrefs are control files that share the content directory with
// the documents.
var bookReservedHrefs = []string{bookNavHref, bookNCXHref, bookOPFHref}

type book struct {
	Title      string
	Language   string
	Author     string
	Direction  string
	Identifier string
	Stylesheet string
	Fragments  []fragment

	output struct {
		styles    []byte
		documents []*bookOutputDocument
	}
}

type bookOutputDocument struct {
	id    string
	title string
	href  string
	body  []byte
}

type bookOutputInitHandler = func(*book) error

var (
	bookOutputInitHandlerList = []bookOutputInitHandler{
		bookOutputInitStyles,
		bookOutputInitDocuments,
	}
)

func newBook(doc *sourceDocument, fragments []fragment, cfg config) *book {
	return &book{
		Title:      doc.Title,
		Language:   doc.Language,
		Author:     cfg.Author,
		Direction:  bookDirection,
		Identifier: doc.identifier,
		Stylesheet: cfg.Stylesheet,
		Fragments:  fragments,
	}
}

func bookOutputInit(b *book) (err error) {
	for _, handler := range bookOutputInitHandlerList {
		if err = handler(b); err != nil {
			return
		}
	}

	return
}

func bookOutputInitStyles(b *book) (err error) {
	b.output.styles, err = minifier.Bytes(mediaTypeCSS, []byte(b.Stylesheet))

	return
}

func bookOutputInitDocuments(b *book) (err error) {
	b.output.documents = make([]*bookOutputDocument, 0, len(b.Fragments))
	hrefs := make(map[string]bool, len(b.Fragments)+len(bookReservedHrefs))

	for _, href := range bookReservedHrefs {
		hrefs[href] = true
	}

	for i, f := range b.Fragments {
		var body []byte

		body, err = xhtmlBody(f.html)
		if err != nil {
			return
		}

		href := bookDocumentHref(f.title, i, hrefs)
		hrefs[href] = true

		b.output.documents = append(b.output.documents, &bookOutputDocument{
			id:    bookDocumentIDStart + strconv.Itoa(i),
			title: f.title,
			href:  href,
			body:  body,
		})
	}

	return
}

// bookDocumentHref names a document after its title. Titles that are empty,
// or that would collide with an earlier document, get a positional name.
func bookDocumentHref(title string, i int, taken map[string]bool) string {
	name := title
	if name == "" || strings.ContainsAny(name, `/\`) {
		name = bookDocumentIDStart + strconv.Itoa(i)
	}

	href := name + bookDocumentExt

	for n := 2; taken[href]; n++ {
		href = name + "_" + strconv.Itoa(n) + bookDocumentExt
	}

	return href
}

// xhtmlBody reserializes an HTML fragment so it is well-formed XML, closing
// void elements such as <br> and escaping stray characters.
func xhtmlBody(fragmentHTML string) (b []byte, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragmentHTML))
	if err != nil {
		return
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return nil, errors.New("fragment has no body")
	}

	s, err := body.Html()
	if err != nil {
		return
	}

	return minifier.Bytes(mediaTypeXHTML, []byte(s))
}
