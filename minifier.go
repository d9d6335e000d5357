package main

import (
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/xml"
)

const (
	mediaTypeCSS   = "text/css"
	mediaTypeXHTML = "application/xhtml+xml"
)

var (
	minifier = minify.New()
)

func init() {
	minifier.AddFunc(mediaTypeCSS, css.Minify)
	// Content documents are XML, so they must not go through the HTML
	// minifier, which drops optional end tags. Spaces between inline
	// elements are part of the text.
	minifier.Add(mediaTypeXHTML, &xml.Minifier{KeepWhitespace: true})
}
