package main

import (
	"archive/zip"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const bookFileExt = ".epub"

type generateZipHandler func(*book, *zip.Writer) error

var (
	generateZipHandlerList = []generateZipHandler{
		generateZipMimetype,
		generateZipContainer,
		generateZipStyles,
		generateZipDocuments,
		generateZipNav,
		generateZipNCX,
		generateZipOPF,
	}
)

// generate writes b into dir as "<title>.epub" and returns the file name.
func generate(b *book, dir string) (fileName string, err error) {
	if err = bookOutputInit(b); err != nil {
		return
	}

	fileName = b.Title + bookFileExt
	outputPath := filepath.Join(dir, b.Title)

	logInfo(`Creating output file "%s"...`, fileName)

	if err = generateZip(b, outputPath+".zip"); err != nil {
		return
	}

	if err = generateEpub(outputPath); err != nil {
		return
	}

	info, err := os.Stat(outputPath + bookFileExt)
	if err != nil {
		return
	}

	logInfo("Wrote %d documents (%s)", len(b.output.documents), humanize.Bytes(uint64(info.Size())))

	return
}

func generateZip(b *book, archivePath string) (err error) {
	archiveFile, err := os.Create(archivePath)
	if err != nil {
		return
	}
	defer func() {
		if closeErr := archiveFile.Close(); err == nil {
			err = closeErr
		}
	}()

	archiveWriter := zip.NewWriter(archiveFile)

	for _, handler := range generateZipHandlerList {
		if err = handler(b, archiveWriter); err != nil {
			return
		}
	}

	return archiveWriter.Close()
}

func generateEpub(outputPath string) (err error) {
	if err = os.Rename(outputPath+".zip", outputPath+bookFileExt); err != nil {
		return
	}

	return
}

func generateZipMimetype(b *book, archiveWriter *zip.Writer) (err error) {
	w, err := archiveWriter.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return
	}

	if _, err = io.WriteString(w, "application/epub+zip"); err != nil {
		return
	}

	return
}

func generateZipContainer(b *book, archiveWriter *zip.Writer) (err error) {
	w, err := archiveWriter.Create("META-INF/container.xml")
	if err != nil {
		return
	}

	var contentBuilder strings.Builder

	contentBuilder.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	contentBuilder.WriteString(`<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">`)
	contentBuilder.WriteString(`<rootfiles>`)
	contentBuilder.WriteString(`<rootfile full-path="` + bookContentDir + bookOPFHref + `" media-type="application/oebps-package+xml" />`)
	contentBuilder.WriteString(`</rootfiles>`)
	contentBuilder.WriteString(`</container>`)

	if _, err = io.WriteString(w, contentBuilder.String()); err != nil {
		return
	}

	return
}

func generateZipStyles(b *book, archiveWriter *zip.Writer) (err error) {
	w, err := archiveWriter.Create(bookContentDir + bookStylesheetHref)
	if err != nil {
		return
	}

	if _, err = w.Write(b.output.styles); err != nil {
		return
	}

	return
}

func generateZipDocuments(b *book, archiveWriter *zip.Writer) (err error) {
	head := `<link href="` + bookStylesheetHref + `" rel="stylesheet" type="text/css" />`

	for _, d := range b.output.documents {
		var w io.Writer

		w, err = archiveWriter.Create(bookContentDir + d.href)
		if err != nil {
			return
		}

		if _, err = io.WriteString(w, xhtmlHeader(b, d.title, head)); err != nil {
			return
		}

		if _, err = w.Write(d.body); err != nil {
			return
		}

		if _, err = io.WriteString(w, xhtmlFooter()); err != nil {
			return
		}
	}

	return
}

func generateZipNav(b *book, archiveWriter *zip.Writer) (err error) {
	w, err := archiveWriter.Create(bookContentDir + bookNavHref)
	if err != nil {
		return
	}

	var builder strings.Builder

	builder.WriteString(xhtmlHeader(b, b.Title, ""))
	builder.WriteString(`<nav epub:type="toc" id="toc" role="doc-toc">`)
	builder.WriteString(`<h2>` + xmlEscape(b.Title) + `</h2>`)
	builder.WriteString(`<ol>`)

	for _, d := range b.output.documents {
		builder.WriteString(`<li><a href="` + hrefEscape(d.href) + `">` + xmlEscape(d.title) + `</a></li>`)
	}

	builder.WriteString(`</ol>`)
	builder.WriteString(`</nav>`)
	builder.WriteString(xhtmlFooter())

	if _, err = io.WriteString(w, builder.String()); err != nil {
		return
	}

	return
}

func generateZipNCX(b *book, archiveWriter *zip.Writer) (err error) {
	w, err := archiveWriter.Create(bookContentDir + bookNCXHref)
	if err != nil {
		return
	}

	var contentBuilder strings.Builder

	contentBuilder.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	contentBuilder.WriteString(`<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">`)
	contentBuilder.WriteString(`<head>`)
	contentBuilder.WriteString(`<meta name="dtb:uid" content="` + xmlEscape(b.Identifier) + `" />`)
	contentBuilder.WriteString(`<meta name="dtb:depth" content="1" />`)
	contentBuilder.WriteString(`<meta name="dtb:totalPageCount" content="0" />`)
	contentBuilder.WriteString(`<meta name="dtb:maxPageNumber" content="0" />`)
	contentBuilder.WriteString(`</head>`)
	contentBuilder.WriteString(`<docTitle>`)
	contentBuilder.WriteString(`<text>` + xmlEscape(b.Title) + `</text>`)
	contentBuilder.WriteString(`</docTitle>`)
	contentBuilder.WriteString(`<navMap>`)

	for i, d := range b.output.documents {
		contentBuilder.WriteString(`<navPoint id="` + d.id + `" playOrder="` + strconv.Itoa(i+1) + `">`)
		contentBuilder.WriteString(`<navLabel>`)
		contentBuilder.WriteString(`<text>` + xmlEscape(d.title) + `</text>`)
		contentBuilder.WriteString(`</navLabel>`)
		contentBuilder.WriteString(`<content src="` + hrefEscape(d.href) + `" />`)
		contentBuilder.WriteString(`</navPoint>`)
	}

	contentBuilder.WriteString(`</navMap>`)
	contentBuilder.WriteString(`</ncx>`)

	if _, err = io.WriteString(w, contentBuilder.String()); err != nil {
		return
	}

	return
}

func generateZipOPF(b *book, archiveWriter *zip.Writer) (err error) {
	w, err := archiveWriter.Create(bookContentDir + bookOPFHref)
	if err != nil {
		return
	}

	var builder strings.Builder

	builder.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	builder.WriteString(`<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="id"`)
	builder.WriteString(` xml:lang="` + xmlEscape(b.Language) + `" dir="` + b.Direction + `">`)
	builder.WriteString(`<metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">`)
	builder.WriteString(`<meta property="dcterms:modified">` + time.Now().UTC().Format("2006-01-02T15:04:05Z") + `</meta>`)
	builder.WriteString(`<dc:identifier id="id">` + xmlEscape(b.Identifier) + `</dc:identifier>`)
	builder.WriteString(`<dc:title>` + xmlEscape(b.Title) + `</dc:title>`)
	builder.WriteString(`<dc:language>` + xmlEscape(b.Language) + `</dc:language>`)

	if b.Author != "" {
		builder.WriteString(`<dc:creator id="creator">` + xmlEscape(b.Author) + `</dc:creator>`)
	}

	builder.WriteString(`</metadata>`)
	builder.WriteString(`<manifest>`)
	builder.WriteString(`<item id="` + bookStylesheetID + `" href="` + bookStylesheetHref + `" media-type="` + mediaTypeCSS + `" />`)

	for _, d := range b.output.documents {
		builder.WriteString(`<item id="` + d.id + `" href="` + hrefEscape(d.href) + `" media-type="` + mediaTypeXHTML + `" />`)
	}

	builder.WriteString(`<item id="ncx" href="` + bookNCXHref + `" media-type="application/x-dtbncx+xml" />`)
	builder.WriteString(`<item id="nav" href="` + bookNavHref + `" media-type="application/xhtml+xml" properties="nav" />`)
	builder.WriteString(`</manifest>`)
	builder.WriteString(`<spine toc="ncx" page-progression-direction="` + b.Direction + `">`)

	for _, d := range b.output.documents {
		builder.WriteString(`<itemref idref="` + d.id + `" />`)
	}

	builder.WriteString(`</spine>`)
	builder.WriteString(`</package>`)

	if _, err = io.WriteString(w, builder.String()); err != nil {
		return
	}

	return
}

func hrefEscape(href string) string {
	return xmlEscape(url.PathEscape(href))
}
