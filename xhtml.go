package main

import (
	"strings"

	"golang.org/x/net/html"
)

func xhtmlHeader(b *book, title, head string) string {
	var builder strings.Builder

	builder.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	builder.WriteString(`<!DOCTYPE html>`)
	builder.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops"`)
	builder.WriteString(` lang="` + xmlEscape(b.Language) + `" xml:lang="` + xmlEscape(b.Language) + `"`)
	builder.WriteString(` dir="` + b.Direction + `">`)
	builder.WriteString(`<head>`)
	builder.WriteString(`<title>` + xmlEscape(title) + `</title>`)
	builder.WriteString(head)
	builder.WriteString(`</head>`)
	builder.WriteString(`<body>`)

	return builder.String()
}

func xhtmlFooter() string {
	return "</body></html>"
}

func xmlEscape(s string) string {
	return html.EscapeString(s)
}
