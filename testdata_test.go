package main

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const minimalDocumentJSON = `{"heTitle":"T","language":"he","text":{"Introduction":["p1"],"":[[["<strong>C1/x</strong>"],["p2"]]]}}`

type testOPF struct {
	Manifest []struct {
		ID   string `xml:"id,attr"`
		Href string `xml:"href,attr"`
	} `xml:"manifest>item"`
	Spine struct {
		Direction string `xml:"page-progression-direction,attr"`
		Items     []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type testNCX struct {
	NavPoints []struct {
		Label   string `xml:"navLabel>text"`
		Content struct {
			Src string `xml:"src,attr"`
		} `xml:"content"`
	} `xml:"navMap>navPoint"`
}

// writeTestFile writes content to name inside a fresh temp dir and returns
// the full path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("writeTestFile: %v", err)
	}
	return p
}

// readTestEpub returns the archive entries of the epub at path, in archive
// order, keyed by name.
func readTestEpub(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("readTestEpub: open %s: %v", path, err)
	}
	defer zr.Close()

	var names []string
	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("readTestEpub: open entry %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("readTestEpub: read entry %s: %v", f.Name, err)
		}
		names = append(names, f.Name)
		files[f.Name] = string(b)
	}
	return names, files
}

func parseTestOPF(t *testing.T, content string) testOPF {
	t.Helper()
	var opf testOPF
	if err := xml.Unmarshal([]byte(content), &opf); err != nil {
		t.Fatalf("parseTestOPF: %v", err)
	}
	return opf
}

func parseTestNCX(t *testing.T, content string) testNCX {
	t.Helper()
	var ncx testNCX
	if err := xml.Unmarshal([]byte(content), &ncx); err != nil {
		t.Fatalf("parseTestNCX: %v", err)
	}
	return ncx
}

func parseTestXHTML(t *testing.T, content string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parseTestXHTML: %v", err)
	}
	return doc
}

// captureLog redirects console logging into a buffer for the duration of
// the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	prev := logOutput
	logOutput = buf
	t.Cleanup(func() { logOutput = prev })
	return buf
}
