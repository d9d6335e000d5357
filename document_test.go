package main

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	captureLog(t)

	doc, err := parseDocument([]byte(minimalDocumentJSON))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}

	if doc.Title != "T" {
		t.Errorf("Title = %q, want %q", doc.Title, "T")
	}
	if doc.Language != "he" {
		t.Errorf("Language = %q, want %q", doc.Language, "he")
	}
	if !reflect.DeepEqual(doc.Introduction, []string{"p1"}) {
		t.Errorf("Introduction = %v, want [p1]", doc.Introduction)
	}
	wantChapters := []chapter{{{"<strong>C1/x</strong>"}, {"p2"}}}
	if !reflect.DeepEqual(doc.Chapters, wantChapters) {
		t.Errorf("Chapters = %v, want %v", doc.Chapters, wantChapters)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	captureLog(t)

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", `{"heTitle": `, errInvalidSyntax},
		{"plain text", `hello`, errInvalidSyntax},
		{"top level array", `[1, 2]`, errInvalidSchema},
		{"null", `null`, errInvalidSchema},
		{"missing heTitle", `{"language":"he","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"empty heTitle", `{"heTitle":"","language":"he","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"heTitle with slash", `{"heTitle":"../T","language":"he","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"heTitle with backslash", `{"heTitle":"a\\b","language":"he","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"heTitle dot dot", `{"heTitle":"..","language":"he","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"heTitle not a string", `{"heTitle":5,"language":"he","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"missing language", `{"heTitle":"T","text":{"Introduction":[],"":[]}}`, errInvalidSchema},
		{"missing text", `{"heTitle":"T","language":"he"}`, errInvalidSchema},
		{"missing Introduction", `{"heTitle":"T","language":"he","text":{"":[]}}`, errInvalidSchema},
		{"null Introduction", `{"heTitle":"T","language":"he","text":{"Introduction":null,"":[]}}`, errInvalidSchema},
		{"missing chapters", `{"heTitle":"T","language":"he","text":{"Introduction":[]}}`, errInvalidSchema},
		{"chapters wrong depth", `{"heTitle":"T","language":"he","text":{"Introduction":[],"":["a"]}}`, errInvalidSchema},
		{"empty chapter", `{"heTitle":"T","language":"he","text":{"Introduction":[],"":[[]]}}`, errInvalidSchema},
		{"empty first sub-chapter", `{"heTitle":"T","language":"he","text":{"Introduction":[],"":[[[],["p"]]]}}`, errInvalidSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDocument([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("parseDocument() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseDocumentEmptyLists(t *testing.T) {
	captureLog(t)

	doc, err := parseDocument([]byte(`{"heTitle":"T","language":"he","text":{"Introduction":[],"":[]}}`))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if len(doc.Introduction) != 0 || len(doc.Chapters) != 0 {
		t.Errorf("got %d paragraphs and %d chapters, want none", len(doc.Introduction), len(doc.Chapters))
	}
}

func TestParseDocumentKeepsLanguage(t *testing.T) {
	log := captureLog(t)

	for _, lang := range []string{"he", "HE", "iw", "he-il", "en_US", "not a tag"} {
		input := `{"heTitle":"T","language":"` + lang + `","text":{"Introduction":[],"":[]}}`

		doc, err := parseDocument([]byte(input))
		if err != nil {
			t.Fatalf("parseDocument(language %q) error = %v", lang, err)
		}
		if doc.Language != lang {
			t.Errorf("Language = %q, want %q kept as given", doc.Language, lang)
		}
	}

	if !strings.Contains(log.String(), `Unrecognized language "not a tag"`) {
		t.Errorf("expected a warning for the unrecognized tag, log = %q", log.String())
	}
}

func TestValidateLanguage(t *testing.T) {
	captureLog(t)

	tests := []struct {
		input string
		want  bool
	}{
		{"he", true},
		{"he-IL", true},
		{"not a tag", false},
	}

	for _, tt := range tests {
		if got := validateLanguage(tt.input); got != tt.want {
			t.Errorf("validateLanguage(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDocumentIdentifier(t *testing.T) {
	a := documentIdentifier("My Book", []byte(minimalDocumentJSON))
	b := documentIdentifier("My Book", []byte(minimalDocumentJSON))
	if a != b {
		t.Errorf("identifier not stable: %q != %q", a, b)
	}
	if !strings.HasPrefix(a, "urn:my-book:sha256:") {
		t.Errorf("identifier = %q, want urn:my-book:sha256: prefix", a)
	}

	c := documentIdentifier("My Book", []byte(minimalDocumentJSON+" "))
	if a == c {
		t.Errorf("different input produced the same identifier %q", a)
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := loadDocument(t.TempDir() + "/missing.json")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("loadDocument() error = %v, want os.ErrNotExist", err)
	}
	if errors.Is(err, errInvalidSyntax) || errors.Is(err, errInvalidSchema) {
		t.Errorf("read failure reported as a document error: %v", err)
	}
}
