package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/language"
)

const chaptersKey = ""

var (
	errInvalidSyntax = errors.New("invalid JSON syntax")
	errInvalidSchema = errors.New("invalid document shape")
)

// chapter is a list of sub-chapters, each a list of paragraphs.
type chapter [][]string

type sourceDocument struct {
	Title        string
	Language     string
	Introduction []string
	Chapters     []chapter

	identifier string
}

type sourceDocumentJSON struct {
	HeTitle  *string                     `json:"heTitle"`
	Language *string                     `json:"language"`
	Text     map[string]*json.RawMessage `json:"text"`
}

// loadDocument reads and validates the JSON file at path. Read failures are
// returned unwrapped; anything wrong with the content wraps errInvalidSyntax
// or errInvalidSchema.
func loadDocument(path string) (*sourceDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	logInfo("Converting file to a json object...")

	return parseDocument(b)
}

func parseDocument(b []byte) (*sourceDocument, error) {
	var raw sourceDocumentJSON

	if err := json.Unmarshal(b, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q: %v", errInvalidSchema, typeErr.Field, err)
		}

		return nil, fmt.Errorf("%w: %v", errInvalidSyntax, err)
	}

	if raw.HeTitle == nil || *raw.HeTitle == "" {
		return nil, fmt.Errorf("%w: missing heTitle", errInvalidSchema)
	}

	if strings.ContainsAny(*raw.HeTitle, `/\`) || *raw.HeTitle == "." || *raw.HeTitle == ".." {
		return nil, fmt.Errorf("%w: heTitle %q is not a valid file name", errInvalidSchema, *raw.HeTitle)
	}

	if raw.Language == nil {
		return nil, fmt.Errorf("%w: missing language", errInvalidSchema)
	}

	if raw.Text == nil {
		return nil, fmt.Errorf("%w: missing text", errInvalidSchema)
	}

	validateLanguage(*raw.Language)

	doc := &sourceDocument{
		Title:    *raw.HeTitle,
		Language: *raw.Language,
	}

	if err := decodeTextField(raw.Text, "Introduction", &doc.Introduction); err != nil {
		return nil, err
	}

	if err := decodeTextField(raw.Text, chaptersKey, &doc.Chapters); err != nil {
		return nil, err
	}

	for i, c := range doc.Chapters {
		if len(c) == 0 || len(c[0]) == 0 {
			return nil, fmt.Errorf("%w: chapter %d has no title paragraph", errInvalidSchema, i+1)
		}
	}

	doc.identifier = documentIdentifier(doc.Title, b)

	return doc, nil
}

func decodeTextField(text map[string]*json.RawMessage, key string, v interface{}) error {
	field, ok := text[key]
	if !ok || field == nil {
		return fmt.Errorf("%w: missing text[%q]", errInvalidSchema, key)
	}

	if err := json.Unmarshal(*field, v); err != nil {
		return fmt.Errorf("%w: text[%q]: %v", errInvalidSchema, key, err)
	}

	return nil
}

// validateLanguage warns about values that are not BCP 47 tags. The value
// itself is always used as given.
func validateLanguage(s string) bool {
	if _, err := language.Parse(s); err != nil {
		logWarn("Unrecognized language %q, using it as is", s)
		return false
	}

	return true
}

// documentIdentifier is stable for identical input so that rebuilding a book
// keeps its identity in readers' libraries.
func documentIdentifier(title string, b []byte) string {
	sum := sha256.Sum256(b)
	slug := strcase.ToKebab(title)

	if slug == "" {
		return "urn:sha256:" + hex.EncodeToString(sum[:])
	}

	return "urn:" + slug + ":sha256:" + hex.EncodeToString(sum[:])
}
