package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
)

// Parse decodes a JSON object. Numbers are kept as float64 so that documents
// round-trip through encoding/json without surprises.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Read loads the document at path. A missing file yields an empty document
// and ok=false; any other failure is returned as an error.
func Read(path string) (doc Document, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, true, nil
	}
	doc, err = Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return doc, true, nil
}

// Encode renders doc as two-space indented JSON with a trailing newline.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding JSON document: %w", err)
	}
	return buf.Bytes(), nil
}

// Write atomically replaces the file at path with the encoded document.
func Write(path string, doc Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Extend merges doc onto whatever is already stored at path and writes the
// result back. Existing keys that doc does not mention are kept; arrays that
// doc sets replace the stored ones.
func Extend(path string, doc Document) (Document, error) {
	existing, _, err := Read(path)
	if err != nil {
		return nil, err
	}
	merged, err := Merge(existing, doc, Replace)
	if err != nil {
		return nil, fmt.Errorf("extending %s: %w", path, err)
	}
	if err := Write(path, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Keys returns the sorted dotted paths of every leaf and object key in doc.
// Array elements are not descended into.
func Keys(doc Document) []string {
	var keys []string
	collectKeys(doc, "", &keys)
	sort.Strings(keys)
	return keys
}

func collectKeys(doc Document, prefix string, keys *[]string) {
	for k, v := range doc {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		*keys = append(*keys, path)
		if child, ok := v.(map[string]any); ok {
			collectKeys(child, path, keys)
		}
	}
}

// HasKeys reports whether every dotted path in want exists in doc.
func HasKeys(doc Document, want []string) bool {
	have := make(map[string]bool)
	for _, k := range Keys(doc) {
		have[k] = true
	}
	for _, k := range want {
		if !have[k] {
			return false
		}
	}
	return true
}

// Lookup walks a dotted path and returns the value found there.
func Lookup(doc Document, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
