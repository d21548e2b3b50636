package service

import (
	"bytes"
	"encoding/json"
	"strings"
)

// maxSafeInteger is the largest integer float64 represents exactly (2^53-1).
// JSON numbers wider than this get silently rounded by most consumers, so
// they are rewritten as decimal strings before caching or transport.
const maxSafeInteger = "9007199254740991"

// decimalizeJSON decodes raw JSON preserving number text, rewrites every
// integer wider than float64 precision into a decimal string, and
// re-encodes. The shape of the document is otherwise untouched.
func decimalizeJSON(raw json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(decimalize(v))
}

func decimalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if isWideInteger(t.String()) {
			return t.String()
		}
		return t
	case []any:
		for i := range t {
			t[i] = decimalize(t[i])
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = decimalize(val)
		}
		return t
	default:
		return v
	}
}

func isWideInteger(s string) bool {
	if strings.ContainsAny(s, ".eE") {
		return false
	}
	s = strings.TrimPrefix(s, "-")
	if len(s) != len(maxSafeInteger) {
		return len(s) > len(maxSafeInteger)
	}
	return s > maxSafeInteger
}

// window slices the page-th window of pageSize items out of an over-fetched
// list. Pages start at 1; a window past the end of the list is empty.
func window[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
