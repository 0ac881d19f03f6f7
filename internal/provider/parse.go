package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CleanText strips the markdown code fences models like to wrap JSON in.
func CleanText(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop the language tag line, e.g. ```json
		text = text[nl+1:]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Decode parses raw provider text as a single JSON value of type T.
// Any failure, including trailing data, is reported as ErrParse.
func Decode[T any](raw string) (T, error) {
	var out T
	text := CleanText(raw)
	if text == "" {
		return out, fmt.Errorf("%w: empty output", ErrParse)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if dec.More() {
		var zero T
		return zero, fmt.Errorf("%w: unexpected data after JSON value", ErrParse)
	}
	return out, nil
}
