// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports that model output could not be decoded into the
// expected structured shape. It carries the raw text so callers can log it;
// agents treat a ParseError as a recoverable degradation, never a pipeline
// failure.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripFences removes Markdown code-fence markup the model sometimes wraps
// around its JSON payload (```json ... ``` or bare ```).
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeJSON strips fence markup from raw model text and unmarshals the
// remaining payload into v. When the cleaned text still fails to parse, the
// outermost {...} or [...] span is tried once — models occasionally preface
// the payload with prose despite instructions. Any failure is returned as a
// *ParseError.
func DecodeJSON(raw string, v any) error {
	cleaned := StripFences(raw)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	if span, ok := outermostSpan(cleaned); ok {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
	}

	err := json.Unmarshal([]byte(cleaned), v)
	return &ParseError{Raw: raw, Err: err}
}

// outermostSpan returns the widest {...} or [...] substring of s.
func outermostSpan(s string) (string, bool) {
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(s, pair[0])
		end := strings.LastIndex(s, pair[1])
		if start >= 0 && end > start {
			return s[start : end+1], true
		}
	}
	return "", false
}
