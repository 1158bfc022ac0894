package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

// ParseError means the reasoning service replied, but the reply does not
// decode into the FixSuggestion shape. The analysis channel is treated as
// unreliable for the rest of the session.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed fix suggestion: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed fix suggestion: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFixSuggestion decodes raw into a FixSuggestion. Parsing is strict:
// a reply that is not JSON, or that is missing required fields, fails
// rather than degrading into a best-effort suggestion.
func ParseFixSuggestion(raw string) (*model.FixSuggestion, error) {
	cleaned := stripFences(raw)

	var s model.FixSuggestion
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}
	// The reply must be exactly one JSON value; chatty trailers like
	// "hope this helps!" mean the service ignored the format contract.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err != io.EOF {
		return nil, &ParseError{Reason: "trailing content after JSON"}
	}

	if s.Reason == "" {
		return nil, &ParseError{Reason: "missing reason"}
	}
	if s.ChangesSummary == "" {
		return nil, &ParseError{Reason: "missing changes_summary"}
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return nil, &ParseError{Reason: fmt.Sprintf("confidence %v outside [0,1]", s.Confidence)}
	}
	if s.Category == "" {
		s.Category = model.ProblemUnknown
	}
	if !s.Category.Known() {
		return nil, &ParseError{Reason: fmt.Sprintf("unknown category %q", s.Category)}
	}

	return &s, nil
}

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	re := regexp.MustCompile("```[a-zA-Z]*\n|```")
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}
