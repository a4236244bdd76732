package query

import (
	"fmt"
	"strings"
)

// SyntaxError reports malformed query text.
type SyntaxError struct {
	Pos      int    // byte offset into the query text
	Fragment string // offending text, empty at end of input
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("query syntax error at position %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("query syntax error at position %d near '%s': %s", e.Pos, e.Fragment, e.Message)
}

// UnknownTagError reports a tag name absent from the database.
type UnknownTagError struct {
	Name string
}

func (e *UnknownTagError) Error() string {
	return "unknown tag: " + e.Name
}

// UnknownValueError reports a value absent from the database.
type UnknownValueError struct {
	Name string
}

func (e *UnknownValueError) Error() string {
	return "unknown value: " + e.Name
}

// ValidationError aggregates every unknown tag and value found in a query.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Lines(), "\n")
}

// Lines returns one message per failure.
func (e *ValidationError) Lines() []string {
	lines := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		lines[i] = err.Error()
	}
	return lines
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

// UnknownTags returns the names of the unknown tags.
func (e *ValidationError) UnknownTags() []string {
	var names []string
	for _, err := range e.Errs {
		if t, ok := err.(*UnknownTagError); ok {
			names = append(names, t.Name)
		}
	}
	return names
}

// UnknownValues returns the unknown value literals.
func (e *ValidationError) UnknownValues() []string {
	var names []string
	for _, err := range e.Errs {
		if v, ok := err.(*UnknownValueError); ok {
			names = append(names, v.Name)
		}
	}
	return names
}
