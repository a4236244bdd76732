package sqlutil

import (
	"strconv"
	"strings"
)

// Builder accumulates SQL text together with its positional parameters.
//
// Placeholders are written as ?N where N is the 1-based index of the value in
// Params, so the two can never drift apart.
type Builder struct {
	sql    strings.Builder
	params []any
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PushSQL appends raw SQL text. A newline is inserted first when neither the
// existing text nor the new fragment supplies whitespace at the boundary.
func (b *Builder) PushSQL(text string) *Builder {
	if text == "" {
		return b
	}
	if b.sql.Len() > 0 && !isSpace(text[0]) && !b.endsWithSpace() {
		b.sql.WriteByte('\n')
	}
	b.sql.WriteString(text)
	return b
}

// PushParameter records value and appends its placeholder.
func (b *Builder) PushParameter(value any) *Builder {
	b.params = append(b.params, value)
	b.sql.WriteByte('?')
	b.sql.WriteString(strconv.Itoa(len(b.params)))
	return b
}

// PushValues appends a VALUES-style tuple list, one single-column row per
// value: (?1),(?2),...
func (b *Builder) PushValues(values []string) *Builder {
	for i, v := range values {
		if i > 0 {
			b.sql.WriteByte(',')
		}
		b.sql.WriteByte('(')
		b.PushParameter(v)
		b.sql.WriteByte(')')
	}
	return b
}

// SQL returns the accumulated statement text.
func (b *Builder) SQL() string {
	return b.sql.String()
}

// Params returns the bound values in placeholder order.
func (b *Builder) Params() []any {
	return b.params
}

func (b *Builder) endsWithSpace() bool {
	s := b.sql.String()
	return len(s) > 0 && isSpace(s[len(s)-1])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t'
}
