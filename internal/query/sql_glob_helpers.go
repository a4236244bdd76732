package query

import "strings"

// escapeGlobPattern makes s match literally inside a GLOB pattern. GLOB has
// no escape character, so each metacharacter is wrapped in a one-character
// class.
func escapeGlobPattern(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			sb.WriteByte('[')
			sb.WriteRune(r)
			sb.WriteByte(']')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
