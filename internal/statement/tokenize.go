package statement

import "strings"

// Tokenize splits a single line into trimmed fields on delim.
// A double quote toggles quoted mode; two consecutive quotes inside a
// quoted field collapse to one literal quote; the delimiter is literal
// inside quoted mode. Malformed quoting never errors: an unclosed
// quote simply runs to the end of the line.
func Tokenize(line string, delim rune) []string {
	var fields []string
	var b strings.Builder
	quoted := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i++
				continue
			}
			quoted = !quoted
		case r == delim && !quoted:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))
	return fields
}
