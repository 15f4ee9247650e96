package statement

import "fmt"

// previewRowCap bounds how many tokenized rows a preview carries.
// This bounds UI payload and memory only; parsing itself is never
// capped.
const previewRowCap = 50

// RawPreview is a read-only projection of a statement for interactive
// mapping UIs: the tokenized rows (capped), where the header was
// found, which delimiter was detected, and a best-effort suggested
// mapping when one exists.
type RawPreview struct {
	Rows      [][]string
	HeaderRow int
	Delimiter rune
	Suggested *ColumnMapping
}

// Preview tokenizes the first rows of content for display and
// suggests a column mapping from the detected header row.
func (p *Parser) Preview(content string) (RawPreview, error) {
	lines := dataLines(content)
	if len(lines) == 0 {
		return RawPreview{}, fmt.Errorf("statement is empty")
	}

	delim := DetectDelimiter(content)
	headerIdx := LocateHeaderRow(lines, delim)

	n := len(lines)
	if n > previewRowCap {
		n = previewRowCap
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = Tokenize(lines[i], delim)
	}

	pv := RawPreview{
		Rows:      rows,
		HeaderRow: headerIdx,
		Delimiter: delim,
	}
	if headerIdx < len(lines) {
		if m, ok := p.mapper.Suggest(Tokenize(lines[headerIdx], delim)); ok {
			pv.Suggested = &m
		}
	}
	return pv, nil
}
