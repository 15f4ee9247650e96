package statement

import "strings"

// DetectDelimiter inspects the first non-empty line and returns the
// field delimiter. Tab wins over semicolon, semicolon over comma:
// comma is the most common false positive inside description text, so
// the rarer delimiters take priority.
func DetectDelimiter(content string) rune {
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.ContainsRune(line, '\t'):
			return '\t'
		case strings.ContainsRune(line, ';'):
			return ';'
		default:
			return ','
		}
	}
	return ','
}

// LocateHeaderRow finds the header line among noisy preamble lines.
// Brokerage exports often prepend metadata ("For Account:,#####") with
// a different column count than the tabular data, so the header is
// identified structurally: it is the first line whose field count
// equals the most frequent count among lines with more than two
// fields. Returns 0 when no line has more than two fields.
func LocateHeaderRow(lines []string, delim rune) int {
	counts := make([]int, len(lines))
	freq := make(map[int]int)
	for i, line := range lines {
		n := len(Tokenize(line, delim))
		counts[i] = n
		if n > 2 {
			freq[n]++
		}
	}

	mode, best := 0, 0
	for n, c := range freq {
		if c > best || (c == best && n > mode) {
			mode, best = n, c
		}
	}
	if mode == 0 {
		return 0
	}

	for i, n := range counts {
		if n == mode {
			return i
		}
	}
	return 0
}

// splitLines normalizes CRLF/CR/LF endings and splits content into
// lines without dropping any.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// dataLines returns the non-empty lines of content in order.
func dataLines(content string) []string {
	var lines []string
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
