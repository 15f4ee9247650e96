package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_Simple(t *testing.T) {
	fields := Tokenize("a,b,c", ',')
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestTokenize_TrimsWhitespace(t *testing.T) {
	fields := Tokenize("  a , b ,c  ", ',')
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestTokenize_QuotedDelimiter(t *testing.T) {
	fields := Tokenize(`2025-01-05,"COFFEE, BEANS & CO",-4.50`, ',')
	assert.Equal(t, []string{"2025-01-05", "COFFEE, BEANS & CO", "-4.50"}, fields)
}

func TestTokenize_EscapedQuote(t *testing.T) {
	fields := Tokenize(`"JOE""S DINER",10.00`, ',')
	assert.Equal(t, []string{`JOE"S DINER`, "10.00"}, fields)
}

func TestTokenize_UnclosedQuoteDegradesGracefully(t *testing.T) {
	// An unbalanced quote swallows the rest of the line as one field
	// instead of failing.
	fields := Tokenize(`a,"unclosed,b,c`, ',')
	assert.Equal(t, []string{"a", "unclosed,b,c"}, fields)
}

func TestTokenize_TabDelimiter(t *testing.T) {
	fields := Tokenize("a\tb\tc", '\t')
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestTokenize_EmptyFields(t *testing.T) {
	fields := Tokenize("a,,c,", ',')
	assert.Equal(t, []string{"a", "", "c", ""}, fields)
}
