package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const isoDateFormat = "2006-01-02"

// months maps lowercase three-letter month names to their number.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseDate parses a statement date. Formats are tried in fixed order:
// ISO 2006-01-02, US 01/02/2006, then DD-Mon-YYYY with a
// case-insensitive month name. Anything else is unparseable and the
// caller skips the row.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse(isoDateFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("01/02/2006", s); err == nil {
		return t, nil
	}
	if t, ok := parseDayMonYear(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseDayMonYear handles DD-Mon-YYYY, e.g. "05-JAN-2024".
func parseDayMonYear(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, okD := parseInt(parts[0])
	year, okY := parseInt(parts[2])
	month, okM := months[strings.ToLower(parts[1])]
	if !okD || !okY || !okM || day < 1 || day > 31 || len(parts[2]) != 4 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// amountStripper removes currency symbols, thousands separators and
// whitespace (including non-breaking spaces) before decimal parsing.
var amountStripper = strings.NewReplacer(
	"$", "", "£", "", "€", "", "¥", "",
	",", "", " ", "", " ", "",
)

// ParseAmount parses a currency value like "$1,234.56" or "(45.00)".
// Parentheses mean negative, as on card statements.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = amountStripper.Replace(strings.TrimSpace(s))
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.Trim(s, "()")
	}
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	return d, nil
}

// ResolveSplitAmount turns split debit/credit columns into one signed
// amount: a non-zero debit becomes a negative amount, otherwise a
// non-zero credit becomes a positive amount, otherwise zero.
func ResolveSplitAmount(debit, credit string) decimal.Decimal {
	if d, err := ParseAmount(debit); err == nil && !d.IsZero() {
		return d.Abs().Neg()
	}
	if c, err := ParseAmount(credit); err == nil && !c.IsZero() {
		return c.Abs()
	}
	return decimal.Zero
}

// looksLikeDate reports whether s parses under any supported date
// format. Used by headerless format detectors.
func looksLikeDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// looksLikeAmount reports whether s parses as a currency value.
func looksLikeAmount(s string) bool {
	_, err := ParseAmount(s)
	return err == nil
}
