package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_ISO(t *testing.T) {
	d, err := ParseDate("2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_USSlash(t *testing.T) {
	d, err := ParseDate("01/22/2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 22, d.Day())
}

func TestParseDate_DayMonthName(t *testing.T) {
	d, err := ParseDate("05-Jan-2025")
	require.NoError(t, err)
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 5, d.Day())
}

func TestParseDate_MonthNameCaseInsensitive(t *testing.T) {
	upper, err := ParseDate("15-MAR-2024")
	require.NoError(t, err)
	lower, err2 := ParseDate("15-mar-2024")
	require.NoError(t, err2)
	assert.Equal(t, upper, lower)
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2025/01/05", "32-Jan-2025", "05-Foo-2025"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "expected failure for %q", s)
	}
}

func TestParseAmount_Plain(t *testing.T) {
	d, err := ParseAmount("-450")
	require.NoError(t, err)
	assert.Equal(t, "-450.00", d.StringFixed(2))
}

func TestParseAmount_StripsCurrencyAndSeparators(t *testing.T) {
	d, err := ParseAmount("$1,234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.StringFixed(2))

	d, err = ParseAmount("£2 500.00")
	require.NoError(t, err)
	assert.Equal(t, "2500.00", d.StringFixed(2))
}

func TestParseAmount_ParenthesesNegative(t *testing.T) {
	d, err := ParseAmount("(45.00)")
	require.NoError(t, err)
	assert.Equal(t, "-45.00", d.StringFixed(2))
}

func TestParseAmount_Unparseable(t *testing.T) {
	for _, s := range []string{"", "-", "abc", "12.3.4"} {
		_, err := ParseAmount(s)
		assert.Error(t, err, "expected failure for %q", s)
	}
}

func TestResolveSplitAmount_DebitNegative(t *testing.T) {
	amount := ResolveSplitAmount("50.00", "")
	assert.Equal(t, "-50.00", amount.StringFixed(2))
}

func TestResolveSplitAmount_CreditPositive(t *testing.T) {
	amount := ResolveSplitAmount("", "50.00")
	assert.Equal(t, "50.00", amount.StringFixed(2))
}

func TestResolveSplitAmount_BothEmptyIsZero(t *testing.T) {
	assert.True(t, ResolveSplitAmount("", "").IsZero())
	assert.True(t, ResolveSplitAmount("0", "0.00").IsZero())
}

func TestResolveSplitAmount_SignedDebitStaysNegative(t *testing.T) {
	amount := ResolveSplitAmount("-50.00", "")
	assert.Equal(t, "-50.00", amount.StringFixed(2))
}
