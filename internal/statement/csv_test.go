package statement

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestParseCSV_GenericRoundTrip(t *testing.T) {
	content := "date,description,amount\n" +
		"2024-01-05,Coffee,-450\n" +
		"2024-01-06,Payroll,200000\n"

	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success)
	assert.Empty(t, outcome.Error)
	assert.Equal(t, GenericFormat, outcome.DetectedFormat)
	assert.Equal(t, 0, outcome.Skipped)
	require.Len(t, outcome.Transactions, 2)

	assert.Equal(t, "Coffee", outcome.Transactions[0].Description)
	assert.Equal(t, "-450.00", outcome.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "Payroll", outcome.Transactions[1].Description)
	assert.Equal(t, "200000.00", outcome.Transactions[1].Amount.StringFixed(2))
}

func TestParseCSV_BadRowSkippedNotFatal(t *testing.T) {
	content := "date,description,amount\n" +
		"not-a-date,Coffee,-450\n" +
		"2024-01-06,Payroll,200000\n"

	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Skipped)
	require.Len(t, outcome.Transactions, 1)
	assert.Equal(t, "Payroll", outcome.Transactions[0].Description)
}

func TestParseCSV_EmptyContent(t *testing.T) {
	outcome := NewParser().ParseCSV("")
	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.Transactions)
	assert.NotEmpty(t, outcome.Error)

	outcome = NewParser().ParseCSV("  \n\n  ")
	assert.False(t, outcome.Success)
}

func TestParseCSV_NoDataRows(t *testing.T) {
	outcome := NewParser().ParseCSV("date,description,amount\n")
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "no data rows")
}

func TestParseCSV_MissingColumnsEnumerated(t *testing.T) {
	outcome := NewParser().ParseCSV("foo,bar\n1,2\n")
	require.False(t, outcome.Success)
	assert.Empty(t, outcome.Transactions)
	assert.Contains(t, outcome.Error, "date")
	assert.Contains(t, outcome.Error, "description")
	assert.Contains(t, outcome.Error, "amount")
	assert.Contains(t, outcome.Error, "foo")
	assert.Contains(t, outcome.Error, "bar")
}

func TestParseCSV_ChaseStatement(t *testing.T) {
	outcome := NewParser().ParseCSV(readTestdata(t, "chase_checking.csv"))
	require.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, "Chase", outcome.DetectedFormat)
	assert.Equal(t, 0, outcome.Skipped)
	require.Len(t, outcome.Transactions, 6)

	first := outcome.Transactions[0]
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", first.Description)
	assert.Equal(t, "-4.00", first.Amount.StringFixed(2))
	assert.True(t, first.HasBalance)
	assert.Equal(t, "2996.00", first.Balance.StringFixed(2))

	income := outcome.Transactions[3]
	assert.True(t, income.Amount.IsPositive())
	assert.Equal(t, "3500.00", income.Amount.StringFixed(2))
}

func TestParseCSV_CapitalOneSplitAmounts(t *testing.T) {
	outcome := NewParser().ParseCSV(readTestdata(t, "capitalone_card.csv"))
	require.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, "Capital One", outcome.DetectedFormat)
	require.Len(t, outcome.Transactions, 3)

	assert.Equal(t, "-52.18", outcome.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "Merchandise", outcome.Transactions[0].Category)
	assert.Equal(t, "250.00", outcome.Transactions[2].Amount.StringFixed(2))
}

func TestParseCSV_DiscoverChargesNegated(t *testing.T) {
	outcome := NewParser().ParseCSV(readTestdata(t, "discover_card.csv"))
	require.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, "Discover", outcome.DetectedFormat)
	require.Len(t, outcome.Transactions, 3)

	assert.Equal(t, "-45.67", outcome.Transactions[0].Amount.StringFixed(2))
	// A payment shows up negative in the export and positive here.
	assert.Equal(t, "200.00", outcome.Transactions[1].Amount.StringFixed(2))
}

func TestParseCSV_WellsFargoHeaderless(t *testing.T) {
	outcome := NewParser().ParseCSV(readTestdata(t, "wellsfargo_checking.csv"))
	require.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, "Wells Fargo", outcome.DetectedFormat)
	require.Len(t, outcome.Transactions, 3)

	// Headerless: the first line is data, not a header.
	assert.Equal(t, "BILL PAY PG&E", outcome.Transactions[0].Description)
	assert.Equal(t, "-120.00", outcome.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "2200.00", outcome.Transactions[1].Amount.StringFixed(2))
}

func TestParseCSV_BrokeragePreambleSkipped(t *testing.T) {
	outcome := NewParser().ParseCSV(readTestdata(t, "brokerage_preamble.csv"))
	require.True(t, outcome.Success, outcome.Error)
	assert.Equal(t, GenericFormat, outcome.DetectedFormat)
	require.Len(t, outcome.Transactions, 3)
	assert.Equal(t, "DIVIDEND VTI", outcome.Transactions[0].Description)
	assert.True(t, outcome.Transactions[0].HasBalance)
}

func TestParseCSV_SemicolonDialect(t *testing.T) {
	content := "date;description;amount\n" +
		"2024-01-05;Kaffee, extra hot;-4.50 €\n"

	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success, outcome.Error)
	require.Len(t, outcome.Transactions, 1)
	// The comma is data under the semicolon dialect.
	assert.Equal(t, "Kaffee, extra hot", outcome.Transactions[0].Description)
	assert.Equal(t, "-4.50", outcome.Transactions[0].Amount.StringFixed(2))
}

func TestParseCSV_TabDialect(t *testing.T) {
	content := "date\tdescription\tamount\n" +
		"2024-01-05\tCoffee, with milk\t-4.50\n"

	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success, outcome.Error)
	require.Len(t, outcome.Transactions, 1)
	// The comma in the description is literal under the tab dialect.
	assert.Equal(t, "Coffee, with milk", outcome.Transactions[0].Description)
}

func TestParseCSV_CRLFNormalized(t *testing.T) {
	content := "date,description,amount\r\n2024-01-05,Coffee,-4.50\r\n"
	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success, outcome.Error)
	assert.Len(t, outcome.Transactions, 1)
}

func TestParseCSV_EmptyDescriptionSkipsRow(t *testing.T) {
	content := "date,description,amount\n" +
		"2024-01-05,,-4.50\n" +
		"2024-01-06,Payroll,2000\n"

	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Skipped)
	assert.Len(t, outcome.Transactions, 1)
}

func TestParseCSVWithMapping_BypassesDetection(t *testing.T) {
	content := "When,What,How Much\n" +
		"2024-01-05,Coffee,-4.50\n"

	m := ColumnMapping{
		Date:        "When",
		Description: "What",
		AmountType:  AmountSingle,
		Amount:      "How Much",
	}
	outcome := NewParser().ParseCSVWithMapping(content, m)
	require.True(t, outcome.Success, outcome.Error)
	require.Len(t, outcome.Transactions, 1)
	assert.Equal(t, "Coffee", outcome.Transactions[0].Description)
}

func TestParseCSVWithMapping_HeaderRowOverride(t *testing.T) {
	content := "export generated 2024-02-01 by internet banking\n" +
		"When,What,How Much\n" +
		"2024-01-05,Coffee,-4.50\n"

	row := 1
	m := ColumnMapping{
		Date:        "When",
		Description: "What",
		AmountType:  AmountSingle,
		Amount:      "How Much",
		HeaderRow:   &row,
	}
	outcome := NewParser().ParseCSVWithMapping(content, m)
	require.True(t, outcome.Success, outcome.Error)
	assert.Len(t, outcome.Transactions, 1)
}

func TestParseCSVWithMapping_InvalidMapping(t *testing.T) {
	outcome := NewParser().ParseCSVWithMapping("date,description,amount\n", ColumnMapping{})
	assert.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.Error)
}

func TestParseCSVWithMapping_SplitColumns(t *testing.T) {
	content := "Date,Details,Paid Out,Paid In\n" +
		"2024-01-05,Coffee,4.50,\n" +
		"2024-01-06,Refund,,12.00\n"

	m := ColumnMapping{
		Date:        "Date",
		Description: "Details",
		AmountType:  AmountSplit,
		Debit:       "Paid Out",
		Credit:      "Paid In",
	}
	outcome := NewParser().ParseCSVWithMapping(content, m)
	require.True(t, outcome.Success, outcome.Error)
	require.Len(t, outcome.Transactions, 2)
	assert.Equal(t, "-4.50", outcome.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "12.00", outcome.Transactions[1].Amount.StringFixed(2))
}

func TestParseCSV_ShortRowSkipped(t *testing.T) {
	content := "date,description,amount\n" +
		"2024-01-05\n" +
		"2024-01-06,Payroll,2000\n"

	outcome := NewParser().ParseCSV(content)
	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Skipped)
	assert.Len(t, outcome.Transactions, 1)
}
