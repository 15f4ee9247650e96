package statement

import (
	"fmt"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// GenericFormat labels outcomes produced by header mapping rather
// than a fixed bank format.
const GenericFormat = "Generic CSV"

// ParseCSV parses delimited statement text. The fallback chain runs:
// bank format registry on the raw first line, fuzzy header mapping
// from the localized header row, then exact date/description/amount
// header lookup. Rows that fail normalization are counted in Skipped.
func (p *Parser) ParseCSV(content string) Outcome {
	if strings.TrimSpace(content) == "" {
		return failure("statement is empty")
	}

	delim := DetectDelimiter(content)
	lines := dataLines(content)

	// Some formats are headerless and positional, so the registry sees
	// the un-reduced line set before any header localization.
	first := Tokenize(lines[0], delim)
	if spec, ok := p.registry.Detect(first); ok {
		return parseFormatRows(spec, lines, delim)
	}

	headerIdx := LocateHeaderRow(lines, delim)
	headers := Tokenize(lines[headerIdx], delim)
	rows := lines[headerIdx+1:]

	if m, ok := p.mapper.Suggest(headers); ok {
		return parseMappedRows(m, headers, rows, delim, GenericFormat)
	}

	// Strict fallback: the three required headers must be present
	// verbatim. Failing that, name what was missing and what was seen.
	var missing []string
	for _, name := range []string{"date", "description", "amount"} {
		if exactColumn(headers, name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return failure(fmt.Sprintf("no usable column mapping: missing %s (headers found: %s)",
			strings.Join(missing, ", "), strings.Join(headers, ", ")))
	}

	m := ColumnMapping{
		Date:        "date",
		Description: "description",
		AmountType:  AmountSingle,
		Amount:      "amount",
	}
	return parseMappedRows(m, headers, rows, delim, GenericFormat)
}

// ParseCSVWithMapping parses with a caller-supplied mapping, e.g. one
// confirmed by a user through a mapping UI. Detection is bypassed
// entirely; the mapping is validated structurally before any row is
// touched.
func (p *Parser) ParseCSVWithMapping(content string, m ColumnMapping) Outcome {
	if err := m.Validate(); err != nil {
		return failure(err.Error())
	}
	if strings.TrimSpace(content) == "" {
		return failure("statement is empty")
	}

	delim := DetectDelimiter(content)
	lines := dataLines(content)

	headerIdx := LocateHeaderRow(lines, delim)
	if m.HeaderRow != nil {
		headerIdx = *m.HeaderRow
		if headerIdx < 0 || headerIdx >= len(lines) {
			return failure(fmt.Sprintf("header row override %d out of range", headerIdx))
		}
	}
	headers := Tokenize(lines[headerIdx], delim)

	return parseMappedRows(m, headers, lines[headerIdx+1:], delim, "Custom Mapping")
}

// exactColumn returns the index of the header equal to name after
// lowercasing and quote stripping, or -1.
func exactColumn(headers []string, name string) int {
	for i, h := range headers {
		if strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`)) == name {
			return i
		}
	}
	return -1
}

// parseFormatRows projects every data line through a matched bank
// format's row mapper.
func parseFormatRows(spec FormatSpec, lines []string, delim rune) Outcome {
	rows := lines
	if spec.HasHeader {
		rows = lines[1:]
	}
	if len(rows) == 0 {
		return failure("no data rows found")
	}

	var txns []model.Transaction
	skipped := 0
	for _, line := range rows {
		raw, ok := spec.Project(Tokenize(line, delim))
		if !ok {
			skipped++
			continue
		}
		txn, ok := normalizeRow(raw)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	return Outcome{
		Success:        true,
		Transactions:   txns,
		Skipped:        skipped,
		DetectedFormat: spec.Name,
	}
}

// parseMappedRows parses data rows under a column mapping. The
// mapping is resolved into integer indexes once; rows are then read
// positionally.
func parseMappedRows(m ColumnMapping, headers, rows []string, delim rune, label string) Outcome {
	idx, err := m.resolve(headers)
	if err != nil {
		return failure("no usable column mapping: " + err.Error())
	}
	if len(rows) == 0 {
		return failure("no data rows found")
	}

	var txns []model.Transaction
	skipped := 0
	for _, line := range rows {
		fields := Tokenize(line, delim)
		raw, ok := projectMapped(idx, fields)
		if !ok {
			skipped++
			continue
		}
		txn, ok := normalizeRow(raw)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	return Outcome{
		Success:        true,
		Transactions:   txns,
		Skipped:        skipped,
		DetectedFormat: label,
	}
}

// projectMapped reads the bound columns out of a tokenized row. A row
// too short to contain a required column is rejected.
func projectMapped(idx columnIndexes, fields []string) (RawRow, bool) {
	at := func(i int) (string, bool) {
		if i < 0 || i >= len(fields) {
			return "", false
		}
		return fields[i], true
	}

	raw := RawRow{Split: idx.split}
	var ok bool
	if raw.Date, ok = at(idx.date); !ok {
		return RawRow{}, false
	}
	if raw.Description, ok = at(idx.description); !ok {
		return RawRow{}, false
	}
	if idx.split {
		if raw.Debit, ok = at(idx.debit); !ok {
			return RawRow{}, false
		}
		if raw.Credit, ok = at(idx.credit); !ok {
			return RawRow{}, false
		}
	} else {
		if raw.Amount, ok = at(idx.amount); !ok {
			return RawRow{}, false
		}
	}
	raw.Category, _ = at(idx.category)
	raw.Balance, _ = at(idx.balance)
	return raw, true
}

// normalizeRow runs the value normalizers over a projected row. Date,
// description and amount must all normalize or the row is skipped;
// category and balance are best-effort.
func normalizeRow(raw RawRow) (model.Transaction, bool) {
	date, err := ParseDate(raw.Date)
	if err != nil {
		return model.Transaction{}, false
	}

	desc := strings.TrimSpace(raw.Description)
	if desc == "" {
		return model.Transaction{}, false
	}

	txn := model.Transaction{
		Date:        date,
		Description: desc,
		Category:    strings.TrimSpace(raw.Category),
	}

	if raw.Split {
		txn.Amount = ResolveSplitAmount(raw.Debit, raw.Credit)
	} else {
		amount, err := ParseAmount(raw.Amount)
		if err != nil {
			return model.Transaction{}, false
		}
		txn.Amount = amount
	}
	if raw.Negate {
		txn.Amount = txn.Amount.Neg()
	}

	if raw.Balance != "" {
		if bal, err := ParseAmount(raw.Balance); err == nil {
			txn.Balance = bal
			txn.HasBalance = true
		}
	}
	return txn, true
}
