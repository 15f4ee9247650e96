package statement

import (
	"fmt"
	"strings"
)

// AmountType declares how a mapping represents the transaction amount.
type AmountType string

const (
	// AmountSingle means one signed amount column.
	AmountSingle AmountType = "single"
	// AmountSplit means separate debit and credit columns.
	AmountSplit AmountType = "split"
)

// ColumnMapping binds canonical transaction fields to source column
// names. Exactly one of Amount or Debit+Credit is populated, matching
// AmountType; Category, Balance and HeaderRow are optional.
type ColumnMapping struct {
	Date        string
	Description string
	AmountType  AmountType
	Amount      string
	Debit       string
	Credit      string
	Category    string
	Balance     string
	HeaderRow   *int // explicit header row override, nil = detect
}

// Validate checks the mapping's structural invariants before any row
// is parsed, so an inconsistent mapping fails at construction time
// rather than mid-file.
func (m ColumnMapping) Validate() error {
	if m.Date == "" {
		return fmt.Errorf("mapping missing date column")
	}
	if m.Description == "" {
		return fmt.Errorf("mapping missing description column")
	}
	switch m.AmountType {
	case AmountSingle:
		if m.Amount == "" {
			return fmt.Errorf("amount type is single but no amount column bound")
		}
		if m.Debit != "" || m.Credit != "" {
			return fmt.Errorf("amount type is single but debit/credit columns bound")
		}
	case AmountSplit:
		if m.Debit == "" || m.Credit == "" {
			return fmt.Errorf("amount type is split but debit and credit columns not both bound")
		}
		if m.Amount != "" {
			return fmt.Errorf("amount type is split but amount column bound")
		}
	default:
		return fmt.Errorf("unknown amount type %q", m.AmountType)
	}
	return nil
}

// columnIndexes is a ColumnMapping resolved against a concrete header
// row. Unbound optional columns are -1. Resolution happens once per
// file; row parsing then uses only integer indexing.
type columnIndexes struct {
	date, description     int
	amount, debit, credit int
	category, balance     int
	split                 bool
}

// resolve looks up each bound column name in headers
// (case-insensitively). Required columns that cannot be found are an
// error; optional ones are silently dropped.
func (m ColumnMapping) resolve(headers []string) (columnIndexes, error) {
	idx := columnIndexes{
		amount: -1, debit: -1, credit: -1,
		category: -1, balance: -1,
		split: m.AmountType == AmountSplit,
	}

	find := func(name string) int {
		for i, h := range headers {
			if strings.EqualFold(normalizeHeader(h), normalizeHeader(name)) {
				return i
			}
		}
		return -1
	}

	if idx.date = find(m.Date); idx.date < 0 {
		return idx, fmt.Errorf("date column %q not found in header", m.Date)
	}
	if idx.description = find(m.Description); idx.description < 0 {
		return idx, fmt.Errorf("description column %q not found in header", m.Description)
	}
	if idx.split {
		if idx.debit = find(m.Debit); idx.debit < 0 {
			return idx, fmt.Errorf("debit column %q not found in header", m.Debit)
		}
		if idx.credit = find(m.Credit); idx.credit < 0 {
			return idx, fmt.Errorf("credit column %q not found in header", m.Credit)
		}
	} else {
		if idx.amount = find(m.Amount); idx.amount < 0 {
			return idx, fmt.Errorf("amount column %q not found in header", m.Amount)
		}
	}
	if m.Category != "" {
		idx.category = find(m.Category)
	}
	if m.Balance != "" {
		idx.balance = find(m.Balance)
	}
	return idx, nil
}

// defaultSynonyms maps each canonical field to the header spellings
// institutions use for it. Extended at runtime via config.
var defaultSynonyms = map[string][]string{
	"date":        {"date", "posting date", "posted date", "transaction date", "trans date", "value date"},
	"description": {"description", "memo", "payee", "merchant", "narrative", "details", "transaction details", "name"},
	"amount":      {"amount", "transaction amount", "value"},
	"debit":       {"debit", "withdrawal", "withdrawals", "money out", "paid out", "charge"},
	"credit":      {"credit", "deposit", "deposits", "money in", "paid in", "payment"},
	"category":    {"category", "type", "classification"},
	"balance":     {"balance", "running balance", "running bal", "closing balance"},
}

// Mapper matches arbitrary header text to canonical fields via
// synonym tables. The zero value is not usable; use NewMapper.
type Mapper struct {
	synonyms map[string][]string
}

// NewMapper returns a Mapper with the built-in synonym tables plus any
// extras, which are appended after the built-ins per field.
func NewMapper(extra map[string][]string) *Mapper {
	syn := make(map[string][]string, len(defaultSynonyms))
	for field, names := range defaultSynonyms {
		syn[field] = append(append([]string(nil), names...), extra[field]...)
	}
	return &Mapper{synonyms: syn}
}

// normalizeHeader lowercases a header and folds underscores and
// hyphens into spaces so "Posting_Date" matches "posting date".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(h), `"`)))
	h = strings.ReplaceAll(h, "_", " ")
	h = strings.ReplaceAll(h, "-", " ")
	return strings.TrimSpace(h)
}

// matches reports whether a normalized header matches a synonym:
// equal, containing, or contained by it.
func matches(header, synonym string) bool {
	return header == synonym ||
		strings.Contains(header, synonym) ||
		strings.Contains(synonym, header)
}

// bind returns the name of the first header (in column order) that
// matches any synonym for field, or "".
func (mp *Mapper) bind(field string, headers []string) string {
	for _, h := range headers {
		norm := normalizeHeader(h)
		if norm == "" {
			continue
		}
		for _, syn := range mp.synonyms[field] {
			if matches(norm, syn) {
				return h
			}
		}
	}
	return ""
}

// Suggest builds a ColumnMapping from raw header text. It returns
// false when no usable mapping exists: date and description must bind,
// plus either a single amount column or both debit and credit.
func (mp *Mapper) Suggest(headers []string) (ColumnMapping, bool) {
	m := ColumnMapping{
		Date:        mp.bind("date", headers),
		Description: mp.bind("description", headers),
		Category:    mp.bind("category", headers),
		Balance:     mp.bind("balance", headers),
	}
	if m.Date == "" || m.Description == "" {
		return ColumnMapping{}, false
	}

	if amount := mp.bind("amount", headers); amount != "" {
		m.AmountType = AmountSingle
		m.Amount = amount
		return m, true
	}

	debit := mp.bind("debit", headers)
	credit := mp.bind("credit", headers)
	if debit != "" && credit != "" {
		m.AmountType = AmountSplit
		m.Debit = debit
		m.Credit = credit
		return m, true
	}
	return ColumnMapping{}, false
}
