package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/statement"
)

// Config is the optional bankfeed.yaml file. It extends the built-in
// detection data: extra header synonyms for the fuzzy mapper and
// user-defined institution formats for the registry. New institutions
// become config entries instead of code changes.
type Config struct {
	Synonyms map[string][]string `yaml:"synonyms,omitempty"`
	Formats  []FormatConfig      `yaml:"formats,omitempty"`
}

// FormatConfig declares one headered institution format: the full
// column layout in order, which of those columns carry the canonical
// fields, and optionally a detection signature (defaults to the bound
// column names).
type FormatConfig struct {
	Name      string        `yaml:"name"`
	Header    []string      `yaml:"header"`
	Signature []string      `yaml:"signature,omitempty"`
	Columns   ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig binds canonical fields to column names from Header.
// Either Amount, or Debit and Credit, must be set.
type ColumnsConfig struct {
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount,omitempty"`
	Debit       string `yaml:"debit,omitempty"`
	Credit      string `yaml:"credit,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Balance     string `yaml:"balance,omitempty"`
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Build assembles a parser from the config: built-in formats first,
// then config formats in file order, plus the merged synonym tables.
func (c *Config) Build() (*statement.Parser, error) {
	registry := statement.NewRegistry()
	for i, f := range c.Formats {
		spec, err := f.spec()
		if err != nil {
			return nil, fmt.Errorf("format %d (%s): %w", i, f.Name, err)
		}
		registry.Register(spec)
	}
	return statement.NewCustomParser(registry, statement.NewMapper(c.Synonyms)), nil
}

// spec compiles a FormatConfig into a FormatSpec. Column names are
// resolved against the declared header layout once here, so a bad
// binding is a config error rather than a parse-time surprise.
func (f FormatConfig) spec() (statement.FormatSpec, error) {
	if f.Name == "" {
		return statement.FormatSpec{}, fmt.Errorf("missing name")
	}
	if len(f.Header) == 0 {
		return statement.FormatSpec{}, fmt.Errorf("missing header layout")
	}

	find := func(name string) int {
		for i, h := range f.Header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
				return i
			}
		}
		return -1
	}
	resolve := func(what, name string) (int, error) {
		i := find(name)
		if i < 0 {
			return -1, fmt.Errorf("%s column %q not in header layout", what, name)
		}
		return i, nil
	}

	cols := f.Columns
	dateIdx, err := resolve("date", cols.Date)
	if err != nil {
		return statement.FormatSpec{}, err
	}
	descIdx, err := resolve("description", cols.Description)
	if err != nil {
		return statement.FormatSpec{}, err
	}

	split := cols.Amount == ""
	var amountIdx, debitIdx, creditIdx int
	if split {
		if cols.Debit == "" || cols.Credit == "" {
			return statement.FormatSpec{}, fmt.Errorf("need either amount or debit+credit columns")
		}
		if debitIdx, err = resolve("debit", cols.Debit); err != nil {
			return statement.FormatSpec{}, err
		}
		if creditIdx, err = resolve("credit", cols.Credit); err != nil {
			return statement.FormatSpec{}, err
		}
	} else {
		if cols.Debit != "" || cols.Credit != "" {
			return statement.FormatSpec{}, fmt.Errorf("amount and debit/credit columns are mutually exclusive")
		}
		if amountIdx, err = resolve("amount", cols.Amount); err != nil {
			return statement.FormatSpec{}, err
		}
	}

	categoryIdx := -1
	if cols.Category != "" {
		if categoryIdx, err = resolve("category", cols.Category); err != nil {
			return statement.FormatSpec{}, err
		}
	}
	balanceIdx := -1
	if cols.Balance != "" {
		if balanceIdx, err = resolve("balance", cols.Balance); err != nil {
			return statement.FormatSpec{}, err
		}
	}

	signature := f.Signature
	if len(signature) == 0 {
		signature = boundColumns(cols)
	}

	minLen := maxIndex(dateIdx, descIdx, amountIdx, debitIdx, creditIdx) + 1
	return statement.FormatSpec{
		Name:      f.Name,
		HasHeader: true,
		Signature: signature,
		Project: func(row []string) (statement.RawRow, bool) {
			if len(row) < minLen {
				return statement.RawRow{}, false
			}
			raw := statement.RawRow{
				Date:        row[dateIdx],
				Description: row[descIdx],
				Split:       split,
			}
			if split {
				raw.Debit = row[debitIdx]
				raw.Credit = row[creditIdx]
			} else {
				raw.Amount = row[amountIdx]
			}
			if categoryIdx >= 0 && categoryIdx < len(row) {
				raw.Category = row[categoryIdx]
			}
			if balanceIdx >= 0 && balanceIdx < len(row) {
				raw.Balance = row[balanceIdx]
			}
			return raw, true
		},
	}, nil
}

// boundColumns derives a detection signature from the bound required
// columns when the config does not declare one.
func boundColumns(cols ColumnsConfig) []string {
	var sig []string
	for _, name := range []string{cols.Date, cols.Description, cols.Amount, cols.Debit, cols.Credit} {
		if name != "" {
			sig = append(sig, name)
		}
	}
	return sig
}

func maxIndex(indexes ...int) int {
	max := 0
	for _, i := range indexes {
		if i > max {
			max = i
		}
	}
	return max
}
