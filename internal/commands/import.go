package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/statement"
)

func newImportCommand(log zerolog.Logger) *cobra.Command {
	var configPath string
	var mappingFlag string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a CSV or OFX statement and emit normalized transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.OutOrStdout(), log, args[0], configPath, mappingFlag)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "bankfeed.yaml with extra synonyms and formats")
	cmd.Flags().StringVar(&mappingFlag, "mapping", "", "explicit column mapping, e.g. date=Date,description=Memo,amount=Amount")

	return cmd
}

func runImport(out io.Writer, log zerolog.Logger, path, configPath, mappingFlag string) error {
	parser, err := buildParser(configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}
	content := string(data)

	var outcome statement.Outcome
	if mappingFlag != "" {
		mapping, err := parseMappingFlag(mappingFlag)
		if err != nil {
			return err
		}
		outcome = parser.ParseCSVWithMapping(content, mapping)
	} else {
		outcome = parser.Parse(content)
	}

	if !outcome.Success {
		return fmt.Errorf("parsing %s: %s", path, outcome.Error)
	}

	log.Info().
		Str("file", path).
		Str("format", outcome.DetectedFormat).
		Int("transactions", len(outcome.Transactions)).
		Int("skipped", outcome.Skipped).
		Msg("statement imported")
	if outcome.Skipped > 0 {
		log.Warn().Int("skipped", outcome.Skipped).Msg("some rows could not be normalized")
	}

	return writeTransactions(out, outcome)
}

// buildParser returns the default parser, or one extended from a
// config file when --config is given.
func buildParser(configPath string) (*statement.Parser, error) {
	if configPath == "" {
		return statement.NewParser(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

// parseMappingFlag turns "date=Date,description=Memo,amount=Amount"
// into a ColumnMapping. The amount type follows from which keys are
// present: amount alone, or debit and credit together.
func parseMappingFlag(s string) (statement.ColumnMapping, error) {
	var m statement.ColumnMapping
	for _, pair := range strings.Split(s, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			return statement.ColumnMapping{}, fmt.Errorf("invalid mapping entry %q, want key=column", pair)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "date":
			m.Date = value
		case "description":
			m.Description = value
		case "amount":
			m.Amount = value
		case "debit":
			m.Debit = value
		case "credit":
			m.Credit = value
		case "category":
			m.Category = value
		case "balance":
			m.Balance = value
		default:
			return statement.ColumnMapping{}, fmt.Errorf("unknown mapping key %q", key)
		}
	}

	if m.Amount != "" {
		m.AmountType = statement.AmountSingle
	} else {
		m.AmountType = statement.AmountSplit
	}
	if err := m.Validate(); err != nil {
		return statement.ColumnMapping{}, err
	}
	return m, nil
}

// writeTransactions emits the normalized transactions as CSV.
func writeTransactions(out io.Writer, outcome statement.Outcome) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "description", "amount", "category", "balance"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range outcome.Transactions {
		balance := ""
		if txn.HasBalance {
			balance = txn.Balance.StringFixed(2)
		}
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.Category,
			balance,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}
