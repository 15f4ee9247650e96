package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/statement"
)

func newPreviewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the detected dialect, header row and suggested column mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "bankfeed.yaml with extra synonyms and formats")

	return cmd
}

func runPreview(out io.Writer, path, configPath string) error {
	parser, err := buildParser(configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}

	pv, err := parser.Preview(string(data))
	if err != nil {
		return fmt.Errorf("previewing %s: %w", path, err)
	}

	fmt.Fprintf(out, "delimiter: %s\n", delimiterName(pv.Delimiter))
	fmt.Fprintf(out, "header row: %d\n", pv.HeaderRow)
	if pv.Suggested != nil {
		fmt.Fprintf(out, "suggested mapping: %s\n", describeMapping(*pv.Suggested))
	} else {
		fmt.Fprintln(out, "suggested mapping: none")
	}
	for i, row := range pv.Rows {
		fmt.Fprintf(out, "%3d: %s\n", i, strings.Join(row, " | "))
	}
	return nil
}

func delimiterName(d rune) string {
	switch d {
	case '\t':
		return "tab"
	case ';':
		return "semicolon"
	default:
		return "comma"
	}
}

func describeMapping(m statement.ColumnMapping) string {
	parts := []string{
		"date=" + m.Date,
		"description=" + m.Description,
	}
	if m.AmountType == statement.AmountSplit {
		parts = append(parts, "debit="+m.Debit, "credit="+m.Credit)
	} else {
		parts = append(parts, "amount="+m.Amount)
	}
	if m.Category != "" {
		parts = append(parts, "category="+m.Category)
	}
	if m.Balance != "" {
		parts = append(parts, "balance="+m.Balance)
	}
	return strings.Join(parts, ",")
}
