package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newFormatsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List registered bank formats in detection order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(cmd.OutOrStdout(), configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "bankfeed.yaml with extra synonyms and formats")

	return cmd
}

func runFormats(out io.Writer, configPath string) error {
	parser, err := buildParser(configPath)
	if err != nil {
		return err
	}
	for _, name := range parser.Formats() {
		fmt.Fprintln(out, name)
	}
	return nil
}
