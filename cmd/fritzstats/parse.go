package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fritzstats/fritzstats/internal/scraper"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a saved status page and print the record as JSON",
	Long: "parse reads a status page body saved with dump_page (\"-\" reads stdin) and prints\n" +
		"the parsed record. No device is contacted.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		rec, err := scraper.Parse(body, parseFormat, scraper.DSLSchema())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return body, nil
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", scraper.FormatAuto, "Page format: auto, script or xml")
}
