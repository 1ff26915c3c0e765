// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/textsource"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract and validate fields from one document",
		Long: `Extract new-hire fields from FILE, validate them and print the outcome.

The format is taken from the file extension unless --format is given.
A report with errors is still printed and exits zero unless --strict is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "json" {
				return fmt.Errorf("invalid output format: %s (supported: yaml, json)", output)
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			doc, err := textsource.LoadFile(args[0])
			if err != nil {
				return err
			}
			if format != "" {
				doc.Format = format
			}

			out, err := a.pipeline.Process(cmd.Context(), doc)
			if err != nil {
				return err
			}
			if err := writeOutcome(cmd.OutOrStdout(), output, out); err != nil {
				return err
			}
			if strict && out.Blocking {
				return fmt.Errorf("%s: %w", doc.ID, errBlocking)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Format hint: text, markdown, yaml or json (default: from file extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml or json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 2 when the report has blocking errors")
	return cmd
}

func writeOutcome(w io.Writer, output string, out intake.Outcome) error {
	var (
		data []byte
		err  error
	)
	switch output {
	case "json":
		data, err = json.MarshalIndent(out, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}
	_, err = w.Write(data)
	return err
}
