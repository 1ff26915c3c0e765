// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hireflow/hireflow/internal/export"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/textsource"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Process many documents into an XLSX review workbook",
		Long: `Process every FILE and write the outcomes to an XLSX workbook with
Summary, Fields and Findings sheets.

Documents that cannot be read are logged and left out of the workbook; the
command then exits non-zero after the workbook has been written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			outcomes := make([]intake.Outcome, 0, len(args))
			var failed []error
			for _, path := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				out, err := processFile(cmd, a, path)
				if err != nil {
					a.log.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("document skipped")
					failed = append(failed, fmt.Errorf("%s: %w", path, err))
					continue
				}
				outcomes = append(outcomes, out)
			}

			f, err := os.Create(xlsxPath)
			if err != nil {
				return fmt.Errorf("failed to create workbook: %w", err)
			}
			if err := export.WriteWorkbook(f, outcomes); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}

			blocking := 0
			for _, out := range outcomes {
				if out.Blocking {
					blocking++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed %d of %d documents (%d blocking) -> %s\n",
				len(outcomes), len(args), blocking, xlsxPath)

			if len(failed) > 0 {
				return fmt.Errorf("%d documents could not be processed: %w", len(failed), errors.Join(failed...))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Path of the XLSX workbook to write (required)")
	_ = cmd.MarkFlagRequired("xlsx")
	return cmd
}

func processFile(cmd *cobra.Command, a *app, path string) (intake.Outcome, error) {
	doc, err := textsource.LoadFile(path)
	if err != nil {
		return intake.Outcome{}, err
	}
	return a.pipeline.Process(cmd.Context(), doc)
}
