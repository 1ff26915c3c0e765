// SPDX-License-Identifier: Apache-2.0

// Package export writes batches of intake outcomes as XLSX workbooks for HR
// review.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hireflow/hireflow/internal/intake"
)

// Sheet names, in workbook order.
const (
	SheetSummary  = "Summary"
	SheetFields   = "Fields"
	SheetFindings = "Findings"
)

var (
	summaryHeaders = []any{"Outcome ID", "Source", "Parser", "Fields Found", "Errors", "Warnings", "Suggestions", "Blocking", "Start Date", "Processed At"}
	fieldHeaders   = []any{"Source", "Field", "Category", "Found", "Value", "Confidence"}
	findingHeaders = []any{"Source", "Kind", "Message"}
)

// WriteWorkbook writes one row per outcome to the Summary sheet, one row per
// catalog field to the Fields sheet and one row per error, warning or
// suggestion to the Findings sheet.
func WriteWorkbook(w io.Writer, outcomes []intake.Outcome) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("xlsx sheet %s: %w", SheetSummary, err)
	}
	for _, sheet := range []string{SheetFields, SheetFindings} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("xlsx sheet %s: %w", sheet, err)
		}
	}

	sw := &sheetWriter{f: f}
	sw.row(SheetSummary, summaryHeaders)
	sw.row(SheetFields, fieldHeaders)
	sw.row(SheetFindings, findingHeaders)

	for _, out := range outcomes {
		sw.row(SheetSummary, []any{
			out.ID,
			out.SourceID,
			out.SourceUsed,
			out.Extraction.FoundCount(),
			len(out.Report.Errors),
			len(out.Report.Warnings),
			len(out.Report.Suggestions),
			strconv.FormatBool(out.Blocking),
			out.Report.StartDate,
			out.ProcessedAt.Format(time.RFC3339),
		})

		for _, field := range out.Extraction.Fields {
			confidence := any("")
			if field.Found {
				confidence = field.Confidence
			}
			sw.row(SheetFields, []any{out.SourceID, string(field.Field), string(field.Category), strconv.FormatBool(field.Found), field.Value, confidence})
		}

		for _, msg := range out.Report.Errors {
			sw.row(SheetFindings, []any{out.SourceID, "error", msg})
		}
		for _, msg := range out.Report.Warnings {
			sw.row(SheetFindings, []any{out.SourceID, "warning", msg})
		}
		for _, msg := range out.Report.Suggestions {
			sw.row(SheetFindings, []any{out.SourceID, "suggestion", msg})
		}
	}
	if sw.err != nil {
		return sw.err
	}

	_ = f.SetColWidth(SheetSummary, "A", "A", 38)
	_ = f.SetColWidth(SheetSummary, "B", "C", 22)
	_ = f.SetColWidth(SheetSummary, "I", "J", 22)
	_ = f.SetColWidth(SheetFields, "A", "C", 18)
	_ = f.SetColWidth(SheetFields, "E", "E", 36)
	_ = f.SetColWidth(SheetFindings, "C", "C", 72)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// sheetWriter appends rows per sheet and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	next map[string]int
	err  error
}

func (s *sheetWriter) row(sheet string, values []any) {
	if s.err != nil {
		return
	}
	if s.next == nil {
		s.next = make(map[string]int)
	}
	s.next[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, s.next[sheet])
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(sheet, cell, &values); err != nil {
		s.err = fmt.Errorf("xlsx row %s!%s: %w", sheet, cell, err)
	}
}
