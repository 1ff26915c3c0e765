// SPDX-License-Identifier: Apache-2.0

package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hireflow/hireflow/internal/export"
	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/textsource"
	"github.com/hireflow/hireflow/internal/textsource/parsers"
	"github.com/hireflow/hireflow/internal/validation"
)

func process(t *testing.T, docs ...textsource.Document) []intake.Outcome {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC) }
	p := intake.NewPipeline(
		parsers.DefaultRegistry(),
		extraction.NewExtractor(nil),
		validation.NewValidator(validation.DefaultRules(), validation.WithClock(clock)),
	)

	outcomes := make([]intake.Outcome, 0, len(docs))
	for _, doc := range docs {
		out, err := p.Process(context.Background(), doc)
		require.NoError(t, err)
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func openWorkbook(t *testing.T, outcomes []intake.Outcome) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, outcomes))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteWorkbook(t *testing.T) {
	outcomes := process(t,
		textsource.Document{ID: "jane.txt", Content: []byte("Name: Jane Doe\nEmail: jane@gmail.com\nDepartment: Engineering\nRole: Engineer\nStart Date: 2024-01-15")},
		textsource.Document{ID: "jo.txt", Content: []byte("Name: Jo Park\nRole: Analyst")},
	)
	f := openWorkbook(t, outcomes)

	assert.Equal(t, []string{export.SheetSummary, export.SheetFields, export.SheetFindings}, f.GetSheetList())

	summary, err := f.GetRows(export.SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "Outcome ID", summary[0][0])
	assert.Equal(t, outcomes[0].ID, summary[1][0])
	assert.Equal(t, "jane.txt", summary[1][1])
	assert.Equal(t, "5", summary[1][3])
	assert.Equal(t, "false", summary[1][7])
	assert.Equal(t, "2024-01-15", summary[1][8])
	assert.Equal(t, "jo.txt", summary[2][1])
	assert.Equal(t, "3", summary[2][4])
	assert.Equal(t, "true", summary[2][7])

	fields, err := f.GetRows(export.SheetFields)
	require.NoError(t, err)
	assert.Len(t, fields, 1+2*len(extraction.DefaultCatalog()))
	assert.Equal(t, []string{"jane.txt", "Name", "identity", "true", "Jane Doe", "1"}, fields[1])

	findings, err := f.GetRows(export.SheetFindings)
	require.NoError(t, err)
	require.Len(t, findings, 1+2+3)
	assert.Equal(t, []string{"jane.txt", "warning", outcomes[0].Report.Warnings[0]}, findings[1])
	assert.Equal(t, []string{"jane.txt", "suggestion", outcomes[0].Report.Suggestions[0]}, findings[2])
	assert.Equal(t, []string{"jo.txt", "error", "Missing critical field: Email"}, findings[3])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	f := openWorkbook(t, nil)

	summary, err := f.GetRows(export.SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "Processed At", summary[0][len(summary[0])-1])
}
