// SPDX-License-Identifier: Apache-2.0

package intake_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/textsource"
	"github.com/hireflow/hireflow/internal/textsource/parsers"
	"github.com/hireflow/hireflow/internal/validation"
)

const janeDoe = "Name: Jane Doe\nEmail: jane@gmail.com\nDepartment: Engineering\nRole: Engineer\nStart Date: 2024-01-15"

func newPipeline(observers ...intake.Observer) *intake.Pipeline {
	clock := func() time.Time { return time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC) }
	return intake.NewPipeline(
		parsers.DefaultRegistry(),
		extraction.NewExtractor(nil),
		validation.NewValidator(validation.DefaultRules(), validation.WithClock(clock)),
		observers...,
	)
}

type recorder struct {
	events []intake.Event
}

func (r *recorder) Observe(ev intake.Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []intake.EventKind {
	out := make([]intake.EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

// ---------------------------------------------------------------------------
// Pipeline.Process
// ---------------------------------------------------------------------------

func TestPipeline_Process(t *testing.T) {
	tests := []struct {
		name           string
		doc            textsource.Document
		wantSource     string
		wantBlocking   bool
		validateOutput func(t *testing.T, out intake.Outcome)
	}{
		{
			name:       "plain text new hire",
			doc:        textsource.Document{Content: []byte(janeDoe), ID: "jane.txt"},
			wantSource: "text",
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Empty(t, out.Report.Errors)
				assert.Len(t, out.Report.Warnings, 1)
				require.NotNil(t, out.Report.StartDateOffsetDays)
				assert.Equal(t, 5, *out.Report.StartDateOffsetDays)
			},
		},
		{
			name: "markdown form with bold labels",
			doc: textsource.Document{
				Content: []byte("# Offer\n- **Name:** Sam Rivera\n- **Email:** sam@acme.io\n- **Department:** Sales\n- **Role:** Account Executive\n- **Start Date:** 01/20/2024\n- **Salary:** $18,000"),
				ID:      "sam.md",
			},
			wantSource: "markdown",
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Equal(t, "Sam Rivera", out.Extraction.Get(extraction.FieldFullName).Value)
				assert.Equal(t, "2024-01-20", out.Report.StartDate)
				require.Len(t, out.Report.Warnings, 1)
				assert.Contains(t, out.Report.Warnings[0], "below the market range")
			},
		},
		{
			name: "json export",
			doc: textsource.Document{
				Content: []byte(`{"name": "Ana Lima", "email": "ana@acme.io", "department": "Legal", "role": "Counsel", "start_date": "2024-02-01", "manager": {"name": "Priya Shah"}}`),
				Format:  "json",
				ID:      "ana.json",
			},
			wantSource: "structured",
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Equal(t, "Ana Lima", out.Extraction.Get(extraction.FieldFullName).Value)
				assert.Equal(t, "Priya Shah", out.Extraction.Get(extraction.FieldManager).Value)
				assert.Empty(t, out.Report.Errors)
			},
		},
		{
			name:         "readable text with missing fields is blocking, not an error",
			doc:          textsource.Document{Content: []byte("Name: Jo Park\nRole: Analyst")},
			wantSource:   "text",
			wantBlocking: true,
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Equal(t, "unknown", out.SourceID)
				assert.Contains(t, out.Report.Errors, "Missing critical field: Email")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newPipeline().Process(context.Background(), tt.doc)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSource, out.SourceUsed)
			assert.Equal(t, tt.wantBlocking, out.Blocking)
			assert.Equal(t, out.Report.Blocking(), out.Blocking)
			_, err = uuid.Parse(out.ID)
			assert.NoError(t, err)
			assert.Len(t, out.Extraction.Fields, len(extraction.DefaultCatalog()))
			if tt.validateOutput != nil {
				tt.validateOutput(t, out)
			}
		})
	}
}

func TestPipeline_Process_Failures(t *testing.T) {
	tests := []struct {
		name    string
		doc     textsource.Document
		wantErr error
	}{
		{name: "unsupported format", doc: textsource.Document{Format: "pdf", Content: []byte("%PDF-1.7")}, wantErr: textsource.ErrUnsupportedFormat},
		{name: "empty text", doc: textsource.Document{Content: []byte("   \n")}, wantErr: extraction.ErrUnprocessableInput},
		{name: "broken yaml", doc: textsource.Document{Format: "yaml", Content: []byte("name: [")}, wantErr: extraction.ErrUnprocessableInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			out, err := newPipeline(rec).Process(context.Background(), tt.doc)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, intake.Outcome{}, out)
			assert.Equal(t, []intake.EventKind{intake.EventRejected}, rec.kinds())
		})
	}
}

func TestPipeline_Process_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline().Process(ctx, textsource.Document{Content: []byte(janeDoe)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Observers(t *testing.T) {
	rec := &recorder{}
	var seen int
	counter := intake.ObserverFunc(func(intake.Event) { seen++ })

	_, err := newPipeline(rec, counter).Process(context.Background(), textsource.Document{Content: []byte(janeDoe), ID: "jane.txt"})
	require.NoError(t, err)

	assert.Equal(t, []intake.EventKind{intake.EventExtracted, intake.EventValidated}, rec.kinds())
	assert.Equal(t, 2, seen)
	last := rec.events[1]
	assert.Equal(t, "jane.txt", last.SourceID)
	require.NotNil(t, last.Report)
	assert.False(t, last.Report.Blocking())
}

func TestPipeline_ExtractAndValidate(t *testing.T) {
	p := newPipeline()
	res, err := p.Extract(context.Background(), textsource.Document{Content: []byte(janeDoe)})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", res.Get(extraction.FieldDepartment).Value)

	report := p.Validate(res)
	assert.False(t, report.Blocking())
	assert.Equal(t, []string{"structured", "markdown", "text"}, p.Sources())
}

// ---------------------------------------------------------------------------
// LogObserver
// ---------------------------------------------------------------------------

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	p := newPipeline(intake.LogObserver{Logger: log})
	_, err := p.Process(context.Background(), textsource.Document{Content: []byte(janeDoe), ID: "jane.txt"})
	require.NoError(t, err)
	_, err = p.Process(context.Background(), textsource.Document{Format: "docx", ID: "offer.docx"})
	require.Error(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "fields extracted")
	assert.Contains(t, logs, "document validated")
	assert.Contains(t, logs, "source_id=jane.txt")
	assert.Contains(t, logs, "document rejected")
	assert.Contains(t, logs, "source_id=offer.docx")
}
