// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/textsource"
	"github.com/hireflow/hireflow/internal/validation"
)

// Outcome is the combined extraction and validation result for one document.
// It is created per call and owned by the caller.
type Outcome struct {
	ID          string            `json:"id" yaml:"id"`
	SourceID    string            `json:"source_id" yaml:"source_id"`
	SourceUsed  string            `json:"source_used" yaml:"source_used"`
	Extraction  extraction.Result `json:"extraction" yaml:"extraction"`
	Report      validation.Report `json:"report" yaml:"report"`
	Blocking    bool              `json:"blocking" yaml:"blocking"`
	ProcessedAt time.Time         `json:"processed_at" yaml:"processed_at"`
}

// Pipeline runs text acquisition, extraction and validation in sequence.
// A Pipeline is safe for concurrent use; each call works on its own data.
type Pipeline struct {
	sources   *textsource.Registry
	extractor *extraction.Extractor
	validator *validation.Validator
	observers []Observer
	now       func() time.Time
}

// NewPipeline creates a Pipeline. Observers are notified of each stage.
func NewPipeline(sources *textsource.Registry, extractor *extraction.Extractor, validator *validation.Validator, observers ...Observer) *Pipeline {
	return &Pipeline{
		sources:   sources,
		extractor: extractor,
		validator: validator,
		observers: observers,
		now:       time.Now,
	}
}

// Process reads doc, extracts fields and validates them. Unreadable input
// returns an error wrapping textsource.ErrUnsupportedFormat or
// extraction.ErrUnprocessableInput and no partial outcome.
func (p *Pipeline) Process(ctx context.Context, doc textsource.Document) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if doc.ID == "" {
		doc.ID = "unknown"
	}

	src, err := p.sources.Resolve(doc)
	if err != nil {
		p.notify(Event{Kind: EventRejected, SourceID: doc.ID, Err: err})
		return Outcome{}, err
	}

	text, err := src.Text(ctx, doc)
	if err != nil {
		err = fmt.Errorf("%w: source %q failed: %v", extraction.ErrUnprocessableInput, src.Name(), err)
		p.notify(Event{Kind: EventRejected, SourceID: doc.ID, SourceUsed: src.Name(), Err: err})
		return Outcome{}, err
	}

	result, err := p.extractor.Extract(text)
	if err != nil {
		p.notify(Event{Kind: EventRejected, SourceID: doc.ID, SourceUsed: src.Name(), Err: err})
		return Outcome{}, err
	}
	p.notify(Event{Kind: EventExtracted, SourceID: doc.ID, SourceUsed: src.Name(), Extraction: &result})

	report := p.validator.Validate(result)
	p.notify(Event{Kind: EventValidated, SourceID: doc.ID, SourceUsed: src.Name(), Extraction: &result, Report: &report})

	return Outcome{
		ID:          uuid.NewString(),
		SourceID:    doc.ID,
		SourceUsed:  src.Name(),
		Extraction:  result,
		Report:      report,
		Blocking:    report.Blocking(),
		ProcessedAt: p.now().UTC(),
	}, nil
}

// Extract runs text acquisition and extraction only.
func (p *Pipeline) Extract(ctx context.Context, doc textsource.Document) (extraction.Result, error) {
	src, err := p.sources.Resolve(doc)
	if err != nil {
		return extraction.Result{}, err
	}
	text, err := src.Text(ctx, doc)
	if err != nil {
		return extraction.Result{}, fmt.Errorf("%w: source %q failed: %v", extraction.ErrUnprocessableInput, src.Name(), err)
	}
	return p.extractor.Extract(text)
}

// Validate runs the validator over an existing extraction result.
func (p *Pipeline) Validate(result extraction.Result) validation.Report {
	return p.validator.Validate(result)
}

// Sources returns the names of the registered text sources.
func (p *Pipeline) Sources() []string {
	return p.sources.Names()
}

func (p *Pipeline) notify(ev Event) {
	for _, o := range p.observers {
		o.Observe(ev)
	}
}
