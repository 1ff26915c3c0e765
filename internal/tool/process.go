// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/textsource"
	"github.com/hireflow/hireflow/internal/validation"
)

// MetadataProcessNewHireDocument describes the process_new_hire_document tool.
var MetadataProcessNewHireDocument = &mcp.Tool{
	Name: "process_new_hire_document",
	Description: "Extract new-hire fields (name, email, department, role, start date, salary, " +
		"manager, employee ID) from an onboarding document and validate them. " +
		"Supported formats: text, markdown, yaml, json. " +
		"Each field carries a confidence between 0.1 and 1.0; labeled \"Field: value\" lines score " +
		"highest. Errors in the report block onboarding; warnings and suggestions are advisory.",
	InputSchema: mustSchemaFor[InputProcessNewHireDocument](),
}

// MetadataExtractNewHireFields describes the extract_new_hire_fields tool.
var MetadataExtractNewHireFields = &mcp.Tool{
	Name: "extract_new_hire_fields",
	Description: "Extract new-hire fields from an onboarding document without validating them. " +
		"Supported formats: text, markdown, yaml, json.",
	InputSchema: mustSchemaFor[InputProcessNewHireDocument](),
}

// InputProcessNewHireDocument is the input for both new-hire tools.
type InputProcessNewHireDocument struct {
	Content  string `json:"content" jsonschema:"Raw content of the new-hire document"`
	Format   string `json:"format,omitempty" jsonschema:"Format hint: text, markdown, yaml or json. Detected from content when omitted."`
	SourceID string `json:"source_id,omitempty" jsonschema:"Optional identifier for the document, such as a file name"`
}

// OutputProcessNewHireDocument is the output for the ProcessNewHireDocument tool.
type OutputProcessNewHireDocument struct {
	ID         string `json:"id"`
	SourceID   string `json:"source_id"`
	SourceUsed string `json:"source_used"`
	// Fields holds one entry per catalog field, found or not.
	Fields []extraction.FieldResult `json:"fields"`
	Report validation.Report        `json:"report"`
	// Blocking is true when the report carries errors.
	Blocking bool `json:"blocking"`
}

// OutputExtractNewHireFields is the output for the ExtractNewHireFields tool.
type OutputExtractNewHireFields struct {
	Fields     []extraction.FieldResult `json:"fields"`
	FoundCount int                      `json:"found_count"`
}

// NewHireTools serves the new-hire tools over a shared pipeline.
type NewHireTools struct {
	pipeline *intake.Pipeline
}

func NewNewHireTools(pipeline *intake.Pipeline) *NewHireTools {
	return &NewHireTools{pipeline: pipeline}
}

// ProcessNewHireDocument runs extraction and validation over the provided
// document. A blocking report is a successful call.
func (t *NewHireTools) ProcessNewHireDocument(ctx context.Context, _ *mcp.CallToolRequest, input InputProcessNewHireDocument) (*mcp.CallToolResult, OutputProcessNewHireDocument, error) {
	if input.Content == "" {
		return nil, OutputProcessNewHireDocument{}, fmt.Errorf("content is required")
	}

	out, err := t.pipeline.Process(ctx, documentFor(input))
	if err != nil {
		return nil, OutputProcessNewHireDocument{}, err
	}

	return nil, OutputProcessNewHireDocument{
		ID:         out.ID,
		SourceID:   out.SourceID,
		SourceUsed: out.SourceUsed,
		Fields:     out.Extraction.Fields,
		Report:     out.Report,
		Blocking:   out.Blocking,
	}, nil
}

// ExtractNewHireFields runs extraction only.
func (t *NewHireTools) ExtractNewHireFields(ctx context.Context, _ *mcp.CallToolRequest, input InputProcessNewHireDocument) (*mcp.CallToolResult, OutputExtractNewHireFields, error) {
	if input.Content == "" {
		return nil, OutputExtractNewHireFields{}, fmt.Errorf("content is required")
	}

	res, err := t.pipeline.Extract(ctx, documentFor(input))
	if err != nil {
		return nil, OutputExtractNewHireFields{}, err
	}
	return nil, OutputExtractNewHireFields{Fields: res.Fields, FoundCount: res.FoundCount()}, nil
}

func documentFor(input InputProcessNewHireDocument) textsource.Document {
	sourceID := input.SourceID
	if sourceID == "" {
		sourceID = "unknown"
	}
	return textsource.Document{
		Content: []byte(input.Content),
		Format:  input.Format,
		ID:      sourceID,
	}
}

func mustSchemaFor[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("tool: cannot infer input schema: %v", err))
	}
	return schema
}
