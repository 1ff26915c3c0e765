// SPDX-License-Identifier: Apache-2.0

package validation

import "github.com/hireflow/hireflow/internal/extraction"

// Status is the validation verdict for a single field.
type Status string

const (
	StatusValid         Status = "Valid"
	StatusMissing       Status = "Missing"
	StatusInvalidFormat Status = "InvalidFormat"
	StatusFormatUnclear Status = "FormatUnclear"
)

// Report is the outcome of validating one extraction result.
//
// Errors block any downstream submission. Warnings and Suggestions are
// advisory and never do.
type Report struct {
	FieldStatus map[extraction.FieldName]Status `json:"field_status" yaml:"field_status"`
	Errors      []string                        `json:"errors" yaml:"errors"`
	Warnings    []string                        `json:"warnings" yaml:"warnings"`
	Suggestions []string                        `json:"suggestions" yaml:"suggestions"`

	// StartDate is the parsed start date in ISO form, when it parsed.
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	// StartDateOffsetDays is the signed number of days from the validation
	// date to the start date.
	StartDateOffsetDays *int `json:"start_date_offset_days,omitempty" yaml:"start_date_offset_days,omitempty"`
	// SalaryAmount is the parsed salary, when it parsed.
	SalaryAmount *float64 `json:"salary_amount,omitempty" yaml:"salary_amount,omitempty"`
}

// Blocking reports whether the report carries hard errors.
func (r Report) Blocking() bool {
	return len(r.Errors) > 0
}

func newReport() Report {
	return Report{
		FieldStatus: make(map[extraction.FieldName]Status),
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
}

func (r *Report) addError(msg string)      { r.Errors = append(r.Errors, msg) }
func (r *Report) addWarning(msg string)    { r.Warnings = append(r.Warnings, msg) }
func (r *Report) addSuggestion(msg string) { r.Suggestions = append(r.Suggestions, msg) }
