// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnprocessableInput is returned when the text itself cannot be read,
	// as opposed to readable text in which no fields were found.
	ErrUnprocessableInput = errors.New("unprocessable input")
	// ErrUnknownField is returned when a field name is not in the catalog.
	ErrUnknownField = errors.New("unknown field")
)

// Confidence is tracked in tenths so that the decay and bonus arithmetic is
// exact and two runs over the same text produce identical scores.
const (
	baseTenths      = 9
	minTenths       = 1
	separatorTenths = 1
	maxTenths       = 10
)

// Extractor finds catalog fields in plain text. It holds no mutable state and
// is safe for concurrent use.
type Extractor struct {
	catalog Catalog
}

// NewExtractor creates an Extractor over catalog. An empty catalog falls back
// to DefaultCatalog.
func NewExtractor(catalog Catalog) *Extractor {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	return &Extractor{catalog: catalog}
}

// Catalog returns the catalog the extractor was built with.
func (e *Extractor) Catalog() Catalog {
	return e.catalog
}

// Extract scans text for every catalog field. The result always carries one
// entry per field; fields that were not found are marked absent.
func (e *Extractor) Extract(text string) (Result, error) {
	if err := checkReadable(text); err != nil {
		return Result{}, err
	}

	fields := make([]FieldResult, 0, len(e.catalog))
	for _, spec := range e.catalog {
		fields = append(fields, extractField(spec, text))
	}
	return Result{Fields: fields}, nil
}

func checkReadable(text string) error {
	switch {
	case !utf8.ValidString(text):
		return fmt.Errorf("%w: text is not valid UTF-8", ErrUnprocessableInput)
	case strings.ContainsRune(text, 0):
		return fmt.Errorf("%w: text contains NUL bytes", ErrUnprocessableInput)
	case strings.TrimSpace(text) == "":
		return fmt.Errorf("%w: text is empty", ErrUnprocessableInput)
	}
	return nil
}

func extractField(spec FieldSpec, text string) FieldResult {
	best := absent(spec)
	bestTenths := 0

	for i, re := range spec.Patterns {
		raw, value, ok := matchPattern(re, text)
		if !ok {
			continue
		}
		tenths := candidateTenths(i, raw)
		// Strictly greater: on a tie the earlier, more specific pattern stays.
		if tenths > bestTenths {
			bestTenths = tenths
			best = FieldResult{
				Field:        spec.Name,
				Category:     spec.Category,
				Value:        value,
				Found:        true,
				Confidence:   float64(tenths) / 10,
				PatternIndex: i,
			}
		}
	}
	return best
}

// reLabelLine matches a line that starts with a "Label:" of its own.
var reLabelLine = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 .#/'&()-]{0,40}:`)

// matchPattern returns the raw matched text and the trimmed payload. The
// payload is the first capture group when the pattern has one. A payload
// taken from the line below an empty label is rejected when that line is
// itself a label.
func matchPattern(re *regexp.Regexp, text string) (raw, value string, ok bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	raw = m[0]
	value = raw
	if re.NumSubexp() > 0 {
		value = m[1]
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", false
	}
	if strings.Contains(raw, "\n") && reLabelLine.MatchString(value) {
		return "", "", false
	}
	return raw, value, true
}

func candidateTenths(index int, raw string) int {
	tenths := baseTenths - index
	if tenths < minTenths {
		tenths = minTenths
	}
	if strings.Contains(raw, ":") {
		tenths += separatorTenths
	}
	if tenths > maxTenths {
		tenths = maxTenths
	}
	return tenths
}

func absent(spec FieldSpec) FieldResult {
	return FieldResult{
		Field:        spec.Name,
		Category:     spec.Category,
		PatternIndex: -1,
	}
}
