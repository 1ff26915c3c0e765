// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-yaml"

	"github.com/hireflow/hireflow/internal/textsource"
)

// StructuredParser reads YAML and JSON form exports and renders every scalar
// as a "Label: value" line, in document order. Keys are humanised, so
// start_date and startDate both become "Start Date".
type StructuredParser struct{}

func NewStructuredParser() *StructuredParser {
	return &StructuredParser{}
}

func (p *StructuredParser) Name() string {
	return "structured"
}

// CanHandle accepts yaml/yml/json hints and unhinted content that looks like
// a JSON object. Unhinted YAML is left to the plain text parser, which reads
// "Key: value" lines just as well.
func (p *StructuredParser) CanHandle(doc textsource.Document) bool {
	switch strings.ToLower(doc.Format) {
	case "yaml", "yml", "json":
		return true
	case "":
		return strings.HasPrefix(strings.TrimSpace(string(doc.Content)), "{")
	}
	return false
}

func (p *StructuredParser) Text(_ context.Context, doc textsource.Document) (string, error) {
	var root any
	if err := yaml.UnmarshalWithOptions(doc.Content, &root, yaml.UseOrderedMap()); err != nil {
		return "", fmt.Errorf("failed to unmarshal YAML/JSON: %w", err)
	}
	items, ok := root.(yaml.MapSlice)
	if !ok {
		return "", fmt.Errorf("structured document %q must be a mapping at the top level", doc.ID)
	}

	var lines []string
	flatten(items, "", &lines)
	return strings.Join(lines, "\n"), nil
}

// flatten walks a mapping depth first. Nested keys use their leaf name, except
// "name", which keeps its parent so that manager.name does not read as the
// new hire's own name.
func flatten(items yaml.MapSlice, parent string, lines *[]string) {
	for _, item := range items {
		key := fmt.Sprint(item.Key)
		label := humanize(key)
		if parent != "" && strings.EqualFold(key, "name") {
			label = humanize(parent) + " " + label
		}

		switch v := item.Value.(type) {
		case yaml.MapSlice:
			flatten(v, key, lines)
		case []any:
			if s := joinScalars(v); s != "" {
				*lines = append(*lines, label+": "+s)
			}
			for _, elem := range v {
				if m, ok := elem.(yaml.MapSlice); ok {
					flatten(m, key, lines)
				}
			}
		case nil:
			continue
		default:
			*lines = append(*lines, label+": "+scalar(v))
		}
	}
}

func joinScalars(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch v.(type) {
		case yaml.MapSlice, []any, nil:
			continue
		}
		parts = append(parts, scalar(v))
	}
	return strings.Join(parts, ", ")
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// humanize turns snake_case, kebab-case and camelCase keys into title-cased
// words. "id" is rendered as "ID".
func humanize(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	for i, w := range words {
		lower := strings.ToLower(w)
		if lower == "id" {
			words[i] = "ID"
			continue
		}
		r := []rune(lower)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
