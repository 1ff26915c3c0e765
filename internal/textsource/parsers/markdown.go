// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"regexp"
	"strings"

	"github.com/hireflow/hireflow/internal/textsource"
)

var (
	reListMarker    = regexp.MustCompile(`^(?:[-*+]|\d+[.)])[ \t]+`)
	reTableDivider  = regexp.MustCompile(`^\|?[ \t]*:?-{3,}:?[ \t]*(?:\|[ \t]*:?-{3,}:?[ \t]*)*\|?$`)
	emphasisMarkers = strings.NewReplacer("**", "", "__", "", "`", "")
	// reLeadingItalic matches single-marker emphasis opening a line, as in
	// "*Email:* jane@acme.io" or "_Role_: Engineer".
	reLeadingItalic = regexp.MustCompile(`^(?:\*([^*]+)\*|_([^_]+)_)`)
)

// stripEmphasis removes bold and code markers, then italics around the
// leading label.
func stripEmphasis(s string) string {
	return reLeadingItalic.ReplaceAllString(emphasisMarkers.Replace(s), "$1$2")
}

// MarkdownParser flattens Markdown new-hire forms into plain "Label: value"
// lines. Headings, list markers and emphasis are removed; two-column table
// rows become "left: right".
type MarkdownParser struct{}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func (p *MarkdownParser) Name() string {
	return "markdown"
}

// CanHandle returns true for sources that use the "markdown" format hint,
// or unhinted content that starts with a heading or uses bold labels.
func (p *MarkdownParser) CanHandle(doc textsource.Document) bool {
	if strings.EqualFold(doc.Format, "markdown") || strings.EqualFold(doc.Format, "md") {
		return true
	}
	if doc.Format != "" {
		return false
	}
	content := strings.TrimSpace(string(doc.Content))
	return strings.HasPrefix(content, "#") || strings.Contains(content, "\n#") || strings.Contains(content, "**")
}

func (p *MarkdownParser) Text(_ context.Context, doc textsource.Document) (string, error) {
	lines := strings.Split(normalizeNewlines(string(doc.Content)), "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			out = append(out, "")
			continue
		case reTableDivider.MatchString(trimmed):
			continue
		case strings.HasPrefix(trimmed, "|"):
			out = append(out, tableRow(trimmed))
			continue
		}

		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, ">"))
		trimmed = reListMarker.ReplaceAllString(trimmed, "")
		out = append(out, stripEmphasis(trimmed))
	}
	return strings.Join(out, "\n"), nil
}

// tableRow renders "| a | b |" as "a: b". Rows with another column count are
// joined with spaces.
func tableRow(row string) string {
	row = strings.Trim(row, "|")
	cells := strings.Split(row, "|")
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		parts = append(parts, stripEmphasis(strings.TrimSpace(c)))
	}
	if len(parts) == 2 {
		label := strings.TrimSuffix(parts[0], ":")
		return label + ": " + parts[1]
	}
	return strings.Join(parts, " ")
}
