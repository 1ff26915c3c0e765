// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"strings"

	"github.com/hireflow/hireflow/internal/textsource"
)

// PlainTextParser passes text through with line endings normalised. It is
// the fallback for documents without a format hint.
type PlainTextParser struct{}

func NewPlainTextParser() *PlainTextParser {
	return &PlainTextParser{}
}

func (p *PlainTextParser) Name() string {
	return "text"
}

func (p *PlainTextParser) CanHandle(doc textsource.Document) bool {
	switch strings.ToLower(doc.Format) {
	case "", "text", "txt", "plain":
		return true
	}
	return false
}

func (p *PlainTextParser) Text(_ context.Context, doc textsource.Document) (string, error) {
	return normalizeNewlines(string(doc.Content)), nil
}

func normalizeNewlines(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
