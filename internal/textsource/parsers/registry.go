// SPDX-License-Identifier: Apache-2.0

package parsers

import "github.com/hireflow/hireflow/internal/textsource"

// DefaultRegistry builds a Registry with all built-in parsers registered.
// Parser order matters: the structured parser claims hinted YAML/JSON and
// JSON objects first, markdown claims hinted or sniffed Markdown, and plain
// text is the fallback.
func DefaultRegistry() *textsource.Registry {
	return textsource.NewRegistry(
		NewStructuredParser(),
		NewMarkdownParser(),
		NewPlainTextParser(),
	)
}
