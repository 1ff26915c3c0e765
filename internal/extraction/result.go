// SPDX-License-Identifier: Apache-2.0

package extraction

// FieldResult is the outcome of extracting one field. Found distinguishes an
// absent field from a present one; Value is only meaningful when Found is true.
type FieldResult struct {
	Field        FieldName `json:"field" yaml:"field"`
	Category     Category  `json:"category" yaml:"category"`
	Value        string    `json:"value,omitempty" yaml:"value,omitempty"`
	Found        bool      `json:"found" yaml:"found"`
	Confidence   float64   `json:"confidence" yaml:"confidence"`
	PatternIndex int       `json:"pattern_index" yaml:"pattern_index"`
}

// Result holds one FieldResult per catalog field, in catalog order.
type Result struct {
	Fields []FieldResult `json:"fields" yaml:"fields"`
}

// Get returns the result for name. Unknown names come back absent.
func (r Result) Get(name FieldName) FieldResult {
	for _, f := range r.Fields {
		if f.Field == name {
			return f
		}
	}
	return FieldResult{Field: name, PatternIndex: -1}
}

// Map indexes the results by field name.
func (r Result) Map() map[FieldName]FieldResult {
	out := make(map[FieldName]FieldResult, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Field] = f
	}
	return out
}

// FoundCount returns how many fields were found.
func (r Result) FoundCount() int {
	n := 0
	for _, f := range r.Fields {
		if f.Found {
			n++
		}
	}
	return n
}
