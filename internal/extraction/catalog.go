// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"fmt"
	"regexp"
)

// FieldName is the canonical label of a field sought in a new-hire document.
type FieldName string

const (
	FieldFullName   FieldName = "Name"
	FieldEmail      FieldName = "Email"
	FieldDepartment FieldName = "Department"
	FieldRole       FieldName = "Role"
	FieldStartDate  FieldName = "Start Date"
	FieldSalary     FieldName = "Salary"
	FieldManager    FieldName = "Manager"
	FieldEmployeeID FieldName = "Employee ID"
)

// Category groups fields for presentation. It carries no extraction logic.
type Category string

const (
	CategoryIdentity       Category = "identity"
	CategoryContact        Category = "contact"
	CategoryOrganizational Category = "organizational"
	CategoryCompensation   Category = "compensation"
)

// FieldSpec is one catalog entry. Patterns are ordered most specific first;
// the index of a pattern determines its base confidence.
type FieldSpec struct {
	Name     FieldName
	Category Category
	Patterns []*regexp.Regexp
}

// Catalog is the ordered set of fields an Extractor looks for.
type Catalog []FieldSpec

// patternFlags makes every catalog pattern case-insensitive with ^ and $
// anchoring at line boundaries.
const patternFlags = "(?im)"

// fieldRule is the uncompiled form of a FieldSpec.
type fieldRule struct {
	name     FieldName
	category Category
	exprs    []string
}

// defaultFieldRules is the built-in pattern table. Labeled "Label: value"
// lines come first; the value may sit on the line below its label, as in
// text extracted from PDFs. The looser prose patterns after them exist for
// documents without explicit labels and are ranked lower on purpose.
var defaultFieldRules = []fieldRule{
	{
		name:     FieldFullName,
		category: CategoryIdentity,
		exprs: []string{
			`^[ \t]*(?:full[ \t]+|legal[ \t]+|employee[ \t]+|candidate[ \t]+|new[ \t]+hire[ \t]+)?name[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`^[ \t]*name[ \t]*[-=][ \t]*(.+)$`,
			`\bdear[ \t]+([a-z][a-z'\-]+(?:[ \t]+[a-z][a-z'\-]+){1,2})\b`,
		},
	},
	{
		name:     FieldEmail,
		category: CategoryContact,
		exprs: []string{
			`^[ \t]*(?:work[ \t]+|personal[ \t]+|contact[ \t]+)?e-?mail(?:[ \t]+address)?[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\b([a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,})\b`,
		},
	},
	{
		name:     FieldDepartment,
		category: CategoryOrganizational,
		exprs: []string{
			`^[ \t]*(?:department|dept\.?|division|business[ \t]+unit)[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\bjoin(?:s|ing)?[ \t]+(?:the[ \t]+|our[ \t]+)?([a-z][a-z&\-]*(?:[ \t]+[a-z][a-z&\-]*){0,3}?)[ \t]+(?:department|team|division)\b`,
		},
	},
	{
		name:     FieldRole,
		category: CategoryOrganizational,
		exprs: []string{
			`^[ \t]*(?:role|position|job[ \t]+title|title|designation)[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\bposition[ \t]+of[ \t]+([a-z][a-z\-]*(?:[ \t]+[a-z][a-z\-]*){0,4}?)(?:[ \t]*[,.;]|[ \t]+(?:in|at|with|reporting|starting|effective)\b|[ \t]*$)`,
		},
	},
	{
		name:     FieldStartDate,
		category: CategoryOrganizational,
		exprs: []string{
			`^[ \t]*(?:start(?:ing)?[ \t]+date|date[ \t]+of[ \t]+joining|joining[ \t]+date|commencement[ \t]+date|first[ \t]+day)[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\b(?:start(?:s|ing)?|commenc(?:e|es|ing)|join(?:s|ing)?)[ \t]+on[ \t]+(\d{4}-\d{2}-\d{2}|\d{1,2}[/\-]\d{1,2}[/\-]\d{4}|[a-z]+[ \t]+\d{1,2},[ \t]*\d{4})`,
		},
	},
	{
		name:     FieldSalary,
		category: CategoryCompensation,
		exprs: []string{
			`^[ \t]*(?:annual[ \t]+|base[ \t]+|annual[ \t]+base[ \t]+)?(?:salary|compensation|pay)[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\b(?:salary|compensation)[ \t]+of[ \t]+([$€£][ \t]*\d[\d,]*(?:\.\d+)?|\d[\d,]*(?:\.\d+)?)`,
			`([$€£][ \t]*\d{1,3}(?:,\d{3})+(?:\.\d{2})?)`,
		},
	},
	{
		name:     FieldManager,
		category: CategoryOrganizational,
		exprs: []string{
			`^[ \t]*(?:reporting[ \t]+manager|hiring[ \t]+manager|manager(?:[ \t]+name)?|reports[ \t]+to|supervisor)[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\breport(?:s|ing)?[ \t]+(?:directly[ \t]+)?to[ \t]+([a-z][a-z'\-]*(?:[ \t]+[a-z][a-z'\-]*)?)`,
		},
	},
	{
		name:     FieldEmployeeID,
		category: CategoryIdentity,
		exprs: []string{
			`^[ \t]*(?:employee[ \t]+(?:id|number|no\.?|#)|emp[ \t]*id|staff[ \t]+id)[ \t]*:[ \t]*(?:\r?\n[ \t]*)?(.+)$`,
			`\b(emp[\-_]?\d{3,})\b`,
		},
	},
}

// DefaultCatalog returns the built-in field catalog.
func DefaultCatalog() Catalog {
	catalog := make(Catalog, 0, len(defaultFieldRules))
	for _, rule := range defaultFieldRules {
		spec := FieldSpec{Name: rule.name, Category: rule.category}
		for _, expr := range rule.exprs {
			spec.Patterns = append(spec.Patterns, regexp.MustCompile(patternFlags+expr))
		}
		catalog = append(catalog, spec)
	}
	return catalog
}

// Names returns the field names in catalog order.
func (c Catalog) Names() []FieldName {
	names := make([]FieldName, len(c))
	for i, spec := range c {
		names[i] = spec.Name
	}
	return names
}

// Lookup returns the spec for name.
func (c Catalog) Lookup(name FieldName) (FieldSpec, bool) {
	for _, spec := range c {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// WithPatterns returns a copy of the catalog with exprs appended after the
// existing patterns of field. The receiver is not modified. Appended patterns
// rank below every built-in pattern of the field.
func (c Catalog) WithPatterns(field FieldName, exprs ...string) (Catalog, error) {
	idx := -1
	for i, spec := range c {
		if spec.Name == field {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(patternFlags + expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q for field %q: %w", expr, field, err)
		}
		compiled = append(compiled, re)
	}

	out := make(Catalog, len(c))
	copy(out, c)
	patterns := make([]*regexp.Regexp, 0, len(c[idx].Patterns)+len(compiled))
	patterns = append(patterns, c[idx].Patterns...)
	out[idx].Patterns = append(patterns, compiled...)
	return out, nil
}
