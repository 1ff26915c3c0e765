// SPDX-License-Identifier: Apache-2.0

package validation

// Date layouts accepted for the start date, in the order they are tried.
// Single-digit month and day forms parse as well.
const (
	LayoutISO       = "2006-01-02"
	LayoutUSSlash   = "1/2/2006"
	LayoutEUSlash   = "2/1/2006"
	LayoutLongMonth = "January 2, 2006"
	LayoutUSDashed  = "1-2-2006"
)

// Rules holds the tunable thresholds of the validator. The zero value is not
// useful; start from DefaultRules.
type Rules struct {
	// PastToleranceDays is how many days in the past a start date may be
	// before it is reported. Zero reports any past date.
	PastToleranceDays int `json:"past_tolerance_days" yaml:"past_tolerance_days"`
	// FutureWindowDays is the furthest a start date may lie in the future
	// without a warning.
	FutureWindowDays int `json:"future_window_days" yaml:"future_window_days"`
	// MinSalary and MaxSalary bound the plausible salary range, inclusive.
	MinSalary float64 `json:"min_salary" yaml:"min_salary"`
	MaxSalary float64 `json:"max_salary" yaml:"max_salary"`
	// PersonalDomains are consumer webmail domains that trigger an advisory.
	PersonalDomains []string `json:"personal_domains" yaml:"personal_domains"`
	DateLayouts     []string `json:"date_layouts" yaml:"date_layouts"`
}

// DefaultRules returns the documented default thresholds.
func DefaultRules() Rules {
	return Rules{
		PastToleranceDays: 0,
		FutureWindowDays:  90,
		MinSalary:         25000,
		MaxSalary:         300000,
		PersonalDomains: []string{
			"gmail.com",
			"yahoo.com",
			"hotmail.com",
			"outlook.com",
			"aol.com",
			"icloud.com",
			"protonmail.com",
			"live.com",
		},
		DateLayouts: []string{
			LayoutISO,
			LayoutUSSlash,
			LayoutEUSlash,
			LayoutLongMonth,
			LayoutUSDashed,
		},
	}
}
