// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/hireflow/hireflow/internal/extraction"
)

// RequiredFields must be present for a report to be non-blocking.
var RequiredFields = []extraction.FieldName{
	extraction.FieldFullName,
	extraction.FieldEmail,
	extraction.FieldDepartment,
	extraction.FieldRole,
	extraction.FieldStartDate,
}

// unchecked are optional fields with no format rule; they are Valid when present.
var unchecked = []extraction.FieldName{
	extraction.FieldManager,
	extraction.FieldEmployeeID,
}

var (
	reEmail        = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@([A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,})$`)
	reCurrencyCode = regexp.MustCompile(`(?i)\b(usd|eur|gbp|cad|aud|inr|jpy|chf)\b`)
	reAmount       = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// secondsPerDay converts Unix second deltas to whole days. Subtracting
// time.Time values saturates near 292 years, so offsets use Unix seconds.
const secondsPerDay = 24 * 60 * 60

// Validator applies business rules to an extraction result. It holds no
// mutable state and is safe for concurrent use.
type Validator struct {
	rules   Rules
	now     func() time.Time
	domains map[string]struct{}
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the source of the current date.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator creates a Validator. Missing date layouts fall back to the
// defaults.
func NewValidator(rules Rules, opts ...Option) *Validator {
	if len(rules.DateLayouts) == 0 {
		rules.DateLayouts = DefaultRules().DateLayouts
	}
	v := &Validator{
		rules:   rules,
		now:     time.Now,
		domains: make(map[string]struct{}, len(rules.PersonalDomains)),
	}
	for _, d := range rules.PersonalDomains {
		v.domains[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rules returns the thresholds in effect.
func (v *Validator) Rules() Rules {
	return v.rules
}

// Validate produces a report for res. The current date is read once.
func (v *Validator) Validate(res extraction.Result) Report {
	now := v.now()
	report := newReport()

	for _, name := range RequiredFields {
		if !res.Get(name).Found {
			report.addError(fmt.Sprintf("Missing critical field: %s", name))
			report.FieldStatus[name] = StatusMissing
			continue
		}
		report.FieldStatus[name] = StatusValid
	}

	if email := res.Get(extraction.FieldEmail); email.Found {
		v.checkEmail(&report, email.Value)
	}
	if start := res.Get(extraction.FieldStartDate); start.Found {
		v.checkStartDate(&report, start.Value, now)
	}
	if salary := res.Get(extraction.FieldSalary); salary.Found {
		v.checkSalary(&report, salary.Value)
	}
	for _, name := range unchecked {
		if res.Get(name).Found {
			report.FieldStatus[name] = StatusValid
		}
	}
	return report
}

func (v *Validator) checkEmail(report *Report, value string) {
	m := reEmail.FindStringSubmatch(value)
	if m == nil {
		report.addError("Email format validation failed")
		report.FieldStatus[extraction.FieldEmail] = StatusInvalidFormat
		return
	}
	domain := strings.ToLower(m[1])
	if _, personal := v.domains[domain]; personal {
		report.addWarning(fmt.Sprintf("Personal email domain in use (%s); a corporate address is expected", domain))
		report.addSuggestion(fmt.Sprintf("Request a corporate email address to replace the %s address", domain))
	}
}

func (v *Validator) checkStartDate(report *Report, value string, now time.Time) {
	parsed, ok := v.parseDate(value)
	if !ok {
		report.addWarning("Could not parse start date format")
		report.addSuggestion("Standardize the start date to ISO format (YYYY-MM-DD)")
		report.FieldStatus[extraction.FieldStartDate] = StatusFormatUnclear
		return
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := int((parsed.Unix() - today.Unix()) / secondsPerDay)
	report.StartDate = parsed.Format(LayoutISO)
	report.StartDateOffsetDays = &offset

	switch {
	case offset < -v.rules.PastToleranceDays:
		report.addWarning(fmt.Sprintf("Start date is %s in the past", days(-offset)))
	case offset > v.rules.FutureWindowDays:
		report.addWarning(fmt.Sprintf("Start date is %s in the future", days(offset)))
		report.addSuggestion(fmt.Sprintf("Verify that the start date %s is intentional", report.StartDate))
	}
}

// parseDate tries each layout in order; the first that parses wins.
func (v *Validator) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range v.rules.DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (v *Validator) checkSalary(report *Report, value string) {
	amount, ok := parseAmount(value)
	if !ok {
		report.addWarning("Could not parse salary amount")
		report.FieldStatus[extraction.FieldSalary] = StatusInvalidFormat
		return
	}
	report.SalaryAmount = &amount
	report.FieldStatus[extraction.FieldSalary] = StatusValid

	switch {
	case amount < v.rules.MinSalary:
		report.addWarning(fmt.Sprintf("Salary %s is below the market range (minimum %s)", money(amount), money(v.rules.MinSalary)))
	case amount > v.rules.MaxSalary:
		report.addWarning(fmt.Sprintf("Salary %s is at executive level (above %s)", money(amount), money(v.rules.MaxSalary)))
		report.addSuggestion("Route this offer through executive compensation review")
	}
}

// parseAmount strips currency codes, currency symbols, thousands separators
// and spaces, then parses what is left as a plain decimal. A leading minus
// is kept so negative amounts reach the market range check.
func parseAmount(value string) (float64, bool) {
	s := reCurrencyCode.ReplaceAllString(value, "")
	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	if !reAmount.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
