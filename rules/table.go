package rules

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TABLE - Immutable rule configuration
// =============================================================================

// Table is the full rule configuration. Build it with NewTable; after that it
// is read-only and safe to share between goroutines.
type Table struct {
	version            string
	reasons            []Reason
	reasonIndex        map[ReasonCode]int
	categories         map[CategoryKey]Category
	socialContribution SocialContributionTable
	incomeTax          IncomeTaxTable
	defaults           Defaults
}

// Spec is the raw material of a Table.
type Spec struct {
	Version            string
	Reasons            []Reason
	Categories         []Category
	SocialContribution SocialContributionTable
	IncomeTax          IncomeTaxTable
	Defaults           Defaults
}

// NewTable validates spec and freezes it into a Table.
func NewTable(spec Spec) (*Table, error) {
	t := &Table{
		version:            spec.Version,
		reasons:            append([]Reason(nil), spec.Reasons...),
		reasonIndex:        make(map[ReasonCode]int, len(spec.Reasons)),
		categories:         make(map[CategoryKey]Category, len(spec.Categories)),
		socialContribution: SocialContributionTable{Ceiling: spec.SocialContribution.Ceiling, Brackets: append([]Bracket(nil), spec.SocialContribution.Brackets...)},
		incomeTax:          IncomeTaxTable{Brackets: append([]Bracket(nil), spec.IncomeTax.Brackets...)},
		defaults:           spec.Defaults,
	}

	var problems []string
	for i, r := range t.reasons {
		if _, dup := t.reasonIndex[r.Code]; dup {
			problems = append(problems, fmt.Sprintf("duplicate reason code %q", r.Code))
			continue
		}
		t.reasonIndex[r.Code] = i
	}
	for _, c := range spec.Categories {
		if _, dup := t.categories[c.Key]; dup {
			problems = append(problems, fmt.Sprintf("duplicate category %q", c.Key))
			continue
		}
		t.categories[c.Key] = c
	}

	problems = append(problems, t.validate()...)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return t, nil
}

// MustNewTable is NewTable for tables known to be valid at compile time.
func MustNewTable(spec Spec) *Table {
	t, err := NewTable(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve looks up a reason and its category rule-set.
func (t *Table) Resolve(code ReasonCode) (Reason, Category, error) {
	i, ok := t.reasonIndex[code]
	if !ok {
		return Reason{}, Category{}, &UnknownReasonError{Code: code}
	}
	reason := t.reasons[i]
	category, ok := t.categories[reason.Category]
	if !ok {
		return Reason{}, Category{}, &UnknownCategoryError{Reason: code, Category: reason.Category}
	}
	return reason, category, nil
}

// Version identifies the table, e.g. "2025.1".
func (t *Table) Version() string { return t.version }

// Reasons returns the catalog in its configured order.
func (t *Table) Reasons() []Reason { return append([]Reason(nil), t.reasons...) }

// Categories returns every category sorted by key.
func (t *Table) Categories() []Category {
	out := make([]Category, 0, len(t.categories))
	for _, c := range t.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SocialContribution returns the INSS table.
func (t *Table) SocialContribution() SocialContributionTable {
	return SocialContributionTable{Ceiling: t.socialContribution.Ceiling, Brackets: append([]Bracket(nil), t.socialContribution.Brackets...)}
}

// IncomeTax returns the IRRF table.
func (t *Table) IncomeTax() IncomeTaxTable {
	return IncomeTaxTable{Brackets: append([]Bracket(nil), t.incomeTax.Brackets...)}
}

// Defaults returns the legal constants.
func (t *Table) Defaults() Defaults { return t.defaults }

// Spec returns the raw material the table was built from.
func (t *Table) Spec() Spec {
	return Spec{
		Version:            t.version,
		Reasons:            t.Reasons(),
		Categories:         t.Categories(),
		SocialContribution: t.SocialContribution(),
		IncomeTax:          t.IncomeTax(),
		Defaults:           t.defaults,
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func (t *Table) validate() []string {
	var problems []string

	if len(t.reasons) == 0 {
		problems = append(problems, "reason catalog is empty")
	}
	for _, r := range t.reasons {
		if _, ok := t.categories[r.Category]; !ok {
			problems = append(problems, fmt.Sprintf("reason %q references unknown category %q", r.Code, r.Category))
		}
	}

	one := decimal.NewFromInt(1)
	for _, c := range t.categories {
		if c.FundPenaltyRate.IsNegative() || c.FundPenaltyRate.GreaterThan(one) {
			problems = append(problems, fmt.Sprintf("category %q: fund penalty rate out of range", c.Key))
		}
		if c.NoticeFactor.IsNegative() || c.ReductionFactor.IsNegative() {
			problems = append(problems, fmt.Sprintf("category %q: negative factor", c.Key))
		}
	}

	problems = append(problems, validateBrackets("social contribution", t.socialContribution.Brackets)...)
	problems = append(problems, validateBrackets("income tax", t.incomeTax.Brackets)...)
	if !t.socialContribution.Ceiling.IsPositive() {
		problems = append(problems, "social contribution: ceiling must be positive")
	}

	if t.defaults.DaysPerMonth <= 0 {
		problems = append(problems, "defaults: days per month must be positive")
	}
	if !t.defaults.MonthlyHoursDivisor.IsPositive() {
		problems = append(problems, "defaults: monthly hours divisor must be positive")
	}
	if t.defaults.UnservedNoticeCapRatio.IsNegative() || t.defaults.UnservedNoticeCapRatio.GreaterThan(one) {
		problems = append(problems, "defaults: unserved notice cap ratio out of range")
	}
	return problems
}

// validateBrackets enforces contiguous, strictly increasing brackets with an
// optional unbounded last band.
func validateBrackets(name string, brackets []Bracket) []string {
	if len(brackets) == 0 {
		return []string{name + ": no brackets"}
	}
	var problems []string
	one := decimal.NewFromInt(1)
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			problems = append(problems, fmt.Sprintf("%s: bracket %d rate out of range", name, i))
		}
		if b.Deduction.IsNegative() {
			problems = append(problems, fmt.Sprintf("%s: bracket %d negative deduction", name, i))
		}
		if b.Unbounded() {
			if i != len(brackets)-1 {
				problems = append(problems, fmt.Sprintf("%s: unbounded bracket %d is not last", name, i))
			}
			continue
		}
		if !b.UpTo.GreaterThan(prev) {
			problems = append(problems, fmt.Sprintf("%s: bracket %d upper bound %s not above %s", name, i, b.UpTo, prev))
		}
		prev = *b.UpTo
	}
	return problems
}
