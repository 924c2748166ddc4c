/*
Package factory converts rule-table files into rules.Table values.

PURPOSE:
  Reason catalogs, category rule-sets and tax tables change by statute, not
  by release. The factory lets a deployment ship them as a YAML or JSON file
  (or store them as JSON in the database) and builds the validated
  rules.Table the engine computes with.

FILE SCHEMA (YAML shown, JSON uses the same keys):
  version: "2025.1"
  defaults:
    dependent_deduction: 189.59
    minimum_wage: 1518.00
    days_per_month: 30
    experience_limit_days: 90
    monthly_hours_divisor: 220
    unserved_notice_cap_ratio: 0.70
  reasons:
    - {code: "02", description: "Demitido SEM justa causa", category: SEM_JUSTA_CAUSA_EQUIVALENTE}
  categories:
    SEM_JUSTA_CAUSA_EQUIVALENTE:
      accrued_salary: true
      expired_vacation: true
      proportional_vacation: true
      thirteenth_salary: true
      notice: true
      notice_reflexes: true
      fund_penalty_rate: 0.40
  social_contribution:
    ceiling: 8157.41
    brackets: [{up_to: 1518.00, rate: 0.075}, ...]
  income_tax:
    brackets: [{up_to: 2428.80, rate: 0, deduction: 0}, ..., {rate: 0.275, deduction: 908.73}]

DEFAULTS:
  Missing entries of "defaults" are taken from the built-in table. A bracket
  without up_to is unbounded. Money and rates may be numbers or strings.

SEE ALSO:
  - rules/types.go: field meanings
  - store/sqlite: stored versions of these files
*/
package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/rules"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// FILE SCHEMA TYPES
// =============================================================================

// RuleTableFile is the file representation of a rule table.
type RuleTableFile struct {
	Version            string                  `json:"version" yaml:"version"`
	Defaults           DefaultsFile            `json:"defaults" yaml:"defaults"`
	Reasons            []ReasonFile            `json:"reasons" yaml:"reasons"`
	Categories         map[string]CategoryFile `json:"categories" yaml:"categories"`
	SocialContribution SocialContributionFile  `json:"social_contribution" yaml:"social_contribution"`
	IncomeTax          IncomeTaxFile           `json:"income_tax" yaml:"income_tax"`
}

// DefaultsFile holds the scalar parameters. Zero values are filled in.
type DefaultsFile struct {
	DependentDeduction     *decimal.Decimal `json:"dependent_deduction,omitempty" yaml:"dependent_deduction,omitempty"`
	MinimumWage            *decimal.Decimal `json:"minimum_wage,omitempty" yaml:"minimum_wage,omitempty"`
	DaysPerMonth           int              `json:"days_per_month,omitempty" yaml:"days_per_month,omitempty"`
	ExperienceLimitDays    int              `json:"experience_limit_days,omitempty" yaml:"experience_limit_days,omitempty"`
	MonthlyHoursDivisor    *decimal.Decimal `json:"monthly_hours_divisor,omitempty" yaml:"monthly_hours_divisor,omitempty"`
	UnservedNoticeCapRatio *decimal.Decimal `json:"unserved_notice_cap_ratio,omitempty" yaml:"unserved_notice_cap_ratio,omitempty"`
}

// ReasonFile is one catalog entry.
type ReasonFile struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// CategoryFile is one category rule-set, keyed by category in the parent map.
type CategoryFile struct {
	Description              string           `json:"description,omitempty" yaml:"description,omitempty"`
	AccruedSalary            bool             `json:"accrued_salary" yaml:"accrued_salary"`
	ExpiredVacation          bool             `json:"expired_vacation" yaml:"expired_vacation"`
	ProportionalVacation     bool             `json:"proportional_vacation" yaml:"proportional_vacation"`
	ThirteenthSalary         bool             `json:"thirteenth_salary" yaml:"thirteenth_salary"`
	Notice                   bool             `json:"notice" yaml:"notice"`
	NoticeReflexes           bool             `json:"notice_reflexes" yaml:"notice_reflexes"`
	FundPenaltyRate          *decimal.Decimal `json:"fund_penalty_rate,omitempty" yaml:"fund_penalty_rate,omitempty"`
	NoticeFactor             *decimal.Decimal `json:"notice_factor,omitempty" yaml:"notice_factor,omitempty"`
	ReductionFactor          *decimal.Decimal `json:"reduction_factor,omitempty" yaml:"reduction_factor,omitempty"`
	WithholdsUnservedNotice  bool             `json:"withholds_unserved_notice,omitempty" yaml:"withholds_unserved_notice,omitempty"`
	RequiresFixedTermEndDate bool             `json:"requires_fixed_term_end_date,omitempty" yaml:"requires_fixed_term_end_date,omitempty"`
}

// BracketFile is one tax band. A missing up_to means unbounded.
type BracketFile struct {
	UpTo      *decimal.Decimal `json:"up_to,omitempty" yaml:"up_to,omitempty"`
	Rate      decimal.Decimal  `json:"rate" yaml:"rate"`
	Deduction *decimal.Decimal `json:"deduction,omitempty" yaml:"deduction,omitempty"`
}

// SocialContributionFile is the INSS table.
type SocialContributionFile struct {
	Ceiling  decimal.Decimal `json:"ceiling" yaml:"ceiling"`
	Brackets []BracketFile   `json:"brackets" yaml:"brackets"`
}

// IncomeTaxFile is the IRRF table.
type IncomeTaxFile struct {
	Brackets []BracketFile `json:"brackets" yaml:"brackets"`
}

// =============================================================================
// FORMATS
// =============================================================================

// Format is a rule-table file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported rule table extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// =============================================================================
// RULE TABLE FACTORY
// =============================================================================

// RuleTableFactory converts rule-table files to rules.Table values and back.
type RuleTableFactory struct{}

// NewRuleTableFactory creates a new rule-table factory.
func NewRuleTableFactory() *RuleTableFactory {
	return &RuleTableFactory{}
}

// Parse decodes data in the given format and builds a validated table.
func (f *RuleTableFactory) Parse(data []byte, format Format) (*rules.Table, error) {
	var rf RuleTableFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("failed to parse rule table JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("failed to parse rule table YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown rule table format %q", format)
	}
	return f.FromFile(rf)
}

// ParseJSON is Parse with FormatJSON.
func (f *RuleTableFactory) ParseJSON(data []byte) (*rules.Table, error) {
	return f.Parse(data, FormatJSON)
}

// ParseYAML is Parse with FormatYAML.
func (f *RuleTableFactory) ParseYAML(data []byte) (*rules.Table, error) {
	return f.Parse(data, FormatYAML)
}

// LoadFile reads a .json, .yaml or .yml rule-table file.
func (f *RuleTableFactory) LoadFile(path string) (*rules.Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table: %w", err)
	}
	table, err := f.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// FromFile converts a decoded file into a validated table.
func (f *RuleTableFactory) FromFile(rf RuleTableFile) (*rules.Table, error) {
	spec := rules.Spec{
		Version:  rf.Version,
		Defaults: parseDefaults(rf.Defaults),
		SocialContribution: rules.SocialContributionTable{
			Ceiling:  rf.SocialContribution.Ceiling,
			Brackets: parseBrackets(rf.SocialContribution.Brackets),
		},
		IncomeTax: rules.IncomeTaxTable{
			Brackets: parseBrackets(rf.IncomeTax.Brackets),
		},
	}
	if spec.Version == "" {
		return nil, fmt.Errorf("rule table version is required")
	}

	for _, r := range rf.Reasons {
		spec.Reasons = append(spec.Reasons, rules.Reason{
			Code:        rules.ReasonCode(r.Code),
			Description: r.Description,
			Category:    rules.CategoryKey(r.Category),
		})
	}

	for _, key := range sortedKeys(rf.Categories) {
		spec.Categories = append(spec.Categories, parseCategory(rules.CategoryKey(key), rf.Categories[key]))
	}

	return rules.NewTable(spec)
}

// ToFile converts a table to its file representation.
func (f *RuleTableFactory) ToFile(table *rules.Table) RuleTableFile {
	spec := table.Spec()
	d := spec.Defaults
	rf := RuleTableFile{
		Version: spec.Version,
		Defaults: DefaultsFile{
			DependentDeduction:     decimalPtr(d.DependentDeduction),
			MinimumWage:            decimalPtr(d.MinimumWage),
			DaysPerMonth:           d.DaysPerMonth,
			ExperienceLimitDays:    d.ExperienceLimitDays,
			MonthlyHoursDivisor:    decimalPtr(d.MonthlyHoursDivisor),
			UnservedNoticeCapRatio: decimalPtr(d.UnservedNoticeCapRatio),
		},
		Categories: make(map[string]CategoryFile, len(spec.Categories)),
		SocialContribution: SocialContributionFile{
			Ceiling:  spec.SocialContribution.Ceiling,
			Brackets: toBracketFiles(spec.SocialContribution.Brackets, false),
		},
		IncomeTax: IncomeTaxFile{
			Brackets: toBracketFiles(spec.IncomeTax.Brackets, true),
		},
	}

	for _, r := range spec.Reasons {
		rf.Reasons = append(rf.Reasons, ReasonFile{
			Code:        string(r.Code),
			Description: r.Description,
			Category:    string(r.Category),
		})
	}

	for _, c := range spec.Categories {
		cf := CategoryFile{
			Description:              c.Description,
			AccruedSalary:            c.PaysAccruedSalary,
			ExpiredVacation:          c.PaysExpiredVacation,
			ProportionalVacation:     c.PaysProportionalVacation,
			ThirteenthSalary:         c.PaysThirteenthSalary,
			Notice:                   c.PaysNotice,
			NoticeReflexes:           c.ProjectsNotice,
			WithholdsUnservedNotice:  c.WithholdsUnservedNotice,
			RequiresFixedTermEndDate: c.RequiresFixedTermEndDate,
		}
		if !c.FundPenaltyRate.IsZero() {
			cf.FundPenaltyRate = decimalPtr(c.FundPenaltyRate)
		}
		if !c.NoticeFactor.IsZero() {
			cf.NoticeFactor = decimalPtr(c.NoticeFactor)
		}
		if !c.ReductionFactor.IsZero() {
			cf.ReductionFactor = decimalPtr(c.ReductionFactor)
		}
		rf.Categories[string(c.Key)] = cf
	}

	return rf
}

// MarshalJSON encodes table as a JSON rule-table file.
func (f *RuleTableFactory) MarshalJSON(table *rules.Table) ([]byte, error) {
	return json.MarshalIndent(f.ToFile(table), "", "  ")
}

// MarshalYAML encodes table as a YAML rule-table file.
func (f *RuleTableFactory) MarshalYAML(table *rules.Table) ([]byte, error) {
	return yaml.Marshal(f.ToFile(table))
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseDefaults(df DefaultsFile) rules.Defaults {
	d := rules.DefaultSpec().Defaults
	if df.DependentDeduction != nil {
		d.DependentDeduction = *df.DependentDeduction
	}
	if df.MinimumWage != nil {
		d.MinimumWage = *df.MinimumWage
	}
	if df.DaysPerMonth > 0 {
		d.DaysPerMonth = df.DaysPerMonth
	}
	if df.ExperienceLimitDays > 0 {
		d.ExperienceLimitDays = df.ExperienceLimitDays
	}
	if df.MonthlyHoursDivisor != nil {
		d.MonthlyHoursDivisor = *df.MonthlyHoursDivisor
	}
	if df.UnservedNoticeCapRatio != nil {
		d.UnservedNoticeCapRatio = *df.UnservedNoticeCapRatio
	}
	return d
}

func parseCategory(key rules.CategoryKey, cf CategoryFile) rules.Category {
	c := rules.Category{
		Key:                      key,
		Description:              cf.Description,
		PaysAccruedSalary:        cf.AccruedSalary,
		PaysExpiredVacation:      cf.ExpiredVacation,
		PaysProportionalVacation: cf.ProportionalVacation,
		PaysThirteenthSalary:     cf.ThirteenthSalary,
		PaysNotice:               cf.Notice,
		ProjectsNotice:           cf.NoticeReflexes,
		WithholdsUnservedNotice:  cf.WithholdsUnservedNotice,
		RequiresFixedTermEndDate: cf.RequiresFixedTermEndDate,
	}
	if cf.FundPenaltyRate != nil {
		c.FundPenaltyRate = *cf.FundPenaltyRate
	}
	if cf.NoticeFactor != nil {
		c.NoticeFactor = *cf.NoticeFactor
	}
	if cf.ReductionFactor != nil {
		c.ReductionFactor = *cf.ReductionFactor
	}
	return c
}

func parseBrackets(bfs []BracketFile) []rules.Bracket {
	out := make([]rules.Bracket, 0, len(bfs))
	for _, bf := range bfs {
		b := rules.Bracket{UpTo: bf.UpTo, Rate: bf.Rate}
		if bf.Deduction != nil {
			b.Deduction = *bf.Deduction
		}
		out = append(out, b)
	}
	return out
}

func toBracketFiles(brackets []rules.Bracket, withDeduction bool) []BracketFile {
	out := make([]BracketFile, 0, len(brackets))
	for _, b := range brackets {
		bf := BracketFile{UpTo: b.UpTo, Rate: b.Rate}
		if withDeduction {
			bf.Deduction = decimalPtr(b.Deduction)
		}
		out = append(out, bf)
	}
	return out
}

func sortedKeys(m map[string]CategoryFile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
