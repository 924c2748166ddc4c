/*
Package rules holds the static configuration of the settlement engine.

PURPOSE:
  Maps a termination reason ("motivo") to the rule-set of its category and
  carries the two payroll tax tables plus the handful of legal constants the
  engine needs. A Table is built once at startup and never mutated; every
  computation reads from it concurrently without locking.

KEY CONCEPTS IN THIS FILE (types.go):
  - Reason: catalog entry (code, description, category key)
  - Category: closed set of named flags that switch entitlements on or off
  - SocialContributionTable: marginal brackets with a ceiling (INSS)
  - IncomeTaxTable: single-bracket lookup with a flat deduction (IRRF)
  - Defaults: dependent deduction, minimum wage, divisors

CATEGORY FLAGS:
  Every category states every behavior explicitly. A false flag or a zero rate
  means the entitlement does not apply. Factors use zero as "not set" and are
  read through NoticeMultiplier / ReductionMultiplier, which default to 1.

SEE ALSO:
  - table.go: Table, Resolve, Validate
  - defaults.go: the 2025 tables shipped with the engine
  - factory/ruletable.go: YAML/JSON representation
*/
package rules

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ReasonCode is the official termination reason code ("01", "02", ...).
type ReasonCode string

// CategoryKey names a category rule-set.
type CategoryKey string

const (
	CategoryJustCause                CategoryKey = "JUSTA_CAUSA"
	CategoryWithoutCause             CategoryKey = "SEM_JUSTA_CAUSA_EQUIVALENTE"
	CategoryResignation              CategoryKey = "PEDIDO_DEMISSAO"
	CategoryMutualAgreement          CategoryKey = "ACORDO_484A"
	CategoryDeath                    CategoryKey = "MORTE"
	CategoryFixedTermEnd             CategoryKey = "TERMINO_A_TERMO"
	CategoryFixedTermEarlyByEmployer CategoryKey = "A_TERMO_ANTECIPADO_EMPREGADOR"
	CategoryFixedTermEarlyByEmployee CategoryKey = "A_TERMO_ANTECIPADO_EMPREGADO"
	CategorySharedFault              CategoryKey = "REDUCAO_50"
)

// =============================================================================
// REASON - Catalog entry
// =============================================================================

// Reason is one entry of the termination reason catalog.
type Reason struct {
	Code        ReasonCode
	Description string
	Category    CategoryKey
}

// =============================================================================
// CATEGORY - Which entitlements apply
// =============================================================================

// Category is the rule-set shared by every reason of the same class.
type Category struct {
	Key         CategoryKey
	Description string

	PaysAccruedSalary        bool // saldo de salário
	PaysExpiredVacation      bool // férias vencidas
	PaysProportionalVacation bool // férias proporcionais
	PaysThirteenthSalary     bool // 13º proporcional
	PaysNotice               bool // aviso prévio indenizado
	ProjectsNotice           bool // reflexos do aviso sobre 13º e férias

	// FundPenaltyRate is applied to the FGTS balance (0, 0.20 or 0.40).
	FundPenaltyRate decimal.Decimal

	// NoticeFactor scales indemnified notice (0.5 for art. 484-A). Zero = 1.
	NoticeFactor decimal.Decimal

	// ReductionFactor scales proportional accruals (0.5 for shared fault). Zero = 1.
	ReductionFactor decimal.Decimal

	// WithholdsUnservedNotice allows deducting notice days the employee did not serve.
	WithholdsUnservedNotice bool

	// RequiresFixedTermEndDate marks early termination of a fixed-term contract
	// by the employer (art. 479). The contract end date becomes mandatory.
	RequiresFixedTermEndDate bool
}

// NoticeMultiplier returns the notice factor, defaulting to 1.
func (c Category) NoticeMultiplier() decimal.Decimal {
	if c.NoticeFactor.IsPositive() {
		return c.NoticeFactor
	}
	return decimal.NewFromInt(1)
}

// ReductionMultiplier returns the reduction factor, defaulting to 1.
func (c Category) ReductionMultiplier() decimal.Decimal {
	if c.ReductionFactor.IsPositive() {
		return c.ReductionFactor
	}
	return decimal.NewFromInt(1)
}

// IsReduced reports whether proportional accruals are scaled down.
func (c Category) IsReduced() bool {
	return c.ReductionFactor.IsPositive() && c.ReductionFactor.LessThan(decimal.NewFromInt(1))
}

// =============================================================================
// TAX TABLES
// =============================================================================

// Bracket is one band of a progressive table. The lower bound is the UpTo of
// the previous bracket (exclusive); a nil UpTo means unbounded.
type Bracket struct {
	UpTo      *decimal.Decimal
	Rate      decimal.Decimal
	Deduction decimal.Decimal // parcela a deduzir; unused by the INSS table
}

// Unbounded reports whether the bracket has no upper bound.
func (b Bracket) Unbounded() bool { return b.UpTo == nil }

// Contains reports whether base falls at or below the bracket ceiling.
func (b Bracket) Contains(base decimal.Decimal) bool {
	return b.UpTo == nil || base.LessThanOrEqual(*b.UpTo)
}

// SocialContributionTable is the marginal INSS schedule.
type SocialContributionTable struct {
	Ceiling  decimal.Decimal
	Brackets []Bracket
}

// IncomeTaxTable is the IRRF schedule: one bracket applies to the whole base.
type IncomeTaxTable struct {
	Brackets []Bracket
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Defaults carries the legal constants used outside the tables.
type Defaults struct {
	DependentDeduction     decimal.Decimal
	MinimumWage            decimal.Decimal
	DaysPerMonth           int
	ExperienceLimitDays    int
	MonthlyHoursDivisor    decimal.Decimal
	UnservedNoticeCapRatio decimal.Decimal // share of net pay the deduction may consume
}
