/*
defaults.go - Rule table shipped with the engine (2025 tables)

PURPOSE:
  The reason catalog, category rule-sets and the 2025 INSS/IRRF tables.
  Deployments can replace the whole table through a YAML/JSON file
  (see factory/ruletable.go); this one is the fallback and the seed.

SEE ALSO:
  - types.go: field meanings
  - factory/ruletable.go: file representation
*/
package rules

import (
	"github.com/shopspring/decimal"
)

// DefaultVersion identifies the built-in table.
const DefaultVersion = "2025.1"

var defaultTable = MustNewTable(DefaultSpec())

// Default returns the built-in rule table.
func Default() *Table { return defaultTable }

// DefaultSpec returns the raw built-in configuration. Callers get a fresh copy.
func DefaultSpec() Spec {
	return Spec{
		Version:    DefaultVersion,
		Reasons:    defaultReasons(),
		Categories: defaultCategories(),
		SocialContribution: SocialContributionTable{
			Ceiling: dec("8157.41"),
			Brackets: []Bracket{
				{UpTo: upTo("1518.00"), Rate: dec("0.075")},
				{UpTo: upTo("2793.88"), Rate: dec("0.09")},
				{UpTo: upTo("4190.83"), Rate: dec("0.12")},
				{UpTo: upTo("8157.41"), Rate: dec("0.14")},
			},
		},
		IncomeTax: IncomeTaxTable{
			Brackets: []Bracket{
				{UpTo: upTo("2428.80"), Rate: decimal.Zero, Deduction: decimal.Zero},
				{UpTo: upTo("2826.65"), Rate: dec("0.075"), Deduction: dec("182.16")},
				{UpTo: upTo("3751.05"), Rate: dec("0.15"), Deduction: dec("394.16")},
				{UpTo: upTo("4664.68"), Rate: dec("0.225"), Deduction: dec("675.49")},
				{Rate: dec("0.275"), Deduction: dec("908.73")},
			},
		},
		Defaults: Defaults{
			DependentDeduction:     dec("189.59"),
			MinimumWage:            dec("1518.00"),
			DaysPerMonth:           30,
			ExperienceLimitDays:    90,
			MonthlyHoursDivisor:    decimal.NewFromInt(220),
			UnservedNoticeCapRatio: dec("0.70"),
		},
	}
}

func defaultReasons() []Reason {
	return []Reason{
		{Code: "01", Description: "Demitido COM justa causa", Category: CategoryJustCause},
		{Code: "02", Description: "Demitido SEM justa causa", Category: CategoryWithoutCause},
		{Code: "03", Description: "Rescisão indireta", Category: CategoryWithoutCause},
		{Code: "04", Description: "Pedido de demissão", Category: CategoryResignation},
		{Code: "08", Description: "Morte do empregado", Category: CategoryDeath},
		{Code: "10", Description: "Experiência antecipado pelo empregador", Category: CategoryFixedTermEarlyByEmployer},
		{Code: "11", Description: "Experiência antecipado pelo empregado", Category: CategoryFixedTermEarlyByEmployee},
		{Code: "12", Description: "Término do contrato de experiência", Category: CategoryFixedTermEnd},
		{Code: "22", Description: "Término do contrato por tempo determinado", Category: CategoryFixedTermEnd},
		{Code: "23", Description: "Antecipado pelo empregador (tempo determinado)", Category: CategoryFixedTermEarlyByEmployer},
		{Code: "24", Description: "Antecipado pelo empregado (tempo determinado)", Category: CategoryFixedTermEarlyByEmployee},
		{Code: "28", Description: "Culpa recíproca", Category: CategorySharedFault},
		{Code: "29", Description: "Extinção da empresa", Category: CategoryWithoutCause},
		{Code: "44", Description: "Rescisão por acordo entre as partes (484-A)", Category: CategoryMutualAgreement},
	}
}

func defaultCategories() []Category {
	// Every non-dismissal category pays the same four accruals; only the
	// notice, penalty and special flags differ.
	accruals := func(key CategoryKey, description string) Category {
		return Category{
			Key:                      key,
			Description:              description,
			PaysAccruedSalary:        true,
			PaysExpiredVacation:      true,
			PaysProportionalVacation: true,
			PaysThirteenthSalary:     true,
		}
	}

	justCause := Category{
		Key:                 CategoryJustCause,
		Description:         "Justa causa",
		PaysAccruedSalary:   true,
		PaysExpiredVacation: true,
	}

	withoutCause := accruals(CategoryWithoutCause, "Sem justa causa")
	withoutCause.PaysNotice = true
	withoutCause.ProjectsNotice = true
	withoutCause.FundPenaltyRate = dec("0.40")

	resignation := accruals(CategoryResignation, "Pedido de demissão")
	resignation.WithholdsUnservedNotice = true

	agreement := accruals(CategoryMutualAgreement, "Acordo 484-A")
	agreement.PaysNotice = true
	agreement.ProjectsNotice = true
	agreement.FundPenaltyRate = dec("0.20")
	agreement.NoticeFactor = dec("0.5")

	earlyByEmployer := accruals(CategoryFixedTermEarlyByEmployer, "Antecipado pelo empregador")
	earlyByEmployer.RequiresFixedTermEndDate = true

	sharedFault := accruals(CategorySharedFault, "Com redução de 50%")
	sharedFault.PaysNotice = true
	sharedFault.ProjectsNotice = true
	sharedFault.FundPenaltyRate = dec("0.20")
	sharedFault.ReductionFactor = dec("0.5")

	return []Category{
		justCause,
		withoutCause,
		resignation,
		agreement,
		accruals(CategoryDeath, "Morte do empregado"),
		accruals(CategoryFixedTermEnd, "Término de contrato a termo"),
		earlyByEmployer,
		accruals(CategoryFixedTermEarlyByEmployee, "Antecipado pelo empregado"),
		sharedFault,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func upTo(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
