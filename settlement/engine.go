/*
engine.go - Engine and the computation pipeline

PIPELINE:
  Compute runs the entitlement steps in a fixed order; each step may append
  line items to the builder. The order is the order of the statement:

    1. accrued salary                 (accruals.go)
    2. final-month variable pay, DSR  (variable.go)
    3. itemized premiums              (variable.go)
    4. expired / proportional vacation, 13th salary
    5. indemnified notice and its reflexes
    6. 1/3 vacation bonus
    7. unserved-notice deduction, art. 479 indemnity  (contract.go)
    8. custom items                   (custom.go)
    9. FGTS penalty, withholdings, totals             (totals.go)
   10. discount cap                   (cap.go)
   11. advisories                     (advisories.go)

  Steps 1-8 only read the input and the category; nothing is mutated after it
  is appended. The cap never edits a line item in place: it produces a second
  item list and re-runs the totals over it.
*/
package settlement

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/rules"
	"github.com/warp/rescisao-engine/tenure"
)

// Engine computes settlements against one rule table. It is safe for
// concurrent use.
type Engine struct {
	table *rules.Table
}

// NewEngine returns an engine bound to table. A nil table means rules.Default().
func NewEngine(table *rules.Table) *Engine {
	if table == nil {
		table = rules.Default()
	}
	return &Engine{table: table}
}

// Table returns the rule table the engine computes with.
func (e *Engine) Table() *rules.Table { return e.table }

var defaultEngine = NewEngine(nil)

// Compute runs in against the built-in rule table.
func Compute(in CaseInput) (*Result, error) {
	return defaultEngine.Compute(in)
}

// Compute produces the itemized settlement for in.
//
// Errors:
//   - *UnknownReasonError: the reason code is not in the catalog
//   - *UnknownCategoryError: the reason points at a missing category
//   - *MissingContractEndDateError: the category needs ContractEndDate
func (e *Engine) Compute(in CaseInput) (*Result, error) {
	reason, category, err := e.table.Resolve(in.ReasonCode)
	if err != nil {
		return nil, err
	}
	if category.RequiresFixedTermEndDate && in.ContractEndDate == nil {
		return nil, &MissingContractEndDateError{Reason: reason.Code, Category: category.Key}
	}

	c := newCalculation(e.table, in, reason, category)

	c.accruedSalary()
	c.variablePay()
	c.premiums()
	c.expiredVacation()
	c.proportionalVacation()
	c.thirteenthSalary()
	c.notice()
	c.vacationBonus()
	c.unservedNotice()
	c.fixedTermIndemnity()
	c.customItems()
	c.fundPenalty()

	return c.result(), nil
}

// =============================================================================
// CALCULATION STATE
// =============================================================================

// calculation carries the derived quantities of one Compute call. It lives
// for the duration of the call and is never shared.
type calculation struct {
	in       CaseInput
	reason   rules.Reason
	category rules.Category
	defaults rules.Defaults
	table    *rules.Table

	admission   time.Time
	termination time.Time
	tenureDays  int
	years       int

	referencePay decimal.Decimal
	overtimeBase decimal.Decimal
	hoursDivisor decimal.Decimal
	hourlyRate   decimal.Decimal

	rest     RestPay
	variable VariableTotals

	noticeDays        Credit
	vacationCredits   Credit
	thirteenthCredits Credit

	// Vacation amounts that feed the 1/3 bonus.
	expiredVacationPaid      decimal.Decimal
	proportionalVacationPaid decimal.Decimal
	vacationOnNoticePaid     decimal.Decimal

	fundPenaltyAmount decimal.Decimal

	items itemList
}

func newCalculation(table *rules.Table, in CaseInput, reason rules.Reason, category rules.Category) *calculation {
	defaults := table.Defaults()
	admission := tenure.Date(in.AdmissionDate)
	termination := tenure.Date(in.TerminationDate)
	days := tenure.Days(admission, termination)

	divisor := in.MonthlyHours
	if !divisor.IsPositive() {
		divisor = defaults.MonthlyHoursDivisor
	}

	v := in.Variable
	overtimeBase := in.BaseSalary.
		Add(v.SeniorityBonus).
		Add(v.Commissions).
		Add(v.UnhealthyPremium).
		Add(v.Gratuities).
		Add(v.HazardPremium)

	noticeDays, noticeOverridden := resolveCount(in.Overrides.NoticeDays, tenure.NoticeDays(days))

	return &calculation{
		in:           in,
		reason:       reason,
		category:     category,
		defaults:     defaults,
		table:        table,
		admission:    admission,
		termination:  termination,
		tenureDays:   days,
		years:        tenure.CompletedYears(days),
		referencePay: in.BaseSalary.Add(in.AverageVariablePay),
		overtimeBase: overtimeBase,
		hoursDivisor: divisor,
		hourlyRate:   overtimeBase.Div(divisor),
		noticeDays: Credit{
			Computed:   tenure.NoticeDays(days),
			Used:       noticeDays,
			Overridden: noticeOverridden,
		},
		vacationCredits:   resolveCredit(in.Overrides.VacationCredits, tenure.VacationFraction(admission, termination)),
		thirteenthCredits: resolveCredit(in.Overrides.ThirteenthCredits, tenure.ThirteenthFraction(termination)),
	}
}

// daysOf returns amount/30 * days, multiplying first.
func (c *calculation) daysOf(amount decimal.Decimal, days int) decimal.Decimal {
	return amount.Mul(count(days)).Div(count(c.defaults.DaysPerMonth))
}

// twelfthsOf returns amount/12 * credits, multiplying first.
func twelfthsOf(amount decimal.Decimal, credits int) decimal.Decimal {
	return amount.Mul(count(credits)).Div(twelve)
}

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	three   = decimal.NewFromInt(3)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

func count(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// =============================================================================
// RESULT
// =============================================================================

func (c *calculation) result() *Result {
	candidate := c.items.snapshot()
	totals := summarize(c.table, candidate, c.in.Dependents)

	items, totals, capRecord := c.applyDiscountCap(candidate, totals)

	r := &Result{
		RuleTableVersion: c.table.Version(),
		Reason:           c.reason,
		Category:         c.category.Key,

		Items: items,

		GrossEarnings:   totals.grossEarnings,
		GrossDeductions: totals.grossDeductions,
		Net:             totals.net,

		SocialContribution:     totals.socialContribution,
		SocialContributionBase: totals.socialContributionBase,
		IncomeTax:              totals.incomeTax,
		IncomeTaxBase:          totals.incomeTaxBase,
		FundPenalty:            c.fundPenaltyAmount,

		NoticeDays:        c.noticeDays,
		VacationCredits:   c.vacationCredits,
		ThirteenthCredits: c.thirteenthCredits,

		CompletedYears: c.years,
		TenureDays:     c.tenureDays,

		ReferencePay: c.referencePay,
		OvertimeBase: c.overtimeBase,
		HourlyRate:   c.hourlyRate,

		RestPay:  c.rest,
		Variable: c.variable,

		DiscountCap: capRecord,
	}
	r.Advisories = c.advisories(capRecord)
	return r
}
