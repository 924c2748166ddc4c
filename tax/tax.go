/*
Package tax implements the two payroll withholdings of a settlement.

SOCIAL CONTRIBUTION (INSS):
  Marginal schedule. The base is capped at the table ceiling, then each
  bracket taxes the slice of the base between the previous ceiling and its
  own, at its own rate. Bracket contributions are summed.

INCOME TAX (IRRF):
  Single-bracket schedule. The base is reduced by the social contribution and
  a fixed amount per dependent; the one bracket containing the adjusted base
  gives rate and deduction ("parcela a deduzir"):

      tax = max(0, adjusted * rate - deduction)

  The deductions are calibrated so the result is continuous (to the cent) at
  every bracket edge.

PRECISION:
  Exact decimal arithmetic, no intermediate rounding. Rounding is left to
  whoever renders the result.
*/
package tax

import (
	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/rules"
)

// SocialContribution computes INSS over base using the marginal table.
func SocialContribution(table rules.SocialContributionTable, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	remaining := decimal.Min(base, table.Ceiling)
	total := decimal.Zero
	floor := decimal.Zero

	for _, b := range table.Brackets {
		if !remaining.IsPositive() {
			break
		}
		slice := remaining
		if !b.Unbounded() {
			slice = decimal.Min(remaining, b.UpTo.Sub(floor))
			floor = *b.UpTo
		}
		if slice.IsPositive() {
			total = total.Add(slice.Mul(b.Rate))
			remaining = remaining.Sub(slice)
		}
	}
	return total
}

// IncomeTax computes IRRF over base after the social contribution and the
// dependent deduction have been taken out.
func IncomeTax(table rules.IncomeTaxTable, base decimal.Decimal, dependents int, contribution, perDependent decimal.Decimal) decimal.Decimal {
	adjusted := AdjustedIncomeTaxBase(base, dependents, contribution, perDependent)
	if !adjusted.IsPositive() {
		return decimal.Zero
	}
	for _, b := range table.Brackets {
		if b.Contains(adjusted) {
			return decimal.Max(decimal.Zero, adjusted.Mul(b.Rate).Sub(b.Deduction))
		}
	}
	return decimal.Zero
}

// AdjustedIncomeTaxBase is base - contribution - dependents*perDependent.
func AdjustedIncomeTaxBase(base decimal.Decimal, dependents int, contribution, perDependent decimal.Decimal) decimal.Decimal {
	if dependents < 0 {
		dependents = 0
	}
	return base.Sub(contribution).Sub(perDependent.Mul(decimal.NewFromInt(int64(dependents))))
}
