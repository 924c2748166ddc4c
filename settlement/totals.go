package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/rules"
	"github.com/warp/rescisao-engine/tax"
)

// fundPenalty appends the FGTS termination penalty as an untaxed earning.
func (c *calculation) fundPenalty() {
	c.fundPenaltyAmount = c.in.FundBalance.Mul(c.category.FundPenaltyRate)
	if !c.fundPenaltyAmount.IsPositive() {
		c.fundPenaltyAmount = decimal.Zero
		return
	}
	c.items.add(LineItem{
		Code:      CodeFundPenalty,
		Label:     fmt.Sprintf("Multa FGTS (%s%%)", percent(c.category.FundPenaltyRate)),
		Amount:    c.fundPenaltyAmount,
		Polarity:  Earning,
		Incidence: noTaxes,
		Detail: detail("Multa rescisória sobre o saldo do FGTS", "Saldo FGTS × Percentual",
			nv("Saldo FGTS", c.in.FundBalance),
			nv("Percentual", c.category.FundPenaltyRate)),
	})
}

// totals are the aggregates of one item list.
type totals struct {
	grossEarnings   decimal.Decimal
	grossDeductions decimal.Decimal
	net             decimal.Decimal

	socialContributionBase decimal.Decimal
	socialContribution     decimal.Decimal
	incomeTaxBase          decimal.Decimal
	incomeTax              decimal.Decimal
}

// summarize withholds INSS and IRRF over the incidence bases of items and
// aggregates them. Deductions never reduce a tax base.
func summarize(table *rules.Table, items []LineItem, dependents int) totals {
	var t totals
	deductions := decimal.Zero
	for _, it := range items {
		if it.Polarity == Deduction {
			deductions = deductions.Add(it.Amount)
			continue
		}
		t.grossEarnings = t.grossEarnings.Add(it.Amount)
		if it.Incidence.SocialContribution {
			t.socialContributionBase = t.socialContributionBase.Add(it.Amount)
		}
		if it.Incidence.IncomeTax {
			t.incomeTaxBase = t.incomeTaxBase.Add(it.Amount)
		}
	}

	t.socialContribution = tax.SocialContribution(table.SocialContribution(), t.socialContributionBase)
	t.incomeTax = tax.IncomeTax(table.IncomeTax(), t.incomeTaxBase, dependents,
		t.socialContribution, table.Defaults().DependentDeduction)

	t.grossDeductions = deductions.Add(t.socialContribution).Add(t.incomeTax)
	t.net = t.grossEarnings.Sub(t.grossDeductions)
	return t
}
