package settlement

import "github.com/shopspring/decimal"

// customItems appends the caller-defined earnings and deductions. They carry
// no tax incidence; items that resolve to zero or less are dropped.
func (c *calculation) customItems() {
	for _, ci := range c.in.CustomItems {
		amount := ci.Value
		var base decimal.Decimal
		if ci.Kind == CustomPercent {
			base = c.customBase(ci)
			amount = base.Mul(ci.Value).Div(hundred)
		}
		if !amount.IsPositive() {
			continue
		}

		item := LineItem{
			Code:      CodeCustomEarning,
			Ref:       ci.ID,
			Label:     ci.Description,
			Amount:    amount,
			Polarity:  Earning,
			Incidence: noTaxes,
		}
		if ci.Polarity == Deduction {
			item.Code = CodeCustomDeduction
			item.Polarity = Deduction
		}
		if ci.Kind == CustomPercent {
			item.Detail = detail(ci.Description, "Base × Percentual ÷ 100",
				nv("Base", base), nv("Percentual", ci.Value))
		}
		c.items.add(item)
	}
}

// customBase resolves the base of a percentage item. Unknown bases fall back
// to the reference pay.
func (c *calculation) customBase(ci CustomItem) decimal.Decimal {
	switch ci.Base {
	case BaseSalary:
		return c.in.BaseSalary
	case BaseMinimumWage:
		return c.defaults.MinimumWage
	case BaseAssistance:
		if c.in.AssistanceSalary != nil {
			return *c.in.AssistanceSalary
		}
		return c.in.BaseSalary
	case BaseCustom:
		return ci.CustomBase
	default:
		return c.referencePay
	}
}
