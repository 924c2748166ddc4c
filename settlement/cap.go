/*
cap.go - Unserved-notice discount cap

RULE:
  The deduction for unserved notice may not exceed a fixed share (70%) of the
  net pay the employee would receive without it:

      netBefore = net + deduction
      ceiling   = max(0, ratio * netBefore)

  When the deduction exceeds the ceiling it is replaced by the ceiling, so the
  final net is exactly (1 - ratio) * netBefore.

PASSES:
  The check runs over the candidate item list and its totals. A violation
  produces a second item list, with the deduction replaced by a limited copy,
  and a second summary over it. Neither pass mutates the other's data. The
  ceiling depends only on netBefore, which the clamp cannot change, so one
  correction is final.
*/
package settlement

import (
	"github.com/shopspring/decimal"
)

func (c *calculation) applyDiscountCap(items []LineItem, t totals) ([]LineItem, totals, DiscountCap) {
	idx := -1
	for i, it := range items {
		if it.Code == CodeUnservedNotice {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items, t, DiscountCap{}
	}

	requested := items[idx].Amount
	netBefore := t.net.Add(requested)
	record := DiscountCap{
		Checked:            true,
		Requested:          requested,
		Ceiling:            capCeiling(netBefore, c.defaults.UnservedNoticeCapRatio),
		NetBeforeDeduction: netBefore,
	}
	if requested.LessThanOrEqual(record.Ceiling) {
		return items, t, record
	}

	limited := items[idx]
	limited.Amount = record.Ceiling
	limited.Computed = decimalPtr(requested)
	limited.Note = "Desconto limitado a " + percent(c.defaults.UnservedNoticeCapRatio) + "% do líquido"

	corrected := append([]LineItem(nil), items...)
	corrected[idx] = limited
	record.Applied = true

	return corrected, summarize(c.table, corrected, c.in.Dependents), record
}

// capCeiling returns ratio * netBefore, floored at zero.
func capCeiling(netBefore, ratio decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, netBefore.Mul(ratio))
}
