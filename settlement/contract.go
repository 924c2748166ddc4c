package settlement

import (
	"fmt"

	"github.com/warp/rescisao-engine/tenure"
)

// unservedNotice appends the deduction for notice days a resigning employee
// did not work. The amount may later be limited by the discount cap.
func (c *calculation) unservedNotice() {
	days := c.in.UnservedNoticeDays
	if !c.category.WithholdsUnservedNotice || days <= 0 {
		return
	}
	c.items.add(LineItem{
		Code:      CodeUnservedNotice,
		Label:     fmt.Sprintf("Desconto Aviso Não Cumprido (%d dias)", days),
		Amount:    c.daysOf(c.referencePay, days),
		Polarity:  Deduction,
		Incidence: noTaxes,
		Detail: detail("Aviso prévio não cumprido", "Remuneração ÷ 30 × Dias",
			nv("Remuneração", c.referencePay),
			nv("Dias", count(days))),
	})
}

// fixedTermIndemnity appends the art. 479 indemnity: half the pay the
// employee would have earned until the agreed contract end.
func (c *calculation) fixedTermIndemnity() {
	if !c.category.RequiresFixedTermEndDate || c.in.ContractEndDate == nil {
		return
	}
	remaining := tenure.RemainingDays(c.termination, *c.in.ContractEndDate)
	if remaining <= 0 {
		return
	}
	c.items.add(LineItem{
		Code:      CodeFixedTermIndemnity,
		Label:     fmt.Sprintf("Indenização Art. 479 (%d dias)", remaining),
		Amount:    c.daysOf(c.referencePay, remaining).Mul(half),
		Polarity:  Earning,
		Incidence: noTaxes,
		Detail: detail("Indenização por rescisão antecipada do contrato a termo", "Remuneração ÷ 30 × Dias Restantes × 50%",
			nv("Remuneração", c.referencePay),
			nv("Dias Restantes", count(remaining))),
	})
}
