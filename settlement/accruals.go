package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// accruedSalary appends the pay for the days worked in the final month.
func (c *calculation) accruedSalary() {
	if !c.category.PaysAccruedSalary {
		return
	}
	c.items.add(LineItem{
		Code:      CodeAccruedSalary,
		Label:     fmt.Sprintf("Saldo de Salário (%d dias)", c.in.DaysWorked),
		Amount:    c.daysOf(c.referencePay, c.in.DaysWorked),
		Polarity:  Earning,
		Incidence: allTaxes,
		Detail: detail("Saldo de salário", "Remuneração ÷ 30 × Dias Trabalhados",
			nv("Remuneração", c.referencePay),
			nv("Dias Trabalhados", count(c.in.DaysWorked))),
	})
}

// expiredVacation appends one month of reference pay per expired period.
func (c *calculation) expiredVacation() {
	periods := c.in.ExpiredVacationPeriods
	if !c.category.PaysExpiredVacation || periods <= 0 {
		return
	}
	computed := c.referencePay.Mul(count(periods))
	amount, overridden := resolveAmount(c.in.Overrides.ExpiredVacation, computed)
	c.expiredVacationPaid = amount

	label := fmt.Sprintf("Férias Vencidas (%d período)", periods)
	if periods > 1 {
		label = fmt.Sprintf("Férias Vencidas (%d períodos)", periods)
	}
	c.items.add(LineItem{
		Code:       CodeExpiredVacation,
		Label:      label,
		Amount:     amount,
		Polarity:   Earning,
		Incidence:  noTaxes,
		Computed:   decimalPtr(computed),
		Overridden: overridden,
	})
}

// proportionalVacation appends the vacation twelfths of the current period.
// The category reduction applies to the computed path; a monetary override
// is taken as final.
func (c *calculation) proportionalVacation() {
	override := c.in.Overrides.ProportionalVacation
	hasOverride := override != nil && !override.IsNegative()
	if !c.category.PaysProportionalVacation || (c.vacationCredits.Used <= 0 && !hasOverride) {
		return
	}
	reduction := c.category.ReductionMultiplier()
	computed := twelfthsOf(c.referencePay, c.vacationCredits.Computed).Mul(reduction)
	withCredits := twelfthsOf(c.referencePay, c.vacationCredits.Used).Mul(reduction)
	amount, overridden := resolveAmount(override, withCredits)
	c.proportionalVacationPaid = amount

	c.items.add(LineItem{
		Code:       CodeProportionalVacation,
		Label:      c.creditLabel("Férias Proporcionais", c.vacationCredits),
		Amount:     amount,
		Polarity:   Earning,
		Incidence:  noTaxes,
		Computed:   decimalPtr(computed),
		Overridden: overridden || c.vacationCredits.Overridden,
		Detail:     c.twelfthsDetail("Férias proporcionais", c.vacationCredits, reduction),
	})
}

// thirteenthSalary appends the 13th-salary twelfths of the calendar year.
func (c *calculation) thirteenthSalary() {
	if !c.category.PaysThirteenthSalary {
		return
	}
	reduction := c.category.ReductionMultiplier()
	computed := twelfthsOf(c.referencePay, c.thirteenthCredits.Computed).Mul(reduction)
	withCredits := twelfthsOf(c.referencePay, c.thirteenthCredits.Used).Mul(reduction)
	amount, overridden := resolveAmount(c.in.Overrides.ThirteenthSalary, withCredits)

	c.items.add(LineItem{
		Code:       CodeThirteenthSalary,
		Label:      c.creditLabel("13º Salário Proporcional", c.thirteenthCredits),
		Amount:     amount,
		Polarity:   Earning,
		Incidence:  allTaxes,
		Computed:   decimalPtr(computed),
		Overridden: overridden || c.thirteenthCredits.Overridden,
		Detail:     c.twelfthsDetail("13º salário proporcional", c.thirteenthCredits, reduction),
	})
}

func (c *calculation) creditLabel(name string, credit Credit) string {
	label := fmt.Sprintf("%s (%d/12)", name, credit.Used)
	if c.category.IsReduced() {
		label += " - redução " + percent(one.Sub(c.category.ReductionMultiplier())) + "%"
	}
	if credit.Overridden {
		label += " - avos editado"
	}
	return label
}

func (c *calculation) twelfthsDetail(label string, credit Credit, reduction decimal.Decimal) *Detail {
	return detail(label, "Remuneração ÷ 12 × Avos × Fator de Redução",
		nv("Remuneração", c.referencePay),
		nv("Avos Calculados", count(credit.Computed)),
		nv("Avos Utilizados", count(credit.Used)),
		nv("Fator de Redução", reduction))
}

// notice appends the indemnified notice and, after a full year of service,
// one extra twelfth of 13th salary and of vacation projected by the notice.
func (c *calculation) notice() {
	if !c.category.PaysNotice || c.in.NoticeModality != NoticeIndemnified {
		return
	}
	factor := c.category.NoticeMultiplier()
	amount := c.daysOf(c.referencePay, c.noticeDays.Used).Mul(factor)

	label := fmt.Sprintf("Aviso Prévio Indenizado (%d dias", c.noticeDays.Used)
	if factor.LessThan(one) {
		label += " - " + percent(factor) + "%"
	}
	if c.noticeDays.Overridden {
		label += " - editado"
	}
	label += ")"

	c.items.add(LineItem{
		Code:       CodeIndemnifiedNotice,
		Label:      label,
		Amount:     amount,
		Polarity:   Earning,
		Incidence:  fundOnly,
		Overridden: c.noticeDays.Overridden,
		Detail: detail("Aviso prévio indenizado", "Remuneração ÷ 30 × Dias de Aviso × Fator",
			nv("Remuneração", c.referencePay),
			nv("Dias Calculados", count(c.noticeDays.Computed)),
			nv("Dias Utilizados", count(c.noticeDays.Used)),
			nv("Anos de Serviço", count(c.years)),
			nv("Fator", factor)),
	})

	if !c.category.ProjectsNotice || c.years < 1 {
		return
	}
	projected := twelfthsOf(c.referencePay, 1)
	c.items.add(LineItem{
		Code:      CodeThirteenthOnNotice,
		Label:     "13º Indenizado por Projeção do Aviso (1/12)",
		Amount:    projected,
		Polarity:  Earning,
		Incidence: allTaxes,
	})
	c.vacationOnNoticePaid = projected
	c.items.add(LineItem{
		Code:      CodeVacationOnNotice,
		Label:     "Férias Indenizadas por Projeção do Aviso (1/12)",
		Amount:    projected,
		Polarity:  Earning,
		Incidence: noTaxes,
	})
}

// vacationBonus appends one third of every vacation amount paid, on a single
// combined base.
func (c *calculation) vacationBonus() {
	base := c.expiredVacationPaid.Add(c.proportionalVacationPaid).Add(c.vacationOnNoticePaid)
	if !base.IsPositive() {
		return
	}
	c.items.add(LineItem{
		Code:      CodeVacationBonus,
		Label:     "1/3 Constitucional de Férias",
		Amount:    base.Div(three),
		Polarity:  Earning,
		Incidence: noTaxes,
		Detail: detail("1/3 constitucional sobre o total de férias", "(Vencidas + Proporcionais + Projeção do Aviso) ÷ 3",
			nv("Férias Vencidas", c.expiredVacationPaid),
			nv("Férias Proporcionais", c.proportionalVacationPaid),
			nv("Férias Projeção Aviso", c.vacationOnNoticePaid),
			nv("Base Total", base)),
	})
}
