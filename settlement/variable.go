package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Night hours are paid on the reduced 52.5-minute hour.
var (
	nightMinutes        = decimal.NewFromInt(60)
	reducedNightMinutes = decimal.RequireFromString("52.5")

	overtime50Factor  = decimal.RequireFromString("1.5")
	overtime100Factor = two
)

// variablePay appends the final month's cash-handling premium, overtime,
// night premium and both DSR tracks.
func (c *calculation) variablePay() {
	v := c.in.Variable

	cashHandling := c.in.BaseSalary.Mul(v.CashHandlingRate)
	if cashHandling.IsPositive() {
		c.items.add(LineItem{
			Code:      CodeCashHandling,
			Label:     fmt.Sprintf("Quebra de Caixa (%s%%)", percent(v.CashHandlingRate)),
			Amount:    cashHandling,
			Polarity:  Earning,
			Incidence: allTaxes,
			Detail: detail("Quebra de caixa sobre o salário base", "Salário Base × Percentual",
				nv("Salário Base", c.in.BaseSalary), nv("Percentual", v.CashHandlingRate)),
		})
	}

	overtime50 := c.overtime(v.Overtime50Hours, overtime50Factor)
	overtime100 := c.overtime(v.Overtime100Hours, overtime100Factor)
	if overtime50.IsPositive() {
		c.items.add(c.overtimeItem(CodeOvertime50, "50%", "1,5", v.Overtime50Hours, overtime50))
	}
	if overtime100.IsPositive() {
		c.items.add(c.overtimeItem(CodeOvertime100, "100%", "2,0", v.Overtime100Hours, overtime100))
	}
	overtime := overtime50.Add(overtime100)

	equivalentHours := v.NightHours.Mul(nightMinutes).Div(reducedNightMinutes)
	night := c.overtimeBase.Mul(v.NightPremiumRate).Mul(v.NightHours).Mul(nightMinutes).
		Div(c.hoursDivisor.Mul(reducedNightMinutes))
	if night.IsPositive() {
		c.items.add(LineItem{
			Code:      CodeNightPremium,
			Label:     fmt.Sprintf("Adicional Noturno %s%% (%sh)", percent(v.NightPremiumRate), v.NightHours),
			Amount:    night,
			Polarity:  Earning,
			Incidence: allTaxes,
			Detail: detail("Adicional noturno com hora reduzida", "Valor Hora × Percentual × Horas × 60/52,5",
				nv("Valor Hora", c.hourlyRate),
				nv("Percentual", v.NightPremiumRate),
				nv("Horas Trabalhadas", v.NightHours),
				nv("Horas Equivalentes", equivalentHours)),
		})
	}

	c.rest = RestPay{
		Overtime:       c.restPay(overtime.Add(night)),
		Commissions:    c.restPay(v.Commissions),
		WorkingDays:    v.RestWorkingDays,
		NonWorkingDays: v.RestNonWorkingDays,
	}
	c.rest.Total = c.rest.Overtime.Add(c.rest.Commissions)

	days := fmt.Sprintf("(%d úteis / %d não úteis)", v.RestWorkingDays, v.RestNonWorkingDays)
	if c.rest.Overtime.IsPositive() {
		c.items.add(LineItem{
			Code:      CodeRestPayOvertime,
			Label:     "DSR sobre Horas Extras " + days,
			Amount:    c.rest.Overtime,
			Polarity:  Earning,
			Incidence: allTaxes,
			Detail: detail("DSR sobre horas extras e adicional noturno", "(Horas Extras + Noturno) ÷ Dias Úteis × Dias Não Úteis",
				nv("Horas Extras", overtime),
				nv("Adicional Noturno", night),
				nv("Dias Úteis", count(v.RestWorkingDays)),
				nv("Dias Não Úteis", count(v.RestNonWorkingDays))),
		})
	}
	if c.rest.Commissions.IsPositive() {
		c.items.add(LineItem{
			Code:      CodeRestPayCommissions,
			Label:     "DSR sobre Comissões " + days,
			Amount:    c.rest.Commissions,
			Polarity:  Earning,
			Incidence: allTaxes,
			Detail: detail("DSR sobre comissões", "Comissões ÷ Dias Úteis × Dias Não Úteis",
				nv("Comissões", v.Commissions),
				nv("Dias Úteis", count(v.RestWorkingDays)),
				nv("Dias Não Úteis", count(v.RestNonWorkingDays))),
		})
	}

	c.variable = VariableTotals{
		Overtime:     overtime,
		NightPremium: night,
		Commissions:  v.Commissions,
		Total:        overtime.Add(v.Commissions).Add(night),
	}
}

// overtime returns overtimeBase / divisor * factor * hours.
func (c *calculation) overtime(hours, factor decimal.Decimal) decimal.Decimal {
	return c.overtimeBase.Mul(factor).Mul(hours).Div(c.hoursDivisor)
}

func (c *calculation) overtimeItem(code Code, rate, factor string, hours, amount decimal.Decimal) LineItem {
	return LineItem{
		Code:      code,
		Label:     fmt.Sprintf("Horas Extras %s (%sh)", rate, hours),
		Amount:    amount,
		Polarity:  Earning,
		Incidence: allTaxes,
		Detail: detail("Horas extras com adicional de "+rate, "(Base ÷ Horas Mensais) × "+factor+" × Quantidade",
			nv("Base HE", c.overtimeBase),
			nv("Divisor", c.hoursDivisor),
			nv("Valor Hora", c.hourlyRate),
			nv("Quantidade", hours)),
	}
}

// restPay spreads amount over the month's working days and pays it for each
// rest day. No working days means no rest pay.
func (c *calculation) restPay(amount decimal.Decimal) decimal.Decimal {
	v := c.in.Variable
	if v.RestWorkingDays <= 0 || v.RestNonWorkingDays <= 0 || !amount.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(count(v.RestNonWorkingDays)).Div(count(v.RestWorkingDays))
}

// premiums appends the fixed premiums that were part of the overtime base.
// Commissions only show up through their DSR.
func (c *calculation) premiums() {
	v := c.in.Variable
	for _, p := range []struct {
		code   Code
		label  string
		amount decimal.Decimal
	}{
		{CodeSeniorityBonus, "Adicional por Tempo de Serviço", v.SeniorityBonus},
		{CodeUnhealthyPremium, "Adicional de Insalubridade", v.UnhealthyPremium},
		{CodeHazardPremium, "Adicional de Periculosidade", v.HazardPremium},
		{CodeGratuities, "Gratificações", v.Gratuities},
	} {
		if p.amount.IsPositive() {
			c.items.add(LineItem{
				Code:      p.code,
				Label:     p.label,
				Amount:    p.amount,
				Polarity:  Earning,
				Incidence: allTaxes,
			})
		}
	}
}

// percent renders a fraction as a percentage without trailing zeros.
func percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).String()
}
