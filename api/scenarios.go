/*
scenarios.go - Canned demo cases

PURPOSE:
  Provides ready-made settlement inputs that exercise the main rules of the
  engine, so a front end or a reviewer can see a complete statement without
  typing a case. Each scenario is a plain settlement.CaseInput run against
  the active rule table.

AVAILABLE SCENARIOS:
  sem-justa-causa:       Dismissal without cause, indemnified notice, 40% FGTS
  pedido-demissao:       Resignation with unserved notice clamped to 70% of net
  termino-antecipado:    Early fixed-term termination missing the end date (400)
  contrato-experiencia:  Early end of an experience contract, art. 479
  culpa-reciproca:       Shared fault, proportional accruals halved
  acordo-484a:           Mutual agreement, half notice and 20% FGTS
  horas-extras:          Overtime, night premium and commissions with DSR

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/pedido-demissao/run

ADDING NEW SCENARIOS:
  Append to 'scenarios'. IDs are URL segments: lowercase, hyphenated.

SEE ALSO:
  - handlers.go: ListScenarios, RunScenario
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/settlement"
)

type scenario struct {
	ID          string
	Name        string
	Description string
	Input       settlement.CaseInput
}

var scenarios = []scenario{
	{
		ID:          "sem-justa-causa",
		Name:        "Demissão sem justa causa",
		Description: "R$ 3.000,00, 400 dias de vínculo, aviso indenizado de 30 dias e multa de 40% do FGTS",
		Input: settlement.CaseInput{
			BaseSalary:      dec("3000"),
			AdmissionDate:   day(2024, time.January, 1),
			TerminationDate: day(2025, time.February, 3),
			ReasonCode:      "02",
			ContractType:    settlement.ContractIndeterminate,
			NoticeModality:  settlement.NoticeIndemnified,
			DaysWorked:      3,
			FundBalance:     dec("5000"),
		},
	},
	{
		ID:          "pedido-demissao",
		Name:        "Pedido de demissão com aviso não cumprido",
		Description: "Desconto de 30 dias de aviso limitado a 70% do líquido",
		Input: settlement.CaseInput{
			BaseSalary:         dec("2000"),
			AdmissionDate:      day(2024, time.March, 10),
			TerminationDate:    day(2025, time.February, 28),
			ReasonCode:         "04",
			ContractType:       settlement.ContractIndeterminate,
			NoticeModality:     settlement.NoticeWorked,
			UnservedNoticeDays: 30,
			Overrides: settlement.Overrides{
				VacationCredits:  intPtr(0),
				ThirteenthSalary: decPtr("0"),
			},
			CustomItems: []settlement.CustomItem{
				{
					ID:          "abono",
					Description: "Abono indenizatório",
					Polarity:    settlement.Earning,
					Kind:        settlement.CustomFixed,
					Value:       dec("2200"),
				},
			},
		},
	},
	{
		ID:          "termino-antecipado",
		Name:        "Término antecipado sem data final",
		Description: "Rescisão antecipada pelo empregador sem a data final do contrato: a entrada é rejeitada",
		Input: settlement.CaseInput{
			BaseSalary:      dec("2500"),
			AdmissionDate:   day(2025, time.January, 6),
			TerminationDate: day(2025, time.March, 3),
			ReasonCode:      "10",
			ContractType:    settlement.ContractFixedTerm,
			NoticeModality:  settlement.NoticeWaived,
			DaysWorked:      3,
		},
	},
	{
		ID:          "contrato-experiencia",
		Name:        "Experiência encerrada antes do prazo",
		Description: "Indenização do art. 479: metade da remuneração dos dias restantes",
		Input: settlement.CaseInput{
			BaseSalary:      dec("3000"),
			AdmissionDate:   day(2025, time.January, 2),
			TerminationDate: day(2025, time.February, 1),
			ReasonCode:      "10",
			ContractType:    settlement.ContractExperience,
			NoticeModality:  settlement.NoticeWaived,
			DaysWorked:      1,
			FundBalance:     dec("240"),
			ContractEndDate: datePtr(day(2025, time.April, 1)),
		},
	},
	{
		ID:          "culpa-reciproca",
		Name:        "Culpa recíproca",
		Description: "Férias e 13º proporcionais pela metade e multa de 20% do FGTS",
		Input: settlement.CaseInput{
			BaseSalary:      dec("3000"),
			AdmissionDate:   day(2024, time.January, 1),
			TerminationDate: day(2025, time.February, 3),
			ReasonCode:      "28",
			ContractType:    settlement.ContractIndeterminate,
			NoticeModality:  settlement.NoticeIndemnified,
			DaysWorked:      3,
			FundBalance:     dec("5000"),
		},
	},
	{
		ID:          "acordo-484a",
		Name:        "Acordo (art. 484-A)",
		Description: "Metade do aviso indenizado e multa de 20% do FGTS",
		Input: settlement.CaseInput{
			BaseSalary:      dec("3000"),
			AdmissionDate:   day(2024, time.January, 1),
			TerminationDate: day(2025, time.February, 3),
			ReasonCode:      "44",
			ContractType:    settlement.ContractIndeterminate,
			NoticeModality:  settlement.NoticeIndemnified,
			DaysWorked:      3,
			FundBalance:     dec("5000"),
		},
	},
	{
		ID:          "horas-extras",
		Name:        "Horas extras e comissões",
		Description: "Horas extras a 50% e 100%, adicional noturno reduzido e DSR em duas bases",
		Input: settlement.CaseInput{
			BaseSalary:      dec("1700"),
			AdmissionDate:   day(2022, time.May, 16),
			TerminationDate: day(2025, time.June, 20),
			ReasonCode:      "02",
			ContractType:    settlement.ContractIndeterminate,
			NoticeModality:  settlement.NoticeIndemnified,
			DaysWorked:      20,
			FundBalance:     dec("8000"),
			MonthlyHours:    dec("220"),
			Dependents:      1,
			Variable: settlement.VariablePay{
				Commissions:        dec("500"),
				Overtime50Hours:    dec("10"),
				Overtime100Hours:   dec("5"),
				NightHours:         dec("7"),
				NightPremiumRate:   dec("0.20"),
				RestWorkingDays:    25,
				RestNonWorkingDays: 5,
			},
		},
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}
