/*
Package settlement computes a Brazilian employment-termination settlement
("rescisão trabalhista").

PURPOSE:
  Given one CaseInput (salary, dates, reason code, variable pay, overrides),
  produce an itemized Result: every payable or deductible line item ("verba")
  with its tax incidence, the INSS and IRRF withholdings, the FGTS penalty,
  net pay, and advisory notes.

KEY CONCEPTS IN THIS FILE (types.go):
  - CaseInput: the single input record, including override fields
  - LineItem: one immutable earning or deduction
  - Result: the immutable output of one computation
  - Credit: computed vs used value of an overridable count

OVERRIDES:
  Override fields are pointers. nil or negative means "use the computed
  value"; anything else replaces the computed quantity and is recorded next
  to it so the change stays auditable.

PURITY:
  Compute holds no state between calls. The same input always yields an
  identical Result; the only shared data is the read-only rules.Table.

SEE ALSO:
  - engine.go: Engine and the computation pipeline
  - cap.go: unserved-notice discount cap
  - rules/: reason catalog, category rule-sets, tax tables
*/
package settlement

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/rules"
)

// =============================================================================
// INPUT ENUMERATIONS
// =============================================================================

// ContractType is the kind of employment contract.
type ContractType string

const (
	ContractIndeterminate ContractType = "INDETERMINADO"
	ContractFixedTerm     ContractType = "DETERMINADO"
	ContractExperience    ContractType = "EXPERIENCIA"
)

// NoticeModality is how the notice period is handled.
type NoticeModality string

const (
	NoticeWorked      NoticeModality = "TRABALHADO"
	NoticeIndemnified NoticeModality = "INDENIZADO"
	NoticeWaived      NoticeModality = "AUSENCIA_DISPENSA"
)

// Polarity tells earnings ("proventos") from deductions ("descontos").
type Polarity string

const (
	Earning   Polarity = "provento"
	Deduction Polarity = "desconto"
)

// =============================================================================
// CASE INPUT
// =============================================================================

// CaseInput is everything the engine needs for one settlement.
type CaseInput struct {
	BaseSalary      decimal.Decimal
	AdmissionDate   time.Time
	TerminationDate time.Time
	ReasonCode      rules.ReasonCode
	ContractType    ContractType
	NoticeModality  NoticeModality

	// DaysWorked in the final, partial month.
	DaysWorked             int
	ExpiredVacationPeriods int
	FundBalance            decimal.Decimal // saldo FGTS
	Dependents             int

	// AverageVariablePay is the twelve-month average added to the base salary
	// to form the reference pay of most accrual formulas.
	AverageVariablePay decimal.Decimal

	// MonthlyHours is the hourly divisor (220, 110, ...). Zero uses the table default.
	MonthlyHours decimal.Decimal

	// UnservedNoticeDays is withheld in a resignation without served notice.
	UnservedNoticeDays int

	// ContractEndDate is the agreed end of a fixed-term contract.
	ContractEndDate *time.Time

	Variable  VariablePay
	Overrides Overrides

	CustomItems []CustomItem

	// AssistanceSalary is the "salário assistencial" base for custom items.
	// nil means the base salary.
	AssistanceSalary *decimal.Decimal
}

// VariablePay carries the final month's premiums and hour counts.
type VariablePay struct {
	SeniorityBonus   decimal.Decimal // ATS
	Commissions      decimal.Decimal
	UnhealthyPremium decimal.Decimal // insalubridade
	Gratuities       decimal.Decimal
	HazardPremium    decimal.Decimal // periculosidade

	// CashHandlingRate is a fraction of the base salary (0.10 = 10%).
	CashHandlingRate decimal.Decimal

	Overtime50Hours  decimal.Decimal
	Overtime100Hours decimal.Decimal

	NightHours       decimal.Decimal
	NightPremiumRate decimal.Decimal // fraction, 0.20 = 20%

	// Reference days of the month for the paid weekly rest (DSR).
	RestWorkingDays    int
	RestNonWorkingDays int
}

// Overrides replace computed quantities. nil or negative values are ignored.
type Overrides struct {
	NoticeDays          *int
	NoticeJustification string

	VacationCredits   *int // avos de férias, 0-12
	ThirteenthCredits *int // avos de 13º, 0-12

	ExpiredVacation      *decimal.Decimal
	ProportionalVacation *decimal.Decimal
	ThirteenthSalary     *decimal.Decimal
}

// =============================================================================
// CUSTOM (NON-STATUTORY) ITEMS
// =============================================================================

// CustomKind selects between a fixed amount and a percentage of a base.
type CustomKind string

const (
	CustomFixed   CustomKind = "fixo"
	CustomPercent CustomKind = "percentual"
)

// CustomBase selects what a percentage item is computed on.
type CustomBase string

const (
	BaseReferencePay CustomBase = "remuneracao"
	BaseSalary       CustomBase = "salarioBase"
	BaseMinimumWage  CustomBase = "salarioMinimo"
	BaseAssistance   CustomBase = "assistencial"
	BaseCustom       CustomBase = "custom"
)

// CustomItem is a caller-defined earning or deduction with no tax incidence
// (allowances, loans, alimony, transport voucher share, ...).
type CustomItem struct {
	ID          string
	Description string
	Polarity    Polarity
	Kind        CustomKind
	// Value is the amount for fixed items and the percentage (6 = 6%) otherwise.
	Value      decimal.Decimal
	Base       CustomBase
	CustomBase decimal.Decimal
}

// =============================================================================
// OUTPUT
// =============================================================================

// Code identifies a line item kind ("rubrica").
type Code string

const (
	CodeAccruedSalary        Code = "SALDO_SALARIO"
	CodeCashHandling         Code = "QUEBRA_CAIXA"
	CodeOvertime50           Code = "HORAS_EXTRAS_50"
	CodeOvertime100          Code = "HORAS_EXTRAS_100"
	CodeNightPremium         Code = "ADICIONAL_NOTURNO"
	CodeRestPayOvertime      Code = "DSR_HORAS_EXTRAS"
	CodeRestPayCommissions   Code = "DSR_COMISSOES"
	CodeSeniorityBonus       Code = "ATS"
	CodeUnhealthyPremium     Code = "INSALUBRIDADE"
	CodeHazardPremium        Code = "PERICULOSIDADE"
	CodeGratuities           Code = "GRATIFICACOES"
	CodeExpiredVacation      Code = "FERIAS_VENCIDAS"
	CodeProportionalVacation Code = "FERIAS_PROP"
	CodeThirteenthSalary     Code = "DECIMO_TERCEIRO"
	CodeIndemnifiedNotice    Code = "AVISO_PREVIO_INDENIZADO"
	CodeThirteenthOnNotice   Code = "DECIMO_TERCEIRO_PROJECAO_AVISO"
	CodeVacationOnNotice     Code = "FERIAS_PROJECAO_AVISO"
	CodeVacationBonus        Code = "TERCO_FERIAS"
	CodeUnservedNotice       Code = "DESCONTO_AVISO_NAO_CUMPRIDO"
	CodeFixedTermIndemnity   Code = "INDENIZACAO_ART_479"
	CodeCustomEarning        Code = "PROVENTO_NAO_TRIBUTAVEL"
	CodeCustomDeduction      Code = "DESCONTO_NAO_TRIBUTAVEL"
	CodeFundPenalty          Code = "MULTA_FGTS"
)

// Incidence flags which withholdings a line item is subject to.
type Incidence struct {
	SocialContribution bool // INSS
	IncomeTax          bool // IRRF
	Fund               bool // FGTS deposit
}

var (
	allTaxes = Incidence{SocialContribution: true, IncomeTax: true, Fund: true}
	noTaxes  = Incidence{}
	fundOnly = Incidence{Fund: true}
)

// NamedValue is one intermediate figure of a Detail.
type NamedValue struct {
	Name  string
	Value decimal.Decimal
}

// Detail explains how a line item was derived.
type Detail struct {
	Label   string
	Formula string
	Values  []NamedValue
}

// LineItem is one settlement entry. It is never modified after creation.
type LineItem struct {
	Code      Code
	Ref       string // caller id for custom items
	Label     string
	Amount    decimal.Decimal
	Polarity  Polarity
	Incidence Incidence

	// Computed is the engine's own figure when it may differ from Amount
	// (overrides, discount cap). Overridden marks a caller override.
	Computed   *decimal.Decimal
	Overridden bool

	Detail *Detail
	Note   string
}

// Credit is an overridable count: notice days or fractional credits.
type Credit struct {
	Computed   int
	Used       int
	Overridden bool
}

// RestPay is the paid weekly rest (DSR) attributable to variable pay, kept
// on two tracks because overtime and commissions are audited separately.
type RestPay struct {
	Overtime       decimal.Decimal
	Commissions    decimal.Decimal
	Total          decimal.Decimal
	WorkingDays    int
	NonWorkingDays int
}

// VariableTotals summarizes the final month's variable pay.
type VariableTotals struct {
	Overtime     decimal.Decimal
	NightPremium decimal.Decimal
	Commissions  decimal.Decimal
	Total        decimal.Decimal
}

// DiscountCap records the unserved-notice cap pass.
type DiscountCap struct {
	Checked            bool
	Applied            bool
	Requested          decimal.Decimal
	Ceiling            decimal.Decimal
	NetBeforeDeduction decimal.Decimal
}

// Advisory is a note for whoever reviews the settlement.
type Advisory struct {
	Code    string
	Message string
}

// Result is the immutable output of one computation.
type Result struct {
	RuleTableVersion string
	Reason           rules.Reason
	Category         rules.CategoryKey

	Items []LineItem

	GrossEarnings   decimal.Decimal // includes the FGTS penalty
	GrossDeductions decimal.Decimal // includes INSS and IRRF
	Net             decimal.Decimal

	SocialContribution     decimal.Decimal
	SocialContributionBase decimal.Decimal
	IncomeTax              decimal.Decimal
	IncomeTaxBase          decimal.Decimal
	FundPenalty            decimal.Decimal

	NoticeDays        Credit
	VacationCredits   Credit
	ThirteenthCredits Credit

	CompletedYears int
	TenureDays     int

	ReferencePay decimal.Decimal
	OvertimeBase decimal.Decimal
	HourlyRate   decimal.Decimal

	RestPay  RestPay
	Variable VariableTotals

	DiscountCap DiscountCap
	Advisories  []Advisory
}

// Item returns the first line item with code, if any.
func (r *Result) Item(code Code) (LineItem, bool) {
	for _, it := range r.Items {
		if it.Code == code {
			return it, true
		}
	}
	return LineItem{}, false
}
