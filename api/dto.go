/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the settlement domain model from the external API contract:
  - Dates travel as "YYYY-MM-DD" strings
  - Money is accepted as JSON numbers or strings (decimal.Decimal)
  - Money is rendered with two decimals as strings, so clients never see
    binary floating point

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Settlement:
    SettlementRequest (and nested Request types), CalculationResponse,
    SettlementDTO, LineItemDTO

  Catalog:
    ReasonDTO, CategoryDTO, TaxTablesDTO, RuleTableDTO

  Scenarios:
    ScenarioDTO

VALIDATION:
  Date parsing happens in toCaseInput. Domain validation (reason code,
  mandatory contract end date) stays in the settlement engine.

SEE ALSO:
  - handlers.go: Uses these types
  - settlement/types.go: CaseInput and Result
*/
package api

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/rescisao-engine/rules"
	"github.com/warp/rescisao-engine/settlement"
)

const dateLayout = "2006-01-02"

// =============================================================================
// SETTLEMENT REQUEST
// =============================================================================

// SettlementRequest is the body of POST /api/settlements.
type SettlementRequest struct {
	BaseSalary             decimal.Decimal  `json:"base_salary"`
	AdmissionDate          string           `json:"admission_date"`
	TerminationDate        string           `json:"termination_date"`
	ReasonCode             string           `json:"reason_code"`
	ContractType           string           `json:"contract_type,omitempty"`
	NoticeModality         string           `json:"notice_modality,omitempty"`
	DaysWorked             int              `json:"days_worked"`
	ExpiredVacationPeriods int              `json:"expired_vacation_periods,omitempty"`
	FundBalance            decimal.Decimal  `json:"fund_balance"`
	Dependents             int              `json:"dependents,omitempty"`
	AverageVariablePay     decimal.Decimal  `json:"average_variable_pay"`
	MonthlyHours           decimal.Decimal  `json:"monthly_hours"`
	UnservedNoticeDays     int              `json:"unserved_notice_days,omitempty"`
	ContractEndDate        string           `json:"contract_end_date,omitempty"`
	AssistanceSalary       *decimal.Decimal `json:"assistance_salary,omitempty"`

	Variable    VariablePayRequest  `json:"variable"`
	Overrides   OverridesRequest    `json:"overrides"`
	CustomItems []CustomItemRequest `json:"custom_items,omitempty"`
}

// VariablePayRequest carries the final month's premiums and hours.
type VariablePayRequest struct {
	SeniorityBonus     decimal.Decimal `json:"seniority_bonus"`
	Commissions        decimal.Decimal `json:"commissions"`
	UnhealthyPremium   decimal.Decimal `json:"unhealthy_premium"`
	Gratuities         decimal.Decimal `json:"gratuities"`
	HazardPremium      decimal.Decimal `json:"hazard_premium"`
	CashHandlingRate   decimal.Decimal `json:"cash_handling_rate"`
	Overtime50Hours    decimal.Decimal `json:"overtime_50_hours"`
	Overtime100Hours   decimal.Decimal `json:"overtime_100_hours"`
	NightHours         decimal.Decimal `json:"night_hours"`
	NightPremiumRate   decimal.Decimal `json:"night_premium_rate"`
	RestWorkingDays    int             `json:"rest_working_days,omitempty"`
	RestNonWorkingDays int             `json:"rest_non_working_days,omitempty"`
}

// OverridesRequest replaces computed quantities. Omitted or negative values
// keep the computed ones.
type OverridesRequest struct {
	NoticeDays           *int             `json:"notice_days,omitempty"`
	NoticeJustification  string           `json:"notice_justification,omitempty"`
	VacationCredits      *int             `json:"vacation_credits,omitempty"`
	ThirteenthCredits    *int             `json:"thirteenth_credits,omitempty"`
	ExpiredVacation      *decimal.Decimal `json:"expired_vacation,omitempty"`
	ProportionalVacation *decimal.Decimal `json:"proportional_vacation,omitempty"`
	ThirteenthSalary     *decimal.Decimal `json:"thirteenth_salary,omitempty"`
}

// CustomItemRequest is a caller-defined earning or deduction.
type CustomItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Polarity    string          `json:"polarity"`
	Kind        string          `json:"kind"`
	Value       decimal.Decimal `json:"value"`
	Base        string          `json:"base,omitempty"`
	CustomBase  decimal.Decimal `json:"custom_base"`
}

// toCaseInput converts the request into engine input.
func (req SettlementRequest) toCaseInput() (settlement.CaseInput, error) {
	admission, err := parseDate("admission_date", req.AdmissionDate)
	if err != nil {
		return settlement.CaseInput{}, err
	}
	termination, err := parseDate("termination_date", req.TerminationDate)
	if err != nil {
		return settlement.CaseInput{}, err
	}
	if termination.Before(admission) {
		return settlement.CaseInput{}, fmt.Errorf("termination_date %s is before admission_date %s", req.TerminationDate, req.AdmissionDate)
	}

	in := settlement.CaseInput{
		BaseSalary:             req.BaseSalary,
		AdmissionDate:          admission,
		TerminationDate:        termination,
		ReasonCode:             rules.ReasonCode(req.ReasonCode),
		ContractType:           settlement.ContractType(req.ContractType),
		NoticeModality:         settlement.NoticeModality(req.NoticeModality),
		DaysWorked:             req.DaysWorked,
		ExpiredVacationPeriods: req.ExpiredVacationPeriods,
		FundBalance:            req.FundBalance,
		Dependents:             req.Dependents,
		AverageVariablePay:     req.AverageVariablePay,
		MonthlyHours:           req.MonthlyHours,
		UnservedNoticeDays:     req.UnservedNoticeDays,
		AssistanceSalary:       req.AssistanceSalary,
		Variable: settlement.VariablePay{
			SeniorityBonus:     req.Variable.SeniorityBonus,
			Commissions:        req.Variable.Commissions,
			UnhealthyPremium:   req.Variable.UnhealthyPremium,
			Gratuities:         req.Variable.Gratuities,
			HazardPremium:      req.Variable.HazardPremium,
			CashHandlingRate:   req.Variable.CashHandlingRate,
			Overtime50Hours:    req.Variable.Overtime50Hours,
			Overtime100Hours:   req.Variable.Overtime100Hours,
			NightHours:         req.Variable.NightHours,
			NightPremiumRate:   req.Variable.NightPremiumRate,
			RestWorkingDays:    req.Variable.RestWorkingDays,
			RestNonWorkingDays: req.Variable.RestNonWorkingDays,
		},
		Overrides: settlement.Overrides{
			NoticeDays:           req.Overrides.NoticeDays,
			NoticeJustification:  req.Overrides.NoticeJustification,
			VacationCredits:      req.Overrides.VacationCredits,
			ThirteenthCredits:    req.Overrides.ThirteenthCredits,
			ExpiredVacation:      req.Overrides.ExpiredVacation,
			ProportionalVacation: req.Overrides.ProportionalVacation,
			ThirteenthSalary:     req.Overrides.ThirteenthSalary,
		},
	}

	if req.ContractEndDate != "" {
		end, err := parseDate("contract_end_date", req.ContractEndDate)
		if err != nil {
			return settlement.CaseInput{}, err
		}
		in.ContractEndDate = &end
	}

	for _, ci := range req.CustomItems {
		in.CustomItems = append(in.CustomItems, settlement.CustomItem{
			ID:          ci.ID,
			Description: ci.Description,
			Polarity:    settlement.Polarity(ci.Polarity),
			Kind:        settlement.CustomKind(ci.Kind),
			Value:       ci.Value,
			Base:        settlement.CustomBase(ci.Base),
			CustomBase:  ci.CustomBase,
		})
	}

	return in, nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, err)
	}
	return t, nil
}

// =============================================================================
// SETTLEMENT RESPONSE
// =============================================================================

// CalculationResponse wraps a settlement with calculation metadata.
type CalculationResponse struct {
	CalculationID    string        `json:"calculation_id"`
	StartedAt        string        `json:"started_at"`
	CompletedAt      string        `json:"completed_at"`
	DurationMicros   int64         `json:"duration_us"`
	RuleTableVersion string        `json:"rule_table_version"`
	Scenario         string        `json:"scenario,omitempty"`
	Settlement       SettlementDTO `json:"settlement"`
}

// SettlementDTO is a settlement.Result rendered for clients.
type SettlementDTO struct {
	ReasonCode        string `json:"reason_code"`
	ReasonDescription string `json:"reason_description"`
	Category          string `json:"category"`

	Items []LineItemDTO `json:"items"`

	GrossEarnings   string `json:"gross_earnings"`
	GrossDeductions string `json:"gross_deductions"`
	Net             string `json:"net"`

	SocialContribution     string `json:"inss"`
	SocialContributionBase string `json:"inss_base"`
	IncomeTax              string `json:"irrf"`
	IncomeTaxBase          string `json:"irrf_base"`
	FundPenalty            string `json:"fgts_penalty"`

	NoticeDays        CreditDTO `json:"notice_days"`
	VacationCredits   CreditDTO `json:"vacation_credits"`
	ThirteenthCredits CreditDTO `json:"thirteenth_credits"`

	CompletedYears int `json:"completed_years"`
	TenureDays     int `json:"tenure_days"`

	ReferencePay string `json:"reference_pay"`
	OvertimeBase string `json:"overtime_base"`
	HourlyRate   string `json:"hourly_rate"`

	RestPay     RestPayDTO        `json:"rest_pay"`
	Variable    VariableTotalsDTO `json:"variable"`
	DiscountCap DiscountCapDTO    `json:"discount_cap"`
	Advisories  []AdvisoryDTO     `json:"advisories"`
}

// LineItemDTO is one settlement entry.
type LineItemDTO struct {
	Code       string     `json:"code"`
	Ref        string     `json:"ref,omitempty"`
	Label      string     `json:"label"`
	Amount     string     `json:"amount"`
	Polarity   string     `json:"polarity"`
	INSS       bool       `json:"inss"`
	IRRF       bool       `json:"irrf"`
	FGTS       bool       `json:"fgts"`
	Computed   *string    `json:"computed,omitempty"`
	Overridden bool       `json:"overridden,omitempty"`
	Detail     *DetailDTO `json:"detail,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// DetailDTO explains a line item.
type DetailDTO struct {
	Label   string          `json:"label"`
	Formula string          `json:"formula"`
	Values  []NamedValueDTO `json:"values"`
}

// NamedValueDTO is one intermediate figure. Values keep full precision.
type NamedValueDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CreditDTO is a computed vs used count.
type CreditDTO struct {
	Computed   int  `json:"computed"`
	Used       int  `json:"used"`
	Overridden bool `json:"overridden"`
}

// RestPayDTO is the DSR on variable pay.
type RestPayDTO struct {
	Overtime       string `json:"overtime"`
	Commissions    string `json:"commissions"`
	Total          string `json:"total"`
	WorkingDays    int    `json:"working_days"`
	NonWorkingDays int    `json:"non_working_days"`
}

// VariableTotalsDTO summarizes the final month's variable pay.
type VariableTotalsDTO struct {
	Overtime     string `json:"overtime"`
	NightPremium string `json:"night_premium"`
	Commissions  string `json:"commissions"`
	Total        string `json:"total"`
}

// DiscountCapDTO records the unserved-notice cap pass.
type DiscountCapDTO struct {
	Checked            bool   `json:"checked"`
	Applied            bool   `json:"applied"`
	Requested          string `json:"requested,omitempty"`
	Ceiling            string `json:"ceiling,omitempty"`
	NetBeforeDeduction string `json:"net_before_deduction,omitempty"`
}

// AdvisoryDTO is a reviewer note.
type AdvisoryDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func toSettlementDTO(r *settlement.Result) SettlementDTO {
	dto := SettlementDTO{
		ReasonCode:             string(r.Reason.Code),
		ReasonDescription:      r.Reason.Description,
		Category:               string(r.Category),
		Items:                  make([]LineItemDTO, 0, len(r.Items)),
		GrossEarnings:          money(r.GrossEarnings),
		GrossDeductions:        money(r.GrossDeductions),
		Net:                    money(r.Net),
		SocialContribution:     money(r.SocialContribution),
		SocialContributionBase: money(r.SocialContributionBase),
		IncomeTax:              money(r.IncomeTax),
		IncomeTaxBase:          money(r.IncomeTaxBase),
		FundPenalty:            money(r.FundPenalty),
		NoticeDays:             CreditDTO(r.NoticeDays),
		VacationCredits:        CreditDTO(r.VacationCredits),
		ThirteenthCredits:      CreditDTO(r.ThirteenthCredits),
		CompletedYears:         r.CompletedYears,
		TenureDays:             r.TenureDays,
		ReferencePay:           money(r.ReferencePay),
		OvertimeBase:           money(r.OvertimeBase),
		HourlyRate:             money(r.HourlyRate),
		RestPay: RestPayDTO{
			Overtime:       money(r.RestPay.Overtime),
			Commissions:    money(r.RestPay.Commissions),
			Total:          money(r.RestPay.Total),
			WorkingDays:    r.RestPay.WorkingDays,
			NonWorkingDays: r.RestPay.NonWorkingDays,
		},
		Variable: VariableTotalsDTO{
			Overtime:     money(r.Variable.Overtime),
			NightPremium: money(r.Variable.NightPremium),
			Commissions:  money(r.Variable.Commissions),
			Total:        money(r.Variable.Total),
		},
		DiscountCap: DiscountCapDTO{
			Checked: r.DiscountCap.Checked,
			Applied: r.DiscountCap.Applied,
		},
		Advisories: make([]AdvisoryDTO, 0, len(r.Advisories)),
	}

	if r.DiscountCap.Checked {
		dto.DiscountCap.Requested = money(r.DiscountCap.Requested)
		dto.DiscountCap.Ceiling = money(r.DiscountCap.Ceiling)
		dto.DiscountCap.NetBeforeDeduction = money(r.DiscountCap.NetBeforeDeduction)
	}

	for _, it := range r.Items {
		dto.Items = append(dto.Items, toLineItemDTO(it))
	}
	for _, a := range r.Advisories {
		dto.Advisories = append(dto.Advisories, AdvisoryDTO(a))
	}
	return dto
}

func toLineItemDTO(it settlement.LineItem) LineItemDTO {
	dto := LineItemDTO{
		Code:       string(it.Code),
		Ref:        it.Ref,
		Label:      it.Label,
		Amount:     money(it.Amount),
		Polarity:   string(it.Polarity),
		INSS:       it.Incidence.SocialContribution,
		IRRF:       it.Incidence.IncomeTax,
		FGTS:       it.Incidence.Fund,
		Overridden: it.Overridden,
		Note:       it.Note,
	}
	if it.Computed != nil {
		computed := money(*it.Computed)
		dto.Computed = &computed
	}
	if it.Detail != nil {
		detail := &DetailDTO{Label: it.Detail.Label, Formula: it.Detail.Formula}
		for _, v := range it.Detail.Values {
			detail.Values = append(detail.Values, NamedValueDTO{Name: v.Name, Value: v.Value.String()})
		}
		dto.Detail = detail
	}
	return dto
}

// =============================================================================
// CATALOG
// =============================================================================

// ReasonDTO is one termination reason.
type ReasonDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CategoryDTO is one category rule-set.
type CategoryDTO struct {
	Key                      string `json:"key"`
	Description              string `json:"description,omitempty"`
	PaysAccruedSalary        bool   `json:"accrued_salary"`
	PaysExpiredVacation      bool   `json:"expired_vacation"`
	PaysProportionalVacation bool   `json:"proportional_vacation"`
	PaysThirteenthSalary     bool   `json:"thirteenth_salary"`
	PaysNotice               bool   `json:"notice"`
	ProjectsNotice           bool   `json:"notice_reflexes"`
	FundPenaltyRate          string `json:"fund_penalty_rate"`
	NoticeFactor             string `json:"notice_factor"`
	ReductionFactor          string `json:"reduction_factor"`
	WithholdsUnservedNotice  bool   `json:"withholds_unserved_notice"`
	RequiresFixedTermEndDate bool   `json:"requires_fixed_term_end_date"`
}

// BracketDTO is one tax band. An empty UpTo means unbounded.
type BracketDTO struct {
	UpTo      string `json:"up_to,omitempty"`
	Rate      string `json:"rate"`
	Deduction string `json:"deduction,omitempty"`
}

// TaxTablesDTO is the active INSS and IRRF schedules.
type TaxTablesDTO struct {
	Version                string       `json:"version"`
	SocialContributionCap  string       `json:"inss_ceiling"`
	SocialContribution     []BracketDTO `json:"inss"`
	IncomeTax              []BracketDTO `json:"irrf"`
	DependentDeduction     string       `json:"dependent_deduction"`
	MinimumWage            string       `json:"minimum_wage"`
	UnservedNoticeCapRatio string       `json:"unserved_notice_cap_ratio"`
	MonthlyHoursDivisor    string       `json:"monthly_hours_divisor"`
	ExperienceLimitDays    int          `json:"experience_limit_days"`
}

// RuleTableDTO is a stored rule-table version. Config is only filled in
// when a single version is requested.
type RuleTableDTO struct {
	Version     string          `json:"version"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"created_at"`
	ActivatedAt string          `json:"activated_at,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

func toCategoryDTO(c rules.Category) CategoryDTO {
	return CategoryDTO{
		Key:                      string(c.Key),
		Description:              c.Description,
		PaysAccruedSalary:        c.PaysAccruedSalary,
		PaysExpiredVacation:      c.PaysExpiredVacation,
		PaysProportionalVacation: c.PaysProportionalVacation,
		PaysThirteenthSalary:     c.PaysThirteenthSalary,
		PaysNotice:               c.PaysNotice,
		ProjectsNotice:           c.ProjectsNotice,
		FundPenaltyRate:          c.FundPenaltyRate.String(),
		NoticeFactor:             c.NoticeMultiplier().String(),
		ReductionFactor:          c.ReductionMultiplier().String(),
		WithholdsUnservedNotice:  c.WithholdsUnservedNotice,
		RequiresFixedTermEndDate: c.RequiresFixedTermEndDate,
	}
}

func toBracketDTOs(brackets []rules.Bracket, withDeduction bool) []BracketDTO {
	out := make([]BracketDTO, 0, len(brackets))
	for _, b := range brackets {
		dto := BracketDTO{Rate: b.Rate.String()}
		if b.UpTo != nil {
			dto.UpTo = money(*b.UpTo)
		}
		if withDeduction {
			dto.Deduction = money(b.Deduction)
		}
		out = append(out, dto)
	}
	return out
}

// =============================================================================
// SCENARIOS AND ERRORS
// =============================================================================

// ScenarioDTO describes a canned demo case.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Reason      string `json:"reason_code"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
