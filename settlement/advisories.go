package settlement

import (
	"fmt"
	"strings"

	"github.com/warp/rescisao-engine/rules"
)

// Advisory codes.
const (
	AdvisoryMutualAgreement      = "ACORDO_484A"
	AdvisoryReduced              = "REDUCAO_50"
	AdvisoryJustCause            = "JUSTA_CAUSA"
	AdvisoryRatification         = "HOMOLOGACAO"
	AdvisoryNoticeEditedNoReason = "AVISO_EDITADO_SEM_JUSTIFICATIVA"
	AdvisoryExperienceExceeded   = "EXPERIENCIA_EXCEDIDA"
	AdvisoryDiscountLimited      = "DESCONTO_LIMITADO"
)

// Tenures above one year may need union ratification.
const ratificationTenureDays = 365

// advisories returns the review notes for the case, in a fixed order.
func (c *calculation) advisories(capRecord DiscountCap) []Advisory {
	var out []Advisory
	add := func(code, msg string) { out = append(out, Advisory{Code: code, Message: msg}) }

	switch {
	case c.category.Key == rules.CategoryMutualAgreement:
		add(AdvisoryMutualAgreement, "Acordo (art. 484-A): saque de até 80% do FGTS, multa de 20% e sem direito ao seguro-desemprego.")
	case c.category.IsReduced():
		add(AdvisoryReduced, fmt.Sprintf("Redução de %s%% nas verbas proporcionais; multa do FGTS de %s%%.",
			percent(one.Sub(c.category.ReductionMultiplier())), percent(c.category.FundPenaltyRate)))
	case c.category.Key == rules.CategoryJustCause:
		add(AdvisoryJustCause, "Justa causa: sem saque do FGTS e sem direito ao seguro-desemprego.")
	}

	if c.tenureDays > ratificationTenureDays {
		add(AdvisoryRatification, "Vínculo superior a um ano: verifique a exigência de homologação na convenção coletiva.")
	}
	if c.noticeDays.Overridden && strings.TrimSpace(c.in.Overrides.NoticeJustification) == "" {
		add(AdvisoryNoticeEditedNoReason, fmt.Sprintf("Dias de aviso alterados de %d para %d sem justificativa.",
			c.noticeDays.Computed, c.noticeDays.Used))
	}
	if c.in.ContractType == ContractExperience && c.tenureDays > c.defaults.ExperienceLimitDays {
		add(AdvisoryExperienceExceeded, fmt.Sprintf("Contrato de experiência com %d dias excede o limite de %d dias.",
			c.tenureDays, c.defaults.ExperienceLimitDays))
	}
	if capRecord.Applied {
		add(AdvisoryDiscountLimited, fmt.Sprintf("Desconto de aviso não cumprido limitado de %s para %s.",
			capRecord.Requested.StringFixed(2), capRecord.Ceiling.StringFixed(2)))
	}
	return out
}
