package rules_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rescisao-engine/rules"
)

func TestDefault_EveryReasonResolves(t *testing.T) {
	table := rules.Default()

	for _, r := range table.Reasons() {
		reason, category, err := table.Resolve(r.Code)
		require.NoError(t, err, "reason %s", r.Code)
		assert.Equal(t, r, reason)
		assert.Equal(t, r.Category, category.Key)
	}
}

func TestResolve_NoFaultDismissal(t *testing.T) {
	_, category, err := rules.Default().Resolve("02")
	require.NoError(t, err)

	assert.True(t, category.PaysNotice)
	assert.True(t, category.ProjectsNotice)
	assert.True(t, category.FundPenaltyRate.Equal(decimal.RequireFromString("0.40")))
	assert.True(t, category.NoticeMultiplier().Equal(decimal.NewFromInt(1)))
	assert.False(t, category.IsReduced())
}

func TestResolve_MutualAgreementHalvesNotice(t *testing.T) {
	_, category, err := rules.Default().Resolve("44")
	require.NoError(t, err)

	assert.True(t, category.NoticeMultiplier().Equal(decimal.RequireFromString("0.5")))
	assert.True(t, category.FundPenaltyRate.Equal(decimal.RequireFromString("0.20")))
}

func TestResolve_UnknownReason(t *testing.T) {
	_, _, err := rules.Default().Resolve("99")

	var unknown *rules.UnknownReasonError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, rules.ReasonCode("99"), unknown.Code)
	assert.True(t, errors.Is(err, rules.ErrUnknownReason))
}

func TestNewTable_RejectsDanglingCategory(t *testing.T) {
	// GIVEN: a reason that points at a category nobody defined
	spec := rules.DefaultSpec()
	spec.Reasons = append(spec.Reasons, rules.Reason{Code: "77", Description: "Ghost", Category: "GHOST"})

	// WHEN: building the table
	_, err := rules.NewTable(spec)

	// THEN: validation fails before any computation can hit it
	var verr *rules.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, errors.Is(err, rules.ErrInvalidTable))
	assert.Contains(t, verr.Problems[0], "GHOST")
}

func TestNewTable_RejectsNonIncreasingBrackets(t *testing.T) {
	spec := rules.DefaultSpec()
	low := decimal.RequireFromString("100")
	spec.SocialContribution.Brackets = append(spec.SocialContribution.Brackets, rules.Bracket{UpTo: &low, Rate: decimal.RequireFromString("0.2")})

	_, err := rules.NewTable(spec)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "social contribution")
}

func TestNewTable_RejectsUnboundedBracketBeforeLast(t *testing.T) {
	spec := rules.DefaultSpec()
	brackets := spec.IncomeTax.Brackets
	brackets[len(brackets)-1], brackets[0] = brackets[0], brackets[len(brackets)-1]

	_, err := rules.NewTable(spec)

	require.Error(t, err)
}

func TestNewTable_RejectsDuplicateReason(t *testing.T) {
	spec := rules.DefaultSpec()
	spec.Reasons = append(spec.Reasons, spec.Reasons[0])

	_, err := rules.NewTable(spec)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate reason")
}

func TestUnknownCategoryError_Unwraps(t *testing.T) {
	// NewTable refuses dangling categories, so this error only surfaces from a
	// table built by other means. It must still classify as a config error.
	var err error = &rules.UnknownCategoryError{Reason: "02", Category: "X"}

	var unknown *rules.UnknownCategoryError
	assert.ErrorAs(t, err, &unknown)
	assert.True(t, errors.Is(err, rules.ErrUnknownCategory))
	assert.Contains(t, err.Error(), `"X"`)
}

func TestTable_SpecRoundTrip(t *testing.T) {
	table := rules.Default()

	rebuilt, err := rules.NewTable(table.Spec())

	require.NoError(t, err)
	assert.Equal(t, table.Version(), rebuilt.Version())
	assert.Equal(t, table.Reasons(), rebuilt.Reasons())
	assert.Equal(t, table.Categories(), rebuilt.Categories())
}
