package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/rescisao-engine/rules"
)

func TestCapCeiling(t *testing.T) {
	ratio := decimal.RequireFromString("0.70")

	assert.Equal(t, "1540.00", capCeiling(decimal.NewFromInt(2200), ratio).StringFixed(2))
	assert.True(t, capCeiling(decimal.NewFromInt(-50), ratio).IsZero())
}

func TestApplyDiscountCap_NegativeNetBefore(t *testing.T) {
	// GIVEN: deductions that exceed the earnings before the notice discount
	c := &calculation{table: rules.Default(), defaults: rules.Default().Defaults()}
	candidate := []LineItem{
		{Code: CodeCustomEarning, Amount: decimal.NewFromInt(100), Polarity: Earning},
		{Code: CodeCustomDeduction, Amount: decimal.NewFromInt(150), Polarity: Deduction},
		{Code: CodeUnservedNotice, Amount: decimal.NewFromInt(500), Polarity: Deduction},
	}
	before := summarize(c.table, candidate, 0)

	// WHEN: the cap runs
	items, after, record := c.applyDiscountCap(candidate, before)

	// THEN: the ceiling is floored at zero and the whole discount is dropped
	assert.True(t, record.Applied)
	assert.Equal(t, "-50", record.NetBeforeDeduction.String())
	assert.True(t, record.Ceiling.IsZero())
	assert.True(t, items[2].Amount.IsZero())
	assert.Equal(t, "500", items[2].Computed.String())

	// AND: the final net is the pre-discount net, not 30% of it
	assert.Equal(t, "-50", after.net.String())
}

func TestApplyDiscountCap_LeavesCandidateUntouched(t *testing.T) {
	// GIVEN: a candidate whose deduction exceeds the ceiling
	c := &calculation{table: rules.Default(), defaults: rules.Default().Defaults()}
	candidate := []LineItem{
		{Code: CodeCustomEarning, Amount: decimal.NewFromInt(2200), Polarity: Earning},
		{Code: CodeUnservedNotice, Amount: decimal.NewFromInt(2000), Polarity: Deduction},
	}
	before := summarize(c.table, candidate, 0)

	// WHEN: the cap runs
	items, after, record := c.applyDiscountCap(candidate, before)

	// THEN: a corrected copy is returned
	assert.True(t, record.Applied)
	assert.Equal(t, "1540.00", items[1].Amount.StringFixed(2))
	assert.Equal(t, "660.00", after.net.StringFixed(2))

	// AND: the candidate pass is unchanged
	assert.Equal(t, "2000", candidate[1].Amount.String())
	assert.Nil(t, candidate[1].Computed)
	assert.Equal(t, "200", before.net.String())
}

func TestApplyDiscountCap_NoDeduction(t *testing.T) {
	c := &calculation{table: rules.Default(), defaults: rules.Default().Defaults()}
	candidate := []LineItem{{Code: CodeAccruedSalary, Amount: decimal.NewFromInt(100), Polarity: Earning}}
	t0 := summarize(c.table, candidate, 0)

	items, t1, record := c.applyDiscountCap(candidate, t0)

	assert.False(t, record.Checked)
	assert.Equal(t, candidate, items)
	assert.Equal(t, t0, t1)
}

func TestResolveCredit(t *testing.T) {
	twenty, neg, five := 20, -1, 5

	assert.Equal(t, Credit{Computed: 3, Used: 3}, resolveCredit(nil, 3))
	assert.Equal(t, Credit{Computed: 3, Used: 3}, resolveCredit(&neg, 3))
	assert.Equal(t, Credit{Computed: 3, Used: 5, Overridden: true}, resolveCredit(&five, 3))
	assert.Equal(t, Credit{Computed: 3, Used: 12, Overridden: true}, resolveCredit(&twenty, 3))

	// An override that lands on the computed value is not an edit.
	three, twelve := 3, 12
	assert.Equal(t, Credit{Computed: 3, Used: 3}, resolveCredit(&three, 3))
	assert.Equal(t, Credit{Computed: 12, Used: 12}, resolveCredit(&twenty, 12))
	assert.Equal(t, Credit{Computed: 12, Used: 12}, resolveCredit(&twelve, 12))
}

func TestResolveAmount(t *testing.T) {
	computed := decimal.RequireFromString("3000")
	same := decimal.RequireFromString("3000.00")
	other := decimal.RequireFromString("2999.99")
	negative := decimal.RequireFromString("-1")

	amount, overridden := resolveAmount(nil, computed)
	assert.True(t, amount.Equal(computed))
	assert.False(t, overridden)

	amount, overridden = resolveAmount(&negative, computed)
	assert.True(t, amount.Equal(computed))
	assert.False(t, overridden)

	amount, overridden = resolveAmount(&same, computed)
	assert.True(t, amount.Equal(computed))
	assert.False(t, overridden)

	amount, overridden = resolveAmount(&other, computed)
	assert.True(t, amount.Equal(other))
	assert.True(t, overridden)
}
