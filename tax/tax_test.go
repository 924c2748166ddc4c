package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/rescisao-engine/rules"
	"github.com/warp/rescisao-engine/tax"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

// =============================================================================
// SOCIAL CONTRIBUTION
// =============================================================================

func TestSocialContribution_FirstBracketOnly(t *testing.T) {
	table := rules.Default().SocialContribution()

	assertDecimal(t, "78.75", tax.SocialContribution(table, d("1050")))
	assertDecimal(t, "113.85", tax.SocialContribution(table, d("1518.00")))
}

func TestSocialContribution_Marginal(t *testing.T) {
	// 1518*7.5% + 1275.88*9% + 206.12*12%
	table := rules.Default().SocialContribution()

	assertDecimal(t, "253.4136", tax.SocialContribution(table, d("3000")))
}

func TestSocialContribution_CeilingIsIdempotent(t *testing.T) {
	// GIVEN: the 2025 ceiling of 8157.41
	table := rules.Default().SocialContribution()
	atCeiling := tax.SocialContribution(table, table.Ceiling)

	// THEN: the contribution on the ceiling is the maximum
	assertDecimal(t, "951.6344", atCeiling)

	// AND: any larger base yields exactly the same amount
	for _, base := range []string{"8157.42", "10000", "250000.55"} {
		assert.True(t, atCeiling.Equal(tax.SocialContribution(table, d(base))), "base %s", base)
	}
}

func TestSocialContribution_NonPositiveBase(t *testing.T) {
	table := rules.Default().SocialContribution()

	assert.True(t, tax.SocialContribution(table, decimal.Zero).IsZero())
	assert.True(t, tax.SocialContribution(table, d("-10")).IsZero())
}

// =============================================================================
// INCOME TAX
// =============================================================================

func TestIncomeTax_TopBracket(t *testing.T) {
	table := rules.Default().IncomeTax()

	got := tax.IncomeTax(table, d("5000"), 0, decimal.Zero, d("189.59"))

	assertDecimal(t, "466.27", got)
}

func TestIncomeTax_AfterContribution(t *testing.T) {
	table := rules.Default().IncomeTax()

	got := tax.IncomeTax(table, d("3000"), 0, d("253.4136"), d("189.59"))

	assertDecimal(t, "23.83398", got)
}

func TestIncomeTax_DependentsCanZeroTheTax(t *testing.T) {
	table := rules.Default().IncomeTax()

	assert.True(t, tax.IncomeTax(table, d("2600"), 0, decimal.Zero, d("189.59")).IsPositive())
	assert.True(t, tax.IncomeTax(table, d("2600"), 1, decimal.Zero, d("189.59")).IsZero())
}

func TestIncomeTax_NonPositiveAdjustedBase(t *testing.T) {
	table := rules.Default().IncomeTax()

	assert.True(t, tax.IncomeTax(table, d("100"), 3, d("7.5"), d("189.59")).IsZero())
}

func TestIncomeTax_ContinuousAtBracketEdges(t *testing.T) {
	// Each bracket's deduction is calibrated so that stepping over an edge
	// changes the tax by less than one cent.
	table := rules.Default().IncomeTax()
	cent := d("0.01")
	epsilon := d("0.0001")

	for _, b := range table.Brackets {
		if b.Unbounded() {
			continue
		}
		edge := *b.UpTo
		below := tax.IncomeTax(table, edge, 0, decimal.Zero, decimal.Zero)
		above := tax.IncomeTax(table, edge.Add(epsilon), 0, decimal.Zero, decimal.Zero)
		assert.True(t, above.Sub(below).Abs().LessThanOrEqual(cent),
			"edge %s: %s -> %s", edge, below, above)
	}
}

func TestIncomeTax_NonDecreasingBeyondExemptBracket(t *testing.T) {
	table := rules.Default().IncomeTax()
	cent := d("0.01")
	step := d("0.37")

	prev := decimal.Zero
	for x := d("2428.80"); x.LessThan(d("12000")); x = x.Add(step) {
		got := tax.IncomeTax(table, x, 0, decimal.Zero, decimal.Zero)
		assert.True(t, got.GreaterThanOrEqual(prev.Sub(cent)), "base %s: %s after %s", x, got, prev)
		prev = got
	}
}
