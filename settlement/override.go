package settlement

import "github.com/shopspring/decimal"

// resolveCount returns the override when present and non-negative, else the
// computed value. The bool reports whether the override changed the figure.
func resolveCount(override *int, computed int) (int, bool) {
	if override == nil || *override < 0 {
		return computed, false
	}
	return *override, *override != computed
}

// resolveCredit is resolveCount for fractional credits, capped at twelve.
func resolveCredit(override *int, computed int) Credit {
	used, _ := resolveCount(override, computed)
	if used > 12 {
		used = 12
	}
	return Credit{Computed: computed, Used: used, Overridden: used != computed}
}

// resolveAmount is resolveCount for monetary values.
func resolveAmount(override *decimal.Decimal, computed decimal.Decimal) (decimal.Decimal, bool) {
	if override == nil || override.IsNegative() {
		return computed, false
	}
	return *override, !override.Equal(computed)
}
