package settlement

import "github.com/shopspring/decimal"

// itemList is an append-only sequence of line items.
type itemList struct {
	items []LineItem
}

func (l *itemList) add(item LineItem) {
	l.items = append(l.items, item)
}

// snapshot returns a copy the caller may keep.
func (l *itemList) snapshot() []LineItem {
	return append([]LineItem(nil), l.items...)
}

func detail(label, formula string, values ...NamedValue) *Detail {
	return &Detail{Label: label, Formula: formula, Values: values}
}

func nv(name string, value decimal.Decimal) NamedValue {
	return NamedValue{Name: name, Value: value}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
