package main

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// display renders an amount the way the currency writes it ("₹1,234.50").
// Unknown currencies, unparseable amounts and amounts too large for int64
// minor units are shown as sent.
func display(currency string, amount json.Number) string {
	// exponent forms can expand to enormous integers when rounded
	if len(amount) > 32 || strings.ContainsAny(amount.String(), "eE") {
		return amount.String()
	}

	d, err := decimal.NewFromString(amount.String())
	if err != nil {
		return amount.String()
	}

	cur := money.GetCurrency(currency)
	if cur == nil {
		return currency + " " + d.StringFixed(2)
	}

	minor := d.Shift(int32(cur.Fraction)).Round(0).BigInt()
	if !minor.IsInt64() {
		return currency + " " + d.StringFixed(2)
	}
	return money.New(minor.Int64(), cur.Code).Display()
}
