package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits kept for every amount.
const AmountPlaces = 2

// MaxAmount is the largest amount a single expense may carry. Sums of many
// expenses still fit comfortably in int64 minor units.
var MaxAmount = decimal.New(1, 12)

// maxLiteralLen bounds the text handed to the decimal parser.
const maxLiteralLen = 32

var (
	ErrInvalidAmount    = errors.New("amount must be a number")
	ErrAmountOutOfRange = errors.New("amount is out of range")
)

// Amount is a fixed-point monetary value. It is rounded to AmountPlaces when
// it enters the system and never touches a float afterwards.
type Amount struct {
	d decimal.Decimal
}

// NewAmount rounds d half away from zero to two places.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d: d.Round(AmountPlaces)}
}

// AmountFromMinor builds an amount from integer minor units (cents, paise).
func AmountFromMinor(units int64) Amount {
	return Amount{d: decimal.New(units, -AmountPlaces)}
}

// ParseAmount parses a plain decimal literal such as "500", "12.5" or
// "0.99". A JSON-quoted literal is accepted as well. Exponent notation is
// refused, and the magnitude must not exceed MaxAmount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
	s = strings.TrimSpace(s)
	if !plainDecimal(s) {
		return Amount{}, ErrInvalidAmount
	}
	if len(s) > maxLiteralLen {
		return Amount{}, ErrAmountOutOfRange
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}

	a := NewAmount(d)
	if a.d.Abs().GreaterThan(MaxAmount) {
		return Amount{}, ErrAmountOutOfRange
	}
	return a, nil
}

// plainDecimal reports whether s is [+-]digits[.digits] with at least one digit.
func plainDecimal(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// MustParseAmount is ParseAmount for literals in tests and fixtures.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

// Minor returns the amount in integer minor units.
func (a Amount) Minor() int64 { return a.d.Shift(AmountPlaces).Round(0).IntPart() }

func (a Amount) IsPositive() bool          { return a.d.IsPositive() }
func (a Amount) IsZero() bool              { return a.d.IsZero() }
func (a Amount) Equal(b Amount) bool       { return a.d.Equal(b.d) }
func (a Amount) Cmp(b Amount) int          { return a.d.Cmp(b.d) }
func (a Amount) Add(b Amount) Amount       { return Amount{d: a.d.Add(b.d)} }
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }
func (a Amount) LessThan(b Amount) bool    { return a.d.LessThan(b.d) }

// String formats the amount with exactly two decimals, e.g. "500.00".
func (a Amount) String() string { return a.d.StringFixed(AmountPlaces) }

// MarshalJSON writes the amount as a bare JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	parsed, err := ParseAmount(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sum adds up a list of amounts.
func Sum(amounts ...Amount) Amount {
	total := Amount{}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
