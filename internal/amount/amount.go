package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by ledger decimals.
const Scale = 18

var (
	ErrOverflow       = errors.New("decimal overflow")
	ErrDivisionByZero = errors.New("division by zero")
)

// Max is the largest representable ledger decimal, (2^191 - 1) / 10^18.
var Max decimal.Decimal

// Min is the smallest representable ledger decimal, -2^191 / 10^18.
var Min decimal.Decimal

func init() {
	limit := new(big.Int).Lsh(big.NewInt(1), 191)
	Min = decimal.NewFromBigInt(new(big.Int).Neg(limit), -Scale)
	Max = decimal.NewFromBigInt(new(big.Int).Sub(limit, big.NewInt(1)), -Scale)
}

// Parse parses a decimal string and checks it fits the ledger range.
// Digits past the 18th fractional place are truncated.
func Parse(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, fmt.Errorf("empty decimal")
	}
	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", input, err)
	}
	return check(d.Truncate(Scale))
}

// MustParse is Parse for constants known to be valid.
func MustParse(input string) decimal.Decimal {
	d, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return d
}

func CheckedAdd(a, b decimal.Decimal) (decimal.Decimal, error) {
	return check(a.Add(b))
}

func CheckedSub(a, b decimal.Decimal) (decimal.Decimal, error) {
	return check(a.Sub(b))
}

// CheckedMul multiplies and truncates toward zero at Scale digits.
func CheckedMul(a, b decimal.Decimal) (decimal.Decimal, error) {
	return check(a.Mul(b).Truncate(Scale))
}

// CheckedDiv divides and truncates toward zero at Scale digits.
func CheckedDiv(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	q, _ := a.QuoRem(b, Scale)
	return check(q)
}

func Lesser(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func Greater(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ClampNonNegative returns zero for negative inputs.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	return Greater(d, decimal.Zero)
}

func check(d decimal.Decimal) (decimal.Decimal, error) {
	if d.GreaterThan(Max) || d.LessThan(Min) {
		return decimal.Zero, ErrOverflow
	}
	return d, nil
}
