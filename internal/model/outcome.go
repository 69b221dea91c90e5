package model

import "github.com/shopspring/decimal"

// CloseOutcome holds what a simulated position close put back on the worktop.
type CloseOutcome struct {
	Returned map[string]decimal.Decimal `json:"returned"`
	Fees     map[string]decimal.Decimal `json:"fees"`
}

// ReturnedAmount returns the amount of resource returned, or zero if absent.
func (o CloseOutcome) ReturnedAmount(resource string) (decimal.Decimal, bool) {
	v, ok := o.Returned[resource]
	if !ok {
		return decimal.Zero, false
	}
	return v, true
}

// FeeAmount returns the accrued fee for resource, or zero if absent.
func (o CloseOutcome) FeeAmount(resource string) decimal.Decimal {
	v, ok := o.Fees[resource]
	if !ok {
		return decimal.Zero
	}
	return v
}
