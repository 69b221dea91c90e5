package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is the oracle price captured for a report.
type PriceQuote struct {
	Base  string          `json:"base" yaml:"base"`
	Quote string          `json:"quote" yaml:"quote"`
	Rate  decimal.Decimal `json:"price" yaml:"price"`
}

// Report is the outcome of one payout check.
type Report struct {
	RunID           string          `json:"run_id" yaml:"run_id"`
	GlobalID        string          `json:"global_id,omitempty" yaml:"global_id,omitempty"`
	UserResource    string          `json:"user_resource" yaml:"user_resource"`
	ReserveResource string          `json:"reserve_resource" yaml:"reserve_resource"`
	ContributedUser decimal.Decimal `json:"contributed_user" yaml:"contributed_user"`
	ReturnedUser    decimal.Decimal `json:"returned_user" yaml:"returned_user"`
	ReturnedReserve decimal.Decimal `json:"returned_reserve" yaml:"returned_reserve"`
	AccruedUserFee  decimal.Decimal `json:"accrued_user_fee" yaml:"accrued_user_fee"`
	Price           PriceQuote      `json:"oracle_price" yaml:"oracle_price"`
	ILProtected     bool            `json:"il_protected" yaml:"il_protected"`
	Shortfall       decimal.Decimal `json:"shortfall" yaml:"shortfall"`
	RequiredReserve decimal.Decimal `json:"required_reserve" yaml:"required_reserve"`
	ReservePayout   decimal.Decimal `json:"reserve_payout" yaml:"reserve_payout"`
	UserPayout      decimal.Decimal `json:"user_payout" yaml:"user_payout"`
	RealizedFee     decimal.Decimal `json:"realized_fee" yaml:"realized_fee"`
	UndisbursedUser decimal.Decimal `json:"undisbursed_user" yaml:"undisbursed_user"`
	GeneratedAt     time.Time       `json:"generated_at" yaml:"generated_at"`
}
