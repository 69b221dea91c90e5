package payout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ignitionPayout/internal/amount"
	"ignitionPayout/internal/model"
)

// ErrAssetMismatch means the price pair does not include the user asset.
var ErrAssetMismatch = errors.New("price pair does not include user asset")

// Inputs are the values a payout decision is computed from.
type Inputs struct {
	UserAsset       string
	Contributed     decimal.Decimal
	ReturnedUser    decimal.Decimal
	ReturnedReserve decimal.Decimal
	AccruedUserFee  decimal.Decimal
	Price           Price
}

// Decision is how much of each asset goes to the position holder.
type Decision struct {
	ReservePayout decimal.Decimal
	UserPayout    decimal.Decimal
	RealizedFee   decimal.Decimal

	ILProtected     bool
	Shortfall       decimal.Decimal
	RequiredReserve decimal.Decimal
	// UndisbursedUser is user asset returned beyond principal plus fees. It is
	// not paid out.
	UndisbursedUser decimal.Decimal
}

// Calculate decides the payout for a closed position.
//
// When at least the contributed user amount came back, the holder gets the
// principal plus fees, capped at what was returned, and no reserve asset.
// Otherwise the holder gets everything returned in the user asset and the
// shortfall is covered in the reserve asset at the oracle price, capped at the
// reserve that came back; fees are forfeited.
func Calculate(in Inputs) (Decision, error) {
	fee := amount.ClampNonNegative(in.AccruedUserFee)

	if in.ReturnedUser.GreaterThanOrEqual(in.Contributed) {
		owed, err := amount.CheckedAdd(in.Contributed, fee)
		if err != nil {
			return Decision{}, fmt.Errorf("principal plus fees: %w", err)
		}
		userPayout := amount.Lesser(in.ReturnedUser, owed)
		excess, err := amount.CheckedSub(in.ReturnedUser, userPayout)
		if err != nil {
			return Decision{}, fmt.Errorf("undisbursed user amount: %w", err)
		}
		return Decision{
			ReservePayout:   decimal.Zero,
			UserPayout:      userPayout,
			RealizedFee:     fee,
			Shortfall:       decimal.Zero,
			RequiredReserve: decimal.Zero,
			UndisbursedUser: excess,
		}, nil
	}

	shortfall, err := amount.CheckedSub(in.Contributed, in.ReturnedUser)
	if err != nil {
		return Decision{}, fmt.Errorf("shortfall: %w", err)
	}
	_, required, ok, err := in.Price.Exchange(in.UserAsset, shortfall)
	if err != nil {
		return Decision{}, fmt.Errorf("convert shortfall: %w", err)
	}
	if !ok {
		return Decision{}, fmt.Errorf("convert shortfall of %s: %w", in.UserAsset, ErrAssetMismatch)
	}

	return Decision{
		ReservePayout:   amount.Lesser(required, in.ReturnedReserve),
		UserPayout:      in.ReturnedUser,
		RealizedFee:     decimal.Zero,
		ILProtected:     true,
		Shortfall:       shortfall,
		RequiredReserve: required,
		UndisbursedUser: decimal.Zero,
	}, nil
}

// Compute decides the payout for receipt given the close outcome and the
// oracle price. The reserve asset is the counterpart of the user asset in the
// price pair.
func Compute(receipt model.LiquidityReceipt, outcome model.CloseOutcome, price Price) (Decision, error) {
	in := Inputs{
		UserAsset:      receipt.UserResource,
		Contributed:    receipt.UserContribution,
		AccruedUserFee: outcome.FeeAmount(receipt.UserResource),
		Price:          price,
	}
	in.ReturnedUser, _ = outcome.ReturnedAmount(receipt.UserResource)
	if reserve, ok := price.Counterpart(receipt.UserResource); ok {
		in.ReturnedReserve, _ = outcome.ReturnedAmount(reserve)
	}
	return Calculate(in)
}
