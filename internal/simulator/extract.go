package simulator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ignitionPayout/internal/amount"
	"ignitionPayout/internal/gateway"
	"ignitionPayout/internal/payout"
	"ignitionPayout/internal/sbor"
)

func instructionOutput(resp *gateway.PreviewResponse, index int) (sbor.Value, error) {
	if index >= len(resp.Receipt.Output) {
		return sbor.Value{}, fmt.Errorf("preview has %d outputs, want index %d", len(resp.Receipt.Output), index)
	}
	return resp.Receipt.Output[index].ProgrammaticJSON, nil
}

// extractFees reads the fee map reported by the adapter. Negative fees are
// clamped to zero on read.
func extractFees(resp *gateway.PreviewResponse) (map[string]decimal.Decimal, error) {
	out, err := instructionOutput(resp, instructionClose)
	if err != nil {
		return nil, fmt.Errorf("close output: %w", err)
	}
	field, err := out.Field(closeOutputFees)
	if err != nil {
		return nil, fmt.Errorf("close output fees: %w", err)
	}
	fees, err := field.DecimalMap()
	if err != nil {
		return nil, fmt.Errorf("close output fees: %w", err)
	}
	for resource, fee := range fees {
		fees[resource] = amount.ClampNonNegative(fee)
	}
	return fees, nil
}

// extractPrice reads the oracle's (price, instant) output.
func extractPrice(resp *gateway.PreviewResponse, base, quote string) (payout.Price, time.Time, error) {
	out, err := instructionOutput(resp, instructionPrice)
	if err != nil {
		return payout.Price{}, time.Time{}, fmt.Errorf("oracle output: %w", err)
	}
	rateField, err := out.Field(priceOutputRate)
	if err != nil {
		return payout.Price{}, time.Time{}, fmt.Errorf("oracle price: %w", err)
	}
	rate, err := rateField.Decimal()
	if err != nil {
		return payout.Price{}, time.Time{}, fmt.Errorf("oracle price: %w", err)
	}

	var at time.Time
	if timeField, err := out.Field(priceOutputTime); err == nil {
		if at, err = timeField.Instant(); err != nil {
			return payout.Price{}, time.Time{}, fmt.Errorf("oracle price time: %w", err)
		}
	}

	return payout.Price{Base: base, Quote: quote, Rate: rate}, at, nil
}

// extractReturned sums the positive balance changes the deposit instruction
// made to account. Everything the close left on the worktop lands there.
func extractReturned(resp *gateway.PreviewResponse, account string) (map[string]decimal.Decimal, error) {
	returned := make(map[string]decimal.Decimal)
	for _, changes := range resp.ResourceChanges {
		if changes.Index != instructionDeposit {
			continue
		}
		for _, change := range changes.ResourceChanges {
			if change.ComponentEntity.EntityAddress != account {
				continue
			}
			value, err := amount.Parse(change.Amount)
			if err != nil {
				return nil, fmt.Errorf("resource change of %s: %w", change.ResourceAddress, err)
			}
			if !value.IsPositive() {
				continue
			}
			total, err := amount.CheckedAdd(returned[change.ResourceAddress], value)
			if err != nil {
				return nil, fmt.Errorf("returned %s: %w", change.ResourceAddress, err)
			}
			returned[change.ResourceAddress] = total
		}
	}
	return returned, nil
}
