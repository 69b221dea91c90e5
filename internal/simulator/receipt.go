package simulator

import (
	"fmt"

	"ignitionPayout/internal/model"
	"ignitionPayout/internal/sbor"
)

// Field positions of the liquidity receipt data.
const (
	receiptFieldName = iota
	receiptFieldLockupPeriod
	receiptFieldPoolAddress
	receiptFieldUserResource
	receiptFieldUserContribution
	receiptFieldVolatility
	receiptFieldProtocolContribution
	receiptFieldMaturityDate
	receiptFieldAdapterPayload
	receiptFieldCount
)

// scryptoPayloadPrefix is the first byte of every encoded ledger value.
const scryptoPayloadPrefix = 0x5c

// DecodeReceipt reads liquidity receipt data from its programmatic form.
func DecodeReceipt(v sbor.Value) (model.LiquidityReceipt, error) {
	if v.Kind != sbor.KindTuple {
		return model.LiquidityReceipt{}, fmt.Errorf("receipt data is %s, want Tuple", v.Kind)
	}
	if len(v.Fields) != receiptFieldCount {
		return model.LiquidityReceipt{}, fmt.Errorf("receipt data has %d fields, want %d", len(v.Fields), receiptFieldCount)
	}

	var (
		r   model.LiquidityReceipt
		err error
	)
	if r.Name, err = v.Fields[receiptFieldName].Text(); err != nil {
		return r, fmt.Errorf("name: %w", err)
	}
	if r.LockupPeriod, err = v.Fields[receiptFieldLockupPeriod].Text(); err != nil {
		return r, fmt.Errorf("lockup period: %w", err)
	}
	if r.PoolAddress, err = v.Fields[receiptFieldPoolAddress].Reference(); err != nil {
		return r, fmt.Errorf("pool address: %w", err)
	}
	if r.UserResource, err = v.Fields[receiptFieldUserResource].Reference(); err != nil {
		return r, fmt.Errorf("user resource address: %w", err)
	}
	if r.UserContribution, err = v.Fields[receiptFieldUserContribution].Decimal(); err != nil {
		return r, fmt.Errorf("user contribution amount: %w", err)
	}
	if r.Volatility, err = decodeVolatility(v.Fields[receiptFieldVolatility]); err != nil {
		return r, fmt.Errorf("volatility classification: %w", err)
	}
	if r.ProtocolContribution, err = v.Fields[receiptFieldProtocolContribution].Decimal(); err != nil {
		return r, fmt.Errorf("protocol contribution amount: %w", err)
	}
	if r.MaturityDate, err = v.Fields[receiptFieldMaturityDate].Instant(); err != nil {
		return r, fmt.Errorf("maturity date: %w", err)
	}
	r.AdapterPayload = v.Fields[receiptFieldAdapterPayload]
	return r, nil
}

func decodeVolatility(v sbor.Value) (model.Volatility, error) {
	id, name, err := v.Variant()
	if err != nil {
		return "", err
	}
	var vol model.Volatility
	switch id {
	case 0:
		vol = model.Volatile
	case 1:
		vol = model.NonVolatile
	default:
		return "", fmt.Errorf("unknown variant %d", id)
	}
	if name != "" && name != string(vol) {
		return "", fmt.Errorf("variant %d is named %q, want %q", id, name, vol)
	}
	return vol, nil
}
