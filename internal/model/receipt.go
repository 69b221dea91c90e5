package model

import (
	"time"

	"github.com/shopspring/decimal"

	"ignitionPayout/internal/sbor"
)

// Volatility is the classification the protocol assigned to the user resource.
type Volatility string

const (
	Volatile    Volatility = "Volatile"
	NonVolatile Volatility = "NonVolatile"
)

// LiquidityReceipt is the immutable record stored on a position's receipt token.
type LiquidityReceipt struct {
	Name                 string          `json:"name" yaml:"name"`
	LockupPeriod         string          `json:"lockup_period" yaml:"lockup_period"`
	PoolAddress          string          `json:"pool_address" yaml:"pool_address"`
	UserResource         string          `json:"user_resource_address" yaml:"user_resource_address"`
	UserContribution     decimal.Decimal `json:"user_contribution_amount" yaml:"user_contribution_amount"`
	Volatility           Volatility      `json:"user_resource_volatility_classification" yaml:"user_resource_volatility_classification"`
	ProtocolContribution decimal.Decimal `json:"protocol_contribution_amount" yaml:"protocol_contribution_amount"`
	MaturityDate         time.Time       `json:"maturity_date" yaml:"maturity_date"`
	// AdapterPayload is interpreted only by the exchange adapter managing the pool.
	AdapterPayload sbor.Value `json:"adapter_specific_information" yaml:"-"`
	RawHex         string     `json:"raw_hex,omitempty" yaml:"-"`
}
