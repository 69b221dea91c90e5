package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"ignitionPayout/internal/amount"
	"ignitionPayout/internal/payout"
)

// ComputeConfig holds configuration for the offline compute command.
type ComputeConfig struct {
	Contributed     string
	ReturnedUser    string
	ReturnedReserve string
	Fee             string
	Price           string
	UserResource    string
	ReserveResource string
	Format          string
	Out             string
	LogLevel        string
}

// LoadCompute merges .env, config file, environment variables, and flags into ComputeConfig.
func LoadCompute(cfgFile string, flags *pflag.FlagSet) (ComputeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"fee":              "0",
		"user-resource":    "user",
		"reserve-resource": DefaultReserveResource,
		"format":           "table",
		"log-level":        "info",
	})
	if err != nil {
		return ComputeConfig{}, err
	}

	cfg := ComputeConfig{
		Contributed:     v.GetString("contributed"),
		ReturnedUser:    v.GetString("returned-user"),
		ReturnedReserve: v.GetString("returned-reserve"),
		Fee:             v.GetString("fee"),
		Price:           v.GetString("price"),
		UserResource:    v.GetString("user-resource"),
		ReserveResource: v.GetString("reserve-resource"),
		Format:          v.GetString("format"),
		Out:             v.GetString("out"),
		LogLevel:        v.GetString("log-level"),
	}

	return cfg, nil
}

// Inputs parses the configured amounts. The price is quoted in reserve
// units per user unit.
func (c ComputeConfig) Inputs() (payout.Inputs, error) {
	if c.UserResource == c.ReserveResource {
		return payout.Inputs{}, fmt.Errorf("user and reserve resource are both %q", c.UserResource)
	}

	var in payout.Inputs
	fields := []struct {
		name     string
		value    string
		required bool
		dst      *decimal.Decimal
	}{
		{"contributed", c.Contributed, true, &in.Contributed},
		{"returned-user", c.ReturnedUser, true, &in.ReturnedUser},
		{"returned-reserve", c.ReturnedReserve, true, &in.ReturnedReserve},
		{"fee", c.Fee, false, &in.AccruedUserFee},
		{"price", c.Price, true, &in.Price.Rate},
	}
	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			if f.required {
				return payout.Inputs{}, fmt.Errorf("%s is required", f.name)
			}
			value = "0"
		}
		parsed, err := amount.Parse(value)
		if err != nil {
			return payout.Inputs{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = parsed
	}

	in.UserAsset = c.UserResource
	in.Price.Base = c.UserResource
	in.Price.Quote = c.ReserveResource
	return in, nil
}
