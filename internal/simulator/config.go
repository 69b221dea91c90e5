package simulator

import (
	"fmt"

	"ignitionPayout/internal/gateway"
)

// Config holds the ledger addresses the close simulation needs.
type Config struct {
	Network           gateway.Network
	ReceiptResource   string
	IgnitionComponent string
	OracleComponent   string
	AdapterComponent  string
	OwnerAccount      string
	OwnerBadge        string
	DepositAccount    string
	ReserveResource   string
	StartEpoch        uint64
	EpochWindow       uint64
}

// Validate checks every address against the configured network.
func (c *Config) Validate() error {
	if c.Network.HRPSuffix == "" {
		return fmt.Errorf("network is required")
	}
	if c.DepositAccount == "" {
		c.DepositAccount = c.OwnerAccount
	}
	if c.EpochWindow == 0 {
		c.EpochWindow = 10
	}

	checks := []struct {
		name     string
		value    string
		entities []string
	}{
		{"receipt resource", c.ReceiptResource, []string{gateway.EntityResource}},
		{"ignition component", c.IgnitionComponent, []string{gateway.EntityComponent}},
		{"oracle component", c.OracleComponent, []string{gateway.EntityComponent}},
		{"adapter component", c.AdapterComponent, []string{gateway.EntityComponent}},
		{"owner account", c.OwnerAccount, []string{gateway.EntityAccount}},
		{"owner badge", c.OwnerBadge, []string{gateway.EntityResource}},
		{"deposit account", c.DepositAccount, []string{gateway.EntityAccount}},
		{"reserve resource", c.ReserveResource, []string{gateway.EntityResource}},
	}
	for _, check := range checks {
		if _, err := c.Network.ParseAddress(check.value, check.entities...); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}
	return nil
}
