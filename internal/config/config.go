package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ignitionPayout/internal/gateway"
	"ignitionPayout/internal/simulator"
)

// Mainnet deployment of the protocol.
const (
	DefaultGatewayURL        = "https://mainnet.radixdlt.com"
	DefaultNetwork           = "mainnet"
	DefaultReceiptResource   = "resource_rdx1n2uzpxdlg90ajqy9r597xkffeefhacl8hqd6kpvmfmt56wlda0dzk9"
	DefaultReceiptID         = "{29de6fbdb0ba2dda-4c3c88c857022ead-a5c6381a54f02f2c-bd1e1eea22df0ea8}"
	DefaultIgnition          = "component_rdx1cqplswlzpvw9yx687mcnvjuguy24veqk4c55rscjxl3pll7rxfs2dz"
	DefaultOracle            = "component_rdx1cr3psyfptwkktqusfg8ngtupr4wwfg32kz2xvh9tqh4c7pwkvlk2kn"
	DefaultAdapter           = "component_rdx1cpjs0phmgzwmhxel74l256zqdp39d2rfvj6m54e5k758k2vma8grp9"
	DefaultOwnerAccount      = "account_rdx16ykaehfl0suwzy9tvtlhgds7td8ynwx4jk3q4czaucpf6m4pps9yr4"
	DefaultOwnerBadge        = "resource_rdx1t5ezhhs9cnua2thfnknmpj2rysz0rtwpexvjhvylww2ng5h3makwma"
	DefaultReserveResource   = "resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd"
	DefaultStartEpoch        = uint64(200)
	DefaultEpochWindow       = uint64(10)
)

const envPrefix = "PAYOUT"

// Config holds configuration for the commands that talk to the gateway.
type Config struct {
	GatewayURL      string
	Network         string
	Timeout         time.Duration
	ReceiptResource string
	ReceiptID       string
	Ignition        string
	Oracle          string
	Adapter         string
	OwnerAccount    string
	OwnerBadge      string
	DepositAccount  string
	ReserveResource string
	StartEpoch      uint64
	EpochWindow     uint64
	Format          string
	Out             string
	LogLevel        string
}

// Load merges .env, config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"gateway-url":      DefaultGatewayURL,
		"network":          DefaultNetwork,
		"timeout":          30 * time.Second,
		"receipt-resource": DefaultReceiptResource,
		"receipt-id":       DefaultReceiptID,
		"ignition":         DefaultIgnition,
		"oracle":           DefaultOracle,
		"adapter":          DefaultAdapter,
		"owner-account":    DefaultOwnerAccount,
		"owner-badge":      DefaultOwnerBadge,
		"reserve-resource": DefaultReserveResource,
		"start-epoch":      DefaultStartEpoch,
		"epoch-window":     DefaultEpochWindow,
		"format":           "table",
		"log-level":        "info",
	})
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		GatewayURL:      strings.TrimRight(v.GetString("gateway-url"), "/"),
		Network:         v.GetString("network"),
		Timeout:         v.GetDuration("timeout"),
		ReceiptResource: v.GetString("receipt-resource"),
		ReceiptID:       strings.TrimSpace(v.GetString("receipt-id")),
		Ignition:        v.GetString("ignition"),
		Oracle:          v.GetString("oracle"),
		Adapter:         v.GetString("adapter"),
		OwnerAccount:    v.GetString("owner-account"),
		OwnerBadge:      v.GetString("owner-badge"),
		DepositAccount:  v.GetString("deposit-account"),
		ReserveResource: v.GetString("reserve-resource"),
		StartEpoch:      v.GetUint64("start-epoch"),
		EpochWindow:     v.GetUint64("epoch-window"),
		Format:          v.GetString("format"),
		Out:             v.GetString("out"),
		LogLevel:        v.GetString("log-level"),
	}

	return cfg, nil
}

// SimulatorConfig resolves the network and validates every address.
func (c Config) SimulatorConfig() (simulator.Config, error) {
	if c.GatewayURL == "" {
		return simulator.Config{}, errors.New("gateway url is required")
	}
	if c.ReceiptID == "" {
		return simulator.Config{}, errors.New("receipt id is required")
	}
	network, err := gateway.LookupNetwork(c.Network)
	if err != nil {
		return simulator.Config{}, err
	}

	sc := simulator.Config{
		Network:           network,
		ReceiptResource:   c.ReceiptResource,
		IgnitionComponent: c.Ignition,
		OracleComponent:   c.Oracle,
		AdapterComponent:  c.Adapter,
		OwnerAccount:      c.OwnerAccount,
		OwnerBadge:        c.OwnerBadge,
		DepositAccount:    c.DepositAccount,
		ReserveResource:   c.ReserveResource,
		StartEpoch:        c.StartEpoch,
		EpochWindow:       c.EpochWindow,
	}
	if err := sc.Validate(); err != nil {
		return simulator.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return sc, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]any) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
