package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultGatewayURL, cfg.GatewayURL)
	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultReceiptID, cfg.ReceiptID)
	assert.Equal(t, DefaultStartEpoch, cfg.StartEpoch)
	assert.Equal(t, "table", cfg.Format)

	sc, err := cfg.SimulatorConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultOwnerAccount, sc.DepositAccount)
	assert.Equal(t, "rdx", sc.Network.HRPSuffix)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway-url: https://file.example/\nstart-epoch: 300\nformat: yaml\n"), 0o644))

	t.Setenv("PAYOUT_START_EPOCH", "400")
	t.Setenv("PAYOUT_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.String("format", "table", "")
	require.NoError(t, flags.Parse([]string{"--format", "json"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", cfg.GatewayURL)
	assert.Equal(t, uint64(400), cfg.StartEpoch)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestSimulatorConfigValidation(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	bad := cfg
	bad.Network = "devnet"
	_, err = bad.SimulatorConfig()
	require.Error(t, err)

	bad = cfg
	bad.ReceiptID = ""
	_, err = bad.SimulatorConfig()
	require.Error(t, err)

	bad = cfg
	bad.Network = "stokenet"
	_, err = bad.SimulatorConfig()
	require.Error(t, err, "mainnet addresses are rejected on stokenet")

	bad = cfg
	bad.Oracle = DefaultOwnerAccount
	_, err = bad.SimulatorConfig()
	require.Error(t, err)
}

func TestComputeInputs(t *testing.T) {
	flags := pflag.NewFlagSet("compute", pflag.ContinueOnError)
	flags.String("contributed", "", "")
	flags.String("returned-user", "", "")
	flags.String("returned-reserve", "", "")
	flags.String("price", "", "")
	flags.String("user-resource", "", "")
	require.NoError(t, flags.Parse([]string{
		"--contributed", "1000",
		"--returned-user", "600",
		"--returned-reserve", "500",
		"--price", "2",
		"--user-resource", "resource_rdx1user",
	}))

	cfg, err := LoadCompute("", flags)
	require.NoError(t, err)

	in, err := cfg.Inputs()
	require.NoError(t, err)
	assert.Equal(t, "resource_rdx1user", in.UserAsset)
	assert.Equal(t, "1000", in.Contributed.String())
	assert.Equal(t, "600", in.ReturnedUser.String())
	assert.Equal(t, "500", in.ReturnedReserve.String())
	assert.True(t, in.AccruedUserFee.IsZero())
	assert.Equal(t, "2", in.Price.Rate.String())
	assert.Equal(t, "resource_rdx1user", in.Price.Base)
	assert.Equal(t, DefaultReserveResource, in.Price.Quote)
}

func TestComputeInputsErrors(t *testing.T) {
	valid := ComputeConfig{
		Contributed:     "1",
		ReturnedUser:    "1",
		ReturnedReserve: "1",
		Price:           "1",
		UserResource:    "a",
		ReserveResource: "b",
	}
	_, err := valid.Inputs()
	require.NoError(t, err)

	missing := valid
	missing.Price = " "
	_, err = missing.Inputs()
	require.ErrorContains(t, err, "price is required")

	garbage := valid
	garbage.Fee = "ten"
	_, err = garbage.Inputs()
	require.ErrorContains(t, err, "fee")

	same := valid
	same.ReserveResource = "a"
	_, err = same.Inputs()
	require.Error(t, err)
}
