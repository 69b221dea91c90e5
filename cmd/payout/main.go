package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "payout",
		Short:        "Ignition liquidity position payout check",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run [receipt-id]",
		Short: "Simulate closing a position and compute its payout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPayout,
	}
	addGatewayFlags(runCmd)
	runCmd.Flags().String("format", "table", "output format (table, json, yaml)")
	runCmd.Flags().String("out", "", "append the report to this JSONL file")
	root.AddCommand(runCmd)

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a payout from known close amounts",
		Args:  cobra.NoArgs,
		RunE:  runCompute,
	}
	computeCmd.Flags().String("contributed", "", "user asset contributed when the position was opened")
	computeCmd.Flags().String("returned-user", "", "user asset returned by closing the position")
	computeCmd.Flags().String("returned-reserve", "", "reserve asset returned by closing the position")
	computeCmd.Flags().String("fee", "0", "fees accrued in the user asset")
	computeCmd.Flags().String("price", "", "oracle price, reserve units per user unit")
	computeCmd.Flags().String("user-resource", "user", "user resource address")
	computeCmd.Flags().String("reserve-resource", "", "reserve resource address")
	computeCmd.Flags().String("format", "table", "output format (table, json, yaml)")
	computeCmd.Flags().String("out", "", "append the report to this JSONL file")
	computeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(computeCmd)

	receiptCmd := &cobra.Command{
		Use:   "receipt [receipt-id]",
		Short: "Fetch and print the data of a position receipt",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReceipt,
	}
	addGatewayFlags(receiptCmd)
	receiptCmd.Flags().String("format", "table", "output format (table, json, yaml)")
	root.AddCommand(receiptCmd)

	manifestCmd := &cobra.Command{
		Use:   "manifest [receipt-id]",
		Short: "Print the manifest previewed to close a position",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runManifest,
	}
	addGatewayFlags(manifestCmd)
	root.AddCommand(manifestCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGatewayFlags(cmd *cobra.Command) {
	cmd.Flags().String("gateway-url", "", "gateway API base URL")
	cmd.Flags().String("network", "", "network name (mainnet, stokenet)")
	cmd.Flags().Duration("timeout", 30*time.Second, "gateway request timeout")
	cmd.Flags().String("receipt-resource", "", "liquidity receipt resource address")
	cmd.Flags().String("receipt-id", "", "receipt local id or global id")
	cmd.Flags().String("ignition", "", "protocol component address")
	cmd.Flags().String("oracle", "", "oracle component address")
	cmd.Flags().String("adapter", "", "exchange adapter component address")
	cmd.Flags().String("owner-account", "", "protocol owner account address")
	cmd.Flags().String("owner-badge", "", "protocol owner badge resource address")
	cmd.Flags().String("deposit-account", "", "account receiving the close proceeds (default owner account)")
	cmd.Flags().String("reserve-resource", "", "protocol reserve resource address")
	cmd.Flags().Uint64("start-epoch", 0, "preview start epoch")
	cmd.Flags().Uint64("epoch-window", 0, "preview epoch window")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
