package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ignitionPayout/internal/config"
	"ignitionPayout/internal/gateway"
	"ignitionPayout/internal/model"
	"ignitionPayout/internal/report"
	"ignitionPayout/internal/simulator"
	"ignitionPayout/internal/storage"
)

func runPayout(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, localID, closeClient, err := newSimulator(cfg, args, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	logger.Info("payout start",
		zap.String("gateway", cfg.GatewayURL),
		zap.String("network", cfg.Network),
		zap.String("receipt_id", localID),
		zap.Uint64("start_epoch", cfg.StartEpoch),
	)

	rep, err := sim.Run(ctx, localID)
	if err != nil {
		return err
	}

	if err := writeReport(rep, format, cfg.Out); err != nil {
		return err
	}

	logger.Info("payout complete",
		zap.String("run_id", rep.RunID),
		zap.Bool("il_protected", rep.ILProtected),
		zap.String("reserve_payout", rep.ReservePayout.String()),
		zap.String("user_payout", rep.UserPayout.String()),
		zap.String("realized_fee", rep.RealizedFee.String()),
	)
	return nil
}

// newSimulator validates the gateway configuration and resolves the receipt
// id from args or config. A global id overrides the configured receipt resource.
func newSimulator(cfg config.Config, args []string, logger *zap.Logger) (*simulator.Simulator, string, func(), error) {
	if len(args) > 0 {
		cfg.ReceiptID = strings.TrimSpace(args[0])
	}

	localID := cfg.ReceiptID
	if strings.Contains(cfg.ReceiptID, ":") {
		network, err := gateway.LookupNetwork(cfg.Network)
		if err != nil {
			return nil, "", nil, err
		}
		resource, id, err := network.ParseGlobalID(cfg.ReceiptID)
		if err != nil {
			return nil, "", nil, err
		}
		cfg.ReceiptResource = resource
		localID = id
	}

	simCfg, err := cfg.SimulatorConfig()
	if err != nil {
		return nil, "", nil, err
	}

	client, err := gateway.NewClient(cfg.GatewayURL, cfg.Timeout)
	if err != nil {
		return nil, "", nil, fmt.Errorf("gateway client: %w", err)
	}

	return simulator.New(simCfg, client, logger), localID, client.Close, nil
}

func writeReport(rep model.Report, format report.Format, out string) error {
	if out != "" {
		if err := storage.NewJsonlStorage(out).PutReports([]model.Report{rep}); err != nil {
			return err
		}
	}
	return report.Render(os.Stdout, rep, format)
}
