package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ignitionPayout/internal/config"
	"ignitionPayout/internal/report"
)

func runReceipt(cmd *cobra.Command, args []string) error {
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

	receipt, err := sim.FetchReceipt(ctx, localID)
	if err != nil {
		return err
	}
	return report.RenderReceipt(os.Stdout, sim.GlobalID(localID), receipt, format)
}

func runManifest(cmd *cobra.Command, args []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, localID, closeClient, err := newSimulator(cfg, args, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	receipt, err := sim.FetchReceipt(ctx, localID)
	if err != nil {
		return err
	}
	text, err := sim.CloseManifest(receipt, localID)
	if err != nil {
		return err
	}

	logger.Debug("manifest built", zap.String("receipt_id", localID), zap.String("pool", receipt.PoolAddress))
	_, err = fmt.Fprint(os.Stdout, text)
	return err
}
