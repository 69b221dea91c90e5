package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ignitionPayout/internal/config"
	"ignitionPayout/internal/model"
	"ignitionPayout/internal/payout"
	"ignitionPayout/internal/report"
	"ignitionPayout/internal/simulator"
)

func runCompute(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCompute(cfgFile, cmd.Flags())
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

	in, err := cfg.Inputs()
	if err != nil {
		return err
	}

	logger.Info("compute start",
		zap.String("user_resource", in.UserAsset),
		zap.String("contributed", in.Contributed.String()),
		zap.String("returned_user", in.ReturnedUser.String()),
		zap.String("returned_reserve", in.ReturnedReserve.String()),
		zap.String("price", in.Price.Rate.String()),
	)

	decision, err := payout.Calculate(in)
	if err != nil {
		return err
	}

	receipt := model.LiquidityReceipt{UserResource: in.UserAsset, UserContribution: in.Contributed}
	rep := simulator.NewReport(uuid.NewString(), "", cfg.ReserveResource, receipt,
		in.ReturnedUser, in.ReturnedReserve, in.AccruedUserFee, in.Price, decision, time.Now())

	if err := writeReport(rep, format, cfg.Out); err != nil {
		return err
	}

	logger.Info("compute complete",
		zap.String("run_id", rep.RunID),
		zap.Bool("il_protected", rep.ILProtected),
	)
	return nil
}
