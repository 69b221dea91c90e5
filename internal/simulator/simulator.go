package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ignitionPayout/internal/amount"
	"ignitionPayout/internal/gateway"
	"ignitionPayout/internal/manifest"
	"ignitionPayout/internal/model"
	"ignitionPayout/internal/payout"
)

// Instruction positions in the close-position manifest.
const (
	instructionProof = iota
	instructionWithdraw
	instructionClose
	instructionDeposit
	instructionPrice
)

// Field positions in the adapter's close output and the oracle's price output.
const (
	closeOutputFees = 2
	priceOutputRate = 0
	priceOutputTime = 1
)

// ErrPreviewFailed means the gateway executed the preview but it did not commit.
var ErrPreviewFailed = errors.New("transaction preview did not succeed")

// Gateway is the subset of the gateway API the simulator uses.
type Gateway interface {
	NonFungibleData(ctx context.Context, resource string, ids []string) (*gateway.NonFungibleDataResponse, error)
	PreviewTransaction(ctx context.Context, req gateway.PreviewRequest) (*gateway.PreviewResponse, error)
}

// Result is what a simulated close reports.
type Result struct {
	Outcome    model.CloseOutcome
	Price      payout.Price
	PriceTime  time.Time
	Manifest   string
	ReceiptLen int
}

// Simulator closes a liquidity position in a preview transaction.
type Simulator struct {
	cfg    Config
	gw     Gateway
	logger *zap.Logger
	now    func() time.Time
}

// New builds a Simulator. cfg must have been validated.
func New(cfg Config, gw Gateway, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{cfg: cfg, gw: gw, logger: logger, now: time.Now}
}

// GlobalID returns the non-fungible global id of the receipt localID.
func (s *Simulator) GlobalID(localID string) string {
	return gateway.GlobalID(s.cfg.ReceiptResource, localID)
}

// FetchReceipt loads and decodes the receipt data of the position localID.
func (s *Simulator) FetchReceipt(ctx context.Context, localID string) (model.LiquidityReceipt, error) {
	if err := gateway.ValidateLocalID(localID); err != nil {
		return model.LiquidityReceipt{}, err
	}

	resp, err := s.gw.NonFungibleData(ctx, s.cfg.ReceiptResource, []string{localID})
	if err != nil {
		return model.LiquidityReceipt{}, fmt.Errorf("fetch receipt data: %w", err)
	}

	var item *gateway.NonFungibleItem
	for i := range resp.NonFungibleIDs {
		if resp.NonFungibleIDs[i].NonFungibleID == localID {
			item = &resp.NonFungibleIDs[i]
			break
		}
	}
	if item == nil {
		return model.LiquidityReceipt{}, fmt.Errorf("receipt %s not found", localID)
	}
	if item.IsBurned || item.Data == nil {
		return model.LiquidityReceipt{}, fmt.Errorf("receipt %s has no data (burned=%t)", localID, item.IsBurned)
	}

	raw, err := item.Data.Bytes()
	if err != nil {
		return model.LiquidityReceipt{}, err
	}
	if len(raw) > 0 && raw[0] != scryptoPayloadPrefix {
		return model.LiquidityReceipt{}, fmt.Errorf("receipt data has payload prefix %#x", raw[0])
	}

	receipt, err := DecodeReceipt(item.Data.ProgrammaticJSON)
	if err != nil {
		return model.LiquidityReceipt{}, fmt.Errorf("decode receipt %s: %w", localID, err)
	}
	receipt.RawHex = item.Data.RawHex

	s.logger.Debug("receipt loaded",
		zap.String("local_id", localID),
		zap.String("pool", receipt.PoolAddress),
		zap.String("user_resource", receipt.UserResource),
		zap.String("user_contribution", receipt.UserContribution.String()),
		zap.Int("raw_bytes", len(raw)),
	)
	return receipt, nil
}

// CloseManifest builds the manifest that withdraws the position from the
// protocol, closes it through the adapter, deposits the proceeds, and asks the
// oracle for the user resource price.
func (s *Simulator) CloseManifest(receipt model.LiquidityReceipt, localID string) (string, error) {
	payload, err := manifest.RenderValue(receipt.AdapterPayload)
	if err != nil {
		return "", fmt.Errorf("render adapter payload: %w", err)
	}

	b := manifest.NewBuilder().
		CreateProofOfAmount(s.cfg.OwnerAccount, s.cfg.OwnerBadge, decimal.NewFromInt(1)).
		CallMethod(s.cfg.IgnitionComponent, "withdraw_pool_units",
			manifest.NonFungibleGlobalID(s.cfg.ReceiptResource, localID)).
		CallMethod(s.cfg.AdapterComponent, "close_liquidity_position",
			manifest.Address(receipt.PoolAddress),
			manifest.Expression(manifest.EntireWorktop),
			manifest.Raw(payload)).
		DepositBatch(s.cfg.DepositAccount).
		CallMethod(s.cfg.OracleComponent, "get_price",
			manifest.Address(receipt.UserResource),
			manifest.Address(s.cfg.ReserveResource))
	if b.Len() != instructionPrice+1 {
		return "", fmt.Errorf("close manifest has %d instructions", b.Len())
	}
	return b.Build()
}

// Simulate previews closing the position and extracts what it returned.
func (s *Simulator) Simulate(ctx context.Context, receipt model.LiquidityReceipt, localID string) (Result, error) {
	text, err := s.CloseManifest(receipt, localID)
	if err != nil {
		return Result{}, err
	}

	resp, err := s.gw.PreviewTransaction(ctx, gateway.PreviewRequest{
		Manifest:            text,
		StartEpochInclusive: s.cfg.StartEpoch,
		EndEpochExclusive:   s.cfg.StartEpoch + s.cfg.EpochWindow,
		Nonce:               uint32(s.now().Unix()),
		SignerPublicKeys:    []gateway.PublicKey{},
		Flags: gateway.PreviewFlags{
			UseFreeCredit:            true,
			AssumeAllSignatureProofs: true,
			SkipEpochCheck:           true,
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("preview close: %w", err)
	}
	if resp.Receipt.Status != gateway.StatusSucceeded {
		return Result{}, fmt.Errorf("%w: status %s: %s", ErrPreviewFailed, resp.Receipt.Status, resp.Receipt.ErrorMessage)
	}

	fees, err := extractFees(resp)
	if err != nil {
		return Result{}, err
	}
	price, priceTime, err := extractPrice(resp, receipt.UserResource, s.cfg.ReserveResource)
	if err != nil {
		return Result{}, err
	}
	returned, err := extractReturned(resp, s.cfg.DepositAccount)
	if err != nil {
		return Result{}, err
	}

	for _, l := range resp.Logs {
		s.logger.Debug("preview log", zap.String("level", l.Level), zap.String("message", l.Message))
	}

	return Result{
		Outcome:    model.CloseOutcome{Returned: returned, Fees: fees},
		Price:      price,
		PriceTime:  priceTime,
		Manifest:   text,
		ReceiptLen: len(resp.EncodedReceipt) / 2,
	}, nil
}

// Run fetches the receipt, simulates the close, and decides the payout.
func (s *Simulator) Run(ctx context.Context, localID string) (model.Report, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	receipt, err := s.FetchReceipt(ctx, localID)
	if err != nil {
		return model.Report{}, err
	}

	result, err := s.Simulate(ctx, receipt, localID)
	if err != nil {
		return model.Report{}, err
	}
	logger.Info("close simulated",
		zap.Int("returned_resources", len(result.Outcome.Returned)),
		zap.Int("fee_resources", len(result.Outcome.Fees)),
		zap.String("oracle_price", result.Price.Rate.String()),
		zap.Time("oracle_time", result.PriceTime),
		zap.Int("encoded_receipt_bytes", result.ReceiptLen),
	)

	returnedUser, ok := result.Outcome.ReturnedAmount(receipt.UserResource)
	if !ok {
		logger.Warn("user resource not returned by close, using zero", zap.String("resource", receipt.UserResource))
	}
	returnedReserve, ok := result.Outcome.ReturnedAmount(s.cfg.ReserveResource)
	if !ok {
		logger.Warn("reserve resource not returned by close, using zero", zap.String("resource", s.cfg.ReserveResource))
	}

	decision, err := payout.Compute(receipt, result.Outcome, result.Price)
	if err != nil {
		return model.Report{}, fmt.Errorf("compute payout: %w", err)
	}

	return NewReport(runID, s.GlobalID(localID), s.cfg.ReserveResource, receipt,
		returnedUser, returnedReserve, result.Outcome.FeeAmount(receipt.UserResource), result.Price, decision, s.now()), nil
}

// NewReport assembles a report from a payout decision and its inputs.
func NewReport(
	runID string,
	globalID string,
	reserve string,
	receipt model.LiquidityReceipt,
	returnedUser decimal.Decimal,
	returnedReserve decimal.Decimal,
	accruedFee decimal.Decimal,
	price payout.Price,
	decision payout.Decision,
	now time.Time,
) model.Report {
	return model.Report{
		RunID:           runID,
		GlobalID:        globalID,
		UserResource:    receipt.UserResource,
		ReserveResource: reserve,
		ContributedUser: receipt.UserContribution,
		ReturnedUser:    returnedUser,
		ReturnedReserve: returnedReserve,
		AccruedUserFee:  amount.ClampNonNegative(accruedFee),
		Price: model.PriceQuote{
			Base:  price.Base,
			Quote: price.Quote,
			Rate:  price.Rate,
		},
		ILProtected:     decision.ILProtected,
		Shortfall:       decision.Shortfall,
		RequiredReserve: decision.RequiredReserve,
		ReservePayout:   decision.ReservePayout,
		UserPayout:      decision.UserPayout,
		RealizedFee:     decision.RealizedFee,
		UndisbursedUser: decision.UndisbursedUser,
		GeneratedAt:     now.UTC(),
	}
}
