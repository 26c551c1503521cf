package arb

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"arber/config"
	"arber/db"
	"arber/jito"
	"arber/jup"
	"arber/logger"
	"arber/sol"
	"arber/types"
	"arber/utils"
)

// RunParams configures the opportunity loop.
type RunParams struct {
	Mint                solana.PublicKey
	AmountInLamports    uint64
	Interval            time.Duration
	MinProfitLamports   uint64
	PartnerFeeFraction  float64
	WaitForConfirmation bool
}

// RunArb dispatches one independent evaluation per tick, never awaiting
// the previous one. Concurrent overlapping attempts on the same mint are
// expected; the chain decides which bundle lands first.
func RunArb(params RunParams, store db.Database) error {
	payer, err := sol.GetPayer()
	if err != nil {
		return err
	}

	jupClient := jup.NewClient()
	jitoClient := jito.NewClient()
	if err := jitoClient.InitTipAccounts(); err != nil {
		return err
	}

	// Sampled once at startup; a stale floor only misprices the tip, it
	// never blocks trading.
	tipFloor, err := jito.GetTipFloorLamports()
	if err != nil {
		logger.JitoLogger.Warn("Failed to fetch tip floor, using minimum", "err", err)
		tipFloor = config.MinTipLamports
	}

	buyDecay := decayFromEnv("BUY_DECAY", config.DefaultBuyDecay)
	sellDecay := decayFromEnv("SELL_DECAY", config.DefaultSellDecay)
	logger.ArbLogger.Info("Starting opportunity loop",
		"mint", params.Mint,
		"amountIn", params.AmountInLamports,
		"interval", params.Interval,
		"minProfitSol", utils.ToUiAmount(params.MinProfitLamports),
		"buyDecay", buyDecay,
		"sellDecay", sellDecay,
		"tipFloorSol", utils.ToUiAmount(tipFloor),
		"simulateOnly", sol.IsSimulateOnly(),
	)

	ticker := time.NewTicker(params.Interval)
	defer ticker.Stop()
	for {
		go runAttempt(jupClient, jitoClient, payer, params, buyDecay, sellDecay, tipFloor, store)
		<-ticker.C
	}
}

func decayFromEnv(key string, fallback float64) float64 {
	if !viper.IsSet(key) {
		return fallback
	}
	return clampDecay(viper.GetFloat64(key))
}

// runAttempt is one evaluation cycle. Any failure aborts this attempt only.
func runAttempt(
	jupClient *jup.Client,
	jitoClient *jito.Client,
	payer solana.PrivateKey,
	params RunParams,
	buyDecay, sellDecay float64,
	tipFloor uint64,
	store db.Database,
) {
	executionId := uuid.NewString()
	log := logger.ArbLogger.With("executionId", executionId)

	attempt := &types.ArbAttempt{
		ExecutionId: executionId,
		Mint:        params.Mint.String(),
		AmountIn:    params.AmountInLamports,
		Status:      types.AttemptFailed,
		Timestamp:   time.Now(),
	}
	defer recordAttempt(store, attempt)

	rpcClient, err := sol.GetRpcClient()
	if err != nil {
		log.Warn("Failed to get RPC client", "err", err)
		return
	}

	profit, buyQuote, sellQuote, err := CalculateProfit(
		jupClient,
		params.AmountInLamports,
		sol.WSOL,
		params.Mint,
		jup.AllVenues(),
		buyDecay, sellDecay,
		params.PartnerFeeFraction,
	)
	if err != nil {
		log.Warn("Profit calculation failed", "err", err)
		return
	}
	attempt.Profit = profit

	profitSol := utils.ToUiAmountSigned(profit)
	if profit < int64(params.MinProfitLamports) {
		log.Debug("⏭️ Skip: profit too small", "mint", params.Mint, "profitSol", profitSol)
		attempt.Status = types.AttemptSkipped
		return
	}
	log.Info("💰 Found opportunity", "mint", params.Mint, "profitSol", profitSol)

	// Half the edge goes to the relay, never less than the going floor;
	// the bundle keeps the rest.
	tipLamports := max(uint64(profit)/2, tipFloor)
	tipLamports = jito.ClampTip(tipLamports)
	attempt.TipLamports = tipLamports

	tipAccount, err := jito.GetTipAccount()
	if err != nil {
		log.Warn("Failed to pick tip account", "err", err)
		return
	}
	log.Info("💎 Tipping relay", "tipAccount", tipAccount, "tipSol", utils.ToUiAmount(tipLamports))
	tipInstruction := system.NewTransferInstruction(tipLamports, payer.PublicKey(), tipAccount).Build()

	mergedQuote := MergeQuotes(buyQuote, sellQuote, params.AmountInLamports, tipLamports)
	log.Debug("Merged round-trip quote",
		"outAmount", mergedQuote.OutAmount,
		"otherAmountThreshold", mergedQuote.OtherAmountThreshold,
	)

	useSharedAccounts := false
	swapInstructions, err := jupClient.SwapInstructions(payer.PublicKey(), mergedQuote, jup.SwapConfig{
		WrapAndUnwrapSol:        true,
		DynamicComputeUnitLimit: true,
		UseSharedAccounts:       &useSharedAccounts,
	})
	if err != nil {
		log.Warn("Failed to fetch swap instructions", "err", err)
		return
	}

	instructions := BuildInstructions(swapInstructions, tipInstruction)

	ctx := context.Background()
	tx, err := sol.NewTransactionWithLookupTables(ctx, rpcClient, instructions, swapInstructions.AddressLookupTableAddresses, payer)
	if err != nil {
		log.Warn("Failed to compile transaction", "err", err)
		return
	}

	if sol.IsSimulateOnly() {
		if err := sol.SimulateTransaction(ctx, rpcClient, tx); err != nil {
			log.Warn("Simulation failed", "err", err)
			return
		}
		log.Info("🧪 Simulation succeeded, no bundle submitted")
		attempt.Status = types.AttemptSimulated
		return
	}

	bundleId, signatures, err := jitoClient.SubmitAndConfirm(
		[]*solana.Transaction{tx},
		payer,
		params.WaitForConfirmation,
		config.BundlePollInterval,
		config.BundleConfirmTimeout,
	)
	attempt.BundleId = bundleId
	if err != nil {
		if errors.Is(err, utils.ErrConfirmationTimeout) {
			// Ambiguous: the bundle is out and may still land.
			log.Warn("⏳ Bundle confirmation timed out, outcome unobserved", "bundleId", bundleId, "err", err)
			attempt.Status = types.AttemptSubmitted
			return
		}
		log.Warn("⚠️ Failed to execute arbitrage", "err", err)
		return
	}

	attempt.Transactions = signatures
	if params.WaitForConfirmation {
		attempt.Status = types.AttemptLanded
		log.Info("🚀 Arbitrage landed", "bundleId", bundleId, "txs", signatures)
	} else {
		attempt.Status = types.AttemptSubmitted
		log.Info("🚀 Arbitrage bundle dispatched", "bundleId", bundleId)
	}
}

// recordAttempt writes the attempt to history. Best-effort only.
func recordAttempt(store db.Database, attempt *types.ArbAttempt) {
	if store == nil {
		return
	}
	if err := store.InsertArbAttempts(types.ArbAttempts{attempt}); err != nil {
		logger.ArbLogger.Warn("Failed to record attempt", "executionId", attempt.ExecutionId, "err", err)
	}
}
