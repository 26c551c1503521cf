package sol

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	lookup "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/viper"

	"arber/config"
	"arber/logger"
	"arber/utils"
)

// ChainClient is the slice of the RPC surface the transaction compiler
// needs. *rpc.Client satisfies it; tests inject fakes.
type ChainClient interface {
	GetMultipleAccounts(ctx context.Context, accounts ...solana.PublicKey) (*rpc.GetMultipleAccountsResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
}

// IsSimulateOnly reports whether TX_SIMULATE dry-run mode is on.
func IsSimulateOnly() bool {
	return viper.GetBool("TX_SIMULATE")
}

// NewTransactionWithLookupTables compiles instructions into a signed v0
// transaction, compacting account references through the given address
// lookup tables.
//
// A table whose backing account is missing or does not decode is skipped,
// not fatal: losing a table only shrinks the compaction benefit.
func NewTransactionWithLookupTables(
	ctx context.Context,
	client ChainClient,
	instructions []solana.Instruction,
	tableKeys []solana.PublicKey,
	payer solana.PrivateKey,
) (*solana.Transaction, error) {
	tables := make(map[solana.PublicKey]solana.PublicKeySlice, len(tableKeys))
	if len(tableKeys) > 0 {
		result, err := client.GetMultipleAccounts(ctx, tableKeys...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch lookup table accounts: %w", utils.ErrCompilationFailed, err)
		}
		for i, account := range result.Value {
			if account == nil || account.Data == nil {
				logger.ArbLogger.Warn("Lookup table account missing, skipping", "table", tableKeys[i])
				continue
			}
			state, err := lookup.DecodeAddressLookupTableState(account.Data.GetBinary())
			if err != nil {
				logger.ArbLogger.Warn("Failed to decode lookup table, skipping", "table", tableKeys[i], "err", err)
				continue
			}
			tables[tableKeys[i]] = state.Addresses
		}
	}

	recent, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch latest blockhash: %w", utils.ErrCompilationFailed, err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(payer.PublicKey()),
		solana.TransactionAddressTables(tables),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compile message: %w", utils.ErrCompilationFailed, err)
	}

	if err := SignTransaction(tx, payer); err != nil {
		return nil, err
	}
	return tx, nil
}

// SignTransaction signs tx with the payer key in place.
func SignTransaction(tx *solana.Transaction, payer solana.PrivateKey) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer.PublicKey()) {
			return &payer
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", utils.ErrSigningFailed, err)
	}
	return nil
}

// SimulateTransaction runs the transaction against the node without
// submitting it and logs the program output. A non-nil program error is
// returned as a failure.
func SimulateTransaction(ctx context.Context, client *rpc.Client, tx *solana.Transaction) error {
	result, err := client.SimulateTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("simulateTransaction failed: %w", err)
	}
	for _, line := range result.Value.Logs {
		logger.ArbLogger.Info(line)
	}
	if result.Value.Err != nil {
		return fmt.Errorf("simulation returned error: %v", result.Value.Err)
	}
	return nil
}

// SendAndConfirmTransaction submits a signed transaction and polls its
// signature status until finalization or timeout.
func SendAndConfirmTransaction(ctx context.Context, client *rpc.Client, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := client.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %w", utils.ErrSubmissionFailed, err)
	}
	logger.ArbLogger.Info("Transaction sent", "signature", sig)

	start := time.Now()
	for {
		if time.Since(start) > config.SwapConfirmTimeout {
			return sig, fmt.Errorf("%w: signature %s", utils.ErrConfirmationTimeout, sig)
		}

		statuses, err := client.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			logger.ArbLogger.Warn("getSignatureStatuses failed, retrying", "err", err)
			time.Sleep(config.SwapConfirmPollInterval)
			continue
		}
		if len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				return sig, fmt.Errorf("transaction failed on chain: %v", status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return sig, nil
			}
		}
		time.Sleep(config.SwapConfirmPollInterval)
	}
}
