package jito

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"arber/logger"
	"arber/sol"
	"arber/utils"
)

// SubmitAndConfirm drives one bundle through its lifecycle:
// sign each transaction, submit the bundle atomically, then either return
// immediately (fire-and-forget) or poll until landed or timeout.
//
// Returns the relay bundle id and the landed transaction signatures;
// signatures are empty when confirmation was not awaited.
func (c *Client) SubmitAndConfirm(
	txs []*solana.Transaction,
	payer solana.PrivateKey,
	waitForConfirmation bool,
	pollInterval, timeout time.Duration,
) (string, []string, error) {
	for _, tx := range txs {
		if err := sol.SignTransaction(tx, payer); err != nil {
			return "", nil, err
		}
	}

	start := time.Now()
	bundleId, err := c.SendBundle(txs)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", utils.ErrSubmissionFailed, err)
	}
	logger.JitoLogger.Info("Bundle submitted", "bundleId", bundleId, "txCount", len(txs))

	if !waitForConfirmation {
		return bundleId, []string{}, nil
	}

	signatures, err := WaitForBundleConfirmation(c.fetchStatuses, bundleId, pollInterval, timeout)
	if err != nil {
		return bundleId, nil, err
	}
	logger.JitoLogger.Info("Bundle confirmed", "bundleId", bundleId, "elapsed", time.Since(start))
	return bundleId, signatures, nil
}

func (c *Client) fetchStatuses(bundleId string) ([]BundleStatus, error) {
	return c.GetBundleStatuses([]string{bundleId})
}
