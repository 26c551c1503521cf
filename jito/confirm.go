package jito

import (
	"fmt"
	"time"

	"arber/logger"
	"arber/utils"
)

// FetchStatusesFunc returns the relay's current view of a bundle id.
// Injected so the confirmation loop is testable without a relay.
type FetchStatusesFunc func(bundleId string) ([]BundleStatus, error)

// Relay confirmation levels that count as landed.
const (
	ConfirmationStatusConfirmed = "confirmed"
	ConfirmationStatusFinalized = "finalized"
)

// WaitForBundleConfirmation polls the relay at a fixed interval until the
// bundle lands or the timeout elapses.
//
// The status endpoint is eventually consistent: a bundle id can be absent
// from responses long after submission. Poll transport errors are therefore
// treated as "not resolved yet", never as failure. Submission is never
// retried here; a fresh attempt is the unit of retry.
func WaitForBundleConfirmation(fetch FetchStatusesFunc, bundleId string, interval, timeout time.Duration) ([]string, error) {
	start := time.Now()
	for {
		if time.Since(start) > timeout {
			return nil, fmt.Errorf("%w: bundle %s not confirmed within %s", utils.ErrConfirmationTimeout, bundleId, timeout)
		}

		statuses, err := fetch(bundleId)
		if err != nil {
			logger.JitoLogger.Warn("Failed to fetch bundle statuses, will retry", "bundleId", bundleId, "err", err)
		} else {
			for _, status := range statuses {
				if status.BundleId != bundleId {
					continue
				}
				if errVal := statusErr(status.Err); errVal != nil {
					logger.JitoLogger.Warn("Bundle reported error, still polling", "bundleId", bundleId, "err", errVal)
					continue
				}
				if landed(status) {
					logger.JitoLogger.Info("Bundle landed",
						"bundleId", bundleId,
						"slot", status.Slot,
						"status", status.ConfirmationStatus,
						"txs", status.Transactions,
					)
					return status.Transactions, nil
				}
				logger.JitoLogger.Debug("Bundle not yet confirmed", "bundleId", bundleId, "status", status.ConfirmationStatus)
			}
		}

		time.Sleep(interval)
	}
}

// statusErr unwraps the relay's Rust-style result encoding of the err
// field. Success arrives as {"Ok": null} (or absent), not as a JSON null,
// so a non-nil value alone does not mean failure.
func statusErr(v any) any {
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if len(m) == 0 {
		return nil
	}
	if inner, found := m["Ok"]; found && len(m) == 1 {
		return inner
	}
	if inner, found := m["Err"]; found {
		return inner
	}
	return v
}

func landed(status BundleStatus) bool {
	if len(status.Transactions) == 0 {
		return false
	}
	return status.ConfirmationStatus == ConfirmationStatusConfirmed ||
		status.ConfirmationStatus == ConfirmationStatusFinalized
}
