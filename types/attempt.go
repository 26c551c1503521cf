package types

import "time"

// Terminal status of one arbitrage attempt.
const (
	AttemptSkipped   = "skipped"   // profit below threshold
	AttemptSimulated = "simulated" // dry-run via simulateTransaction
	AttemptSubmitted = "submitted" // bundle sent, confirmation not awaited
	AttemptLanded    = "landed"    // bundle confirmed on chain
	AttemptFailed    = "failed"    // any stage error, see logs by executionId
)

// ArbAttempt is the history record of one evaluation cycle.
type ArbAttempt struct {
	ExecutionId  string    `ch:"executionId" json:"executionId"`
	Mint         string    `ch:"mint" json:"mint"`
	AmountIn     uint64    `ch:"amountIn" json:"amountIn"`
	Profit       int64     `ch:"profit" json:"profit"`
	TipLamports  uint64    `ch:"tipLamports" json:"tipLamports"`
	Status       string    `ch:"status" json:"status"`
	BundleId     string    `ch:"bundleId" json:"bundleId"`
	Transactions []string  `ch:"transactions" json:"transactions"`
	Timestamp    time.Time `ch:"timestamp" json:"timestamp"`
}

type ArbAttempts []*ArbAttempt
