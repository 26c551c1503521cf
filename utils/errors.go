package utils

import "errors"

// Failure taxonomy for one arbitrage attempt. Every stage wraps its cause
// with one of these sentinels so callers can classify with errors.Is.
var (
	// The buy leg must spend the native mint (WSOL).
	ErrUnsupportedDirection = errors.New("only swaps from the native mint are supported")

	// The quoting service failed or returned an unusable response.
	// Safe to retry on the next tick.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// Account resolution, blockhash fetch or message compilation failed.
	ErrCompilationFailed = errors.New("transaction compilation failed")

	// Signing with the payer key failed. Not retryable within the attempt.
	ErrSigningFailed = errors.New("transaction signing failed")

	// The relay rejected the bundle outright.
	ErrSubmissionFailed = errors.New("bundle submission failed")

	// The bundle did not land before the confirmation deadline. The trade
	// may still land afterwards; never conflate with ErrSubmissionFailed.
	ErrConfirmationTimeout = errors.New("bundle confirmation timed out")
)
