package config

import "time"

// Path config
const (
	LogPath    = "./logs/"
	ConfigPath = "./"
)

// Quote config
const (
	// Decay factors model adverse slippage between quoting and execution.
	// Anything outside (0, 1] is clamped back to no decay.
	DefaultBuyDecay  = 1.0
	DefaultSellDecay = 1.0

	// Zero tolerance: the merged round trip must return principal + tip.
	ArbSlippageBps = 0

	// The one-shot swap command trades with real slippage room.
	SwapSlippageBps = 500
)

// Jito config
const (
	// Jito refuses bundles tipping below 1000 lamports.
	MinTipLamports = 1000
	// Hard ceiling on a single tip: 0.1 SOL.
	MaxTipLamports = 100_000_000

	// Confirmation poll for freshly submitted arbitrage bundles.
	BundlePollInterval   = 1 * time.Second
	BundleConfirmTimeout = 10 * time.Second

	// The standalone bundle command looks up older bundles, which the
	// relay surfaces slowly; poll patiently.
	BundleQueryPollInterval = 5 * time.Second
	BundleQueryTimeout      = 30 * time.Second
)

// Swap confirmation config
const (
	SwapConfirmPollInterval = 500 * time.Millisecond
	SwapConfirmTimeout      = 60 * time.Second
)
