package types

import (
	"github.com/gagliardetto/solana-go"
)

// QuoteResponse is one directed swap route returned by the Jupiter v6 quote
// API. Amount fields arrive as quoted decimal strings on the wire.
//
// OutAmount and OtherAmountThreshold are populated by the quoting service
// and must only be touched by the decay adjustment (arb.CalculateProfit) or
// the round-trip merge (arb.MergeQuotes).
type QuoteResponse struct {
	InputMint            solana.PublicKey `json:"inputMint"`
	InAmount             uint64           `json:"inAmount,string"`
	OutputMint           solana.PublicKey `json:"outputMint"`
	OutAmount            uint64           `json:"outAmount,string"`
	OtherAmountThreshold uint64           `json:"otherAmountThreshold,string"`
	SwapMode             string           `json:"swapMode,omitempty"`
	SlippageBps          uint64           `json:"slippageBps"`
	PlatformFee          *PlatformFee     `json:"platformFee,omitempty"`
	PriceImpactPct       string           `json:"priceImpactPct"`
	RoutePlan            []RoutePlanStep  `json:"routePlan"`
	ContextSlot          uint64           `json:"contextSlot,omitempty"`
	TimeTaken            float64          `json:"timeTaken,omitempty"`
}

type PlatformFee struct {
	Amount uint64 `json:"amount,string"`
	FeeBps uint64 `json:"feeBps"`
}

// RoutePlanStep is one hop of a routed swap.
type RoutePlanStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  uint8    `json:"percent"`
}

type SwapInfo struct {
	AmmKey     solana.PublicKey `json:"ammKey"`
	Label      string           `json:"label,omitempty"`
	InputMint  solana.PublicKey `json:"inputMint"`
	OutputMint solana.PublicKey `json:"outputMint"`
	InAmount   uint64           `json:"inAmount,string"`
	OutAmount  uint64           `json:"outAmount,string"`
	FeeAmount  uint64           `json:"feeAmount,string"`
	FeeMint    solana.PublicKey `json:"feeMint"`
}
