package arb

import (
	"arber/types"
)

// MergeQuotes folds the two leg quotes into one synthetic quote covering
// the whole round trip, so the instruction-plan endpoint can treat the
// cycle as a single swap.
//
// The output amount is pinned to principal plus tip by construction, not
// re-derived from the legs: the round trip must return at least what went
// in plus what the relay is paid. Price impact is reset to zero because the
// trip is principal-preserving for downstream sizing.
func MergeQuotes(buyQuote, sellQuote *types.QuoteResponse, amountIn, tipLamports uint64) *types.QuoteResponse {
	merged := *buyQuote
	merged.OutputMint = sellQuote.OutputMint
	merged.OutAmount = amountIn + tipLamports
	merged.OtherAmountThreshold = amountIn + tipLamports
	merged.PriceImpactPct = "0"

	routePlan := make([]types.RoutePlanStep, 0, len(buyQuote.RoutePlan)+len(sellQuote.RoutePlan))
	routePlan = append(routePlan, buyQuote.RoutePlan...)
	routePlan = append(routePlan, sellQuote.RoutePlan...)
	merged.RoutePlan = routePlan

	return &merged
}
