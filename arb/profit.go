package arb

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"arber/config"
	"arber/jup"
	"arber/logger"
	"arber/sol"
	"arber/types"
	"arber/utils"
)

// Quoter is the quote-retrieval surface the calculator needs.
// *jup.Client satisfies it; tests inject fakes.
type Quoter interface {
	Quote(req *jup.QuoteRequest) (*types.QuoteResponse, error)
}

// clampDecay maps anything outside (0, 1] back to no decay.
func clampDecay(decay float64) float64 {
	if decay <= 0 || decay > 1 {
		return 1.0
	}
	return decay
}

// applyDecay discounts a quote's output fields in place, truncating toward
// zero. This is one of the two permitted quote mutations.
func applyDecay(quote *types.QuoteResponse, decay float64) {
	decay = clampDecay(decay)
	quote.OutAmount = uint64(float64(quote.OutAmount) * decay)
	quote.OtherAmountThreshold = uint64(float64(quote.OtherAmountThreshold) * decay)
}

// CalculateProfit quotes both legs of a WSOL -> mint -> WSOL round trip and
// returns the signed profit estimate in lamports, along with both decayed
// quotes.
//
// Fees are netted from the buy leg's WSOL-denominated route fees only.
// Sell-leg fees are deliberately left out: they are charged in transient
// token amounts the estimate treats as noise. A known approximation.
func CalculateProfit(
	client Quoter,
	amountIn uint64,
	tokenIn, tokenOut solana.PublicKey,
	venues jup.VenueSet,
	buyDecay, sellDecay float64,
	partnerFeeFraction float64,
) (int64, *types.QuoteResponse, *types.QuoteResponse, error) {
	if !tokenIn.Equals(sol.WSOL) {
		return 0, nil, nil, fmt.Errorf("%w: token in is %s", utils.ErrUnsupportedDirection, tokenIn)
	}

	buyQuote, err := client.Quote(&jup.QuoteRequest{
		InputMint:   tokenIn,
		OutputMint:  tokenOut,
		Amount:      amountIn,
		SlippageBps: config.ArbSlippageBps,
		Venues:      venues,
	})
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: buy leg: %w", utils.ErrQuoteUnavailable, err)
	}
	applyDecay(buyQuote, buyDecay)

	sellQuote, err := client.Quote(&jup.QuoteRequest{
		InputMint:   tokenOut,
		OutputMint:  tokenIn,
		Amount:      buyQuote.OutAmount,
		SlippageBps: config.ArbSlippageBps,
		Venues:      venues,
	})
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: sell leg: %w", utils.ErrQuoteUnavailable, err)
	}
	applyDecay(sellQuote, sellDecay)

	var feeAmount uint64
	for _, hop := range buyQuote.RoutePlan {
		if hop.SwapInfo.FeeMint.Equals(sol.WSOL) {
			feeAmount += hop.SwapInfo.FeeAmount
		}
	}
	logger.ArbLogger.Debug("Swap fee amount (buy-leg WSOL fees only)", "lamports", feeAmount)

	var partnerFee uint64
	if partnerFeeFraction > 0 {
		partnerFee = uint64(float64(amountIn) * partnerFeeFraction)
	}

	profit := int64(sellQuote.OutAmount) - int64(amountIn) - int64(feeAmount) - int64(partnerFee)
	return profit, buyQuote, sellQuote, nil
}
