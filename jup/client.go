package jup

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"arber/logger"
	"arber/types"
	"arber/utils"
)

const DefaultQuoteAPI = "https://quote-api.jup.ag/v6"

// Client talks to the Jupiter v6 quote API. It is stateless and safe to
// share across concurrently running attempts.
type Client struct {
	BaseURL string
	apiKey  string
}

// NewClient builds a client from the JUP_QUOTE_API / JUP_QUOTE_API_KEY
// environment.
func NewClient() *Client {
	baseURL := viper.GetString("JUP_QUOTE_API")
	if baseURL == "" {
		baseURL = DefaultQuoteAPI
		logger.GlobalLogger.Warn("JUP_QUOTE_API not set, using default", "url", baseURL)
	}
	return &Client{
		BaseURL: baseURL,
		apiKey:  viper.GetString("JUP_QUOTE_API_KEY"),
	}
}

func (c *Client) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"x-api-key": c.apiKey}
}

// QuoteRequest parameterizes one directed swap quote.
type QuoteRequest struct {
	InputMint        solana.PublicKey
	OutputMint       solana.PublicKey
	Amount           uint64
	SlippageBps      uint64
	Venues           VenueSet
	OnlyDirectRoutes bool
	ExtraArgs        map[string]string
}

// Quote requests GET /quote for one leg.
func (c *Client) Quote(req *QuoteRequest) (*types.QuoteResponse, error) {
	params := map[string]string{
		"inputMint":   req.InputMint.String(),
		"outputMint":  req.OutputMint.String(),
		"amount":      strconv.FormatUint(req.Amount, 10),
		"slippageBps": strconv.FormatUint(req.SlippageBps, 10),
	}
	if !req.Venues.IsEmpty() {
		params["dexes"] = req.Venues.String()
	}
	if req.OnlyDirectRoutes {
		params["onlyDirectRoutes"] = "true"
	}
	for k, v := range req.ExtraArgs {
		params[k] = v
	}

	var quote types.QuoteResponse
	err := utils.GetUrlResponseWithRetry(c.BaseURL+"/quote", params, c.headers(), &quote, utils.DefaultRetryTimes, logger.ArbLogger)
	if err != nil {
		return nil, fmt.Errorf("quote %s -> %s failed: %w", req.InputMint, req.OutputMint, err)
	}
	return &quote, nil
}

// SwapConfig tunes how the swap endpoints build the transaction.
type SwapConfig struct {
	WrapAndUnwrapSol              bool
	DynamicComputeUnitLimit       bool
	UseSharedAccounts             *bool
	ComputeUnitPriceMicroLamports uint64
}

type swapRequestBody struct {
	UserPublicKey                 solana.PublicKey     `json:"userPublicKey"`
	QuoteResponse                 *types.QuoteResponse `json:"quoteResponse"`
	WrapAndUnwrapSol              bool                 `json:"wrapAndUnwrapSol"`
	DynamicComputeUnitLimit       bool                 `json:"dynamicComputeUnitLimit,omitempty"`
	UseSharedAccounts             *bool                `json:"useSharedAccounts,omitempty"`
	ComputeUnitPriceMicroLamports uint64               `json:"computeUnitPriceMicroLamports,omitempty"`
}

// SwapInstructions requests POST /swap-instructions: the instruction plan
// for executing the given quote, plus the lookup tables that compact it.
func (c *Client) SwapInstructions(signer solana.PublicKey, quote *types.QuoteResponse, cfg SwapConfig) (*types.SwapInstructionsResponse, error) {
	body := swapRequestBody{
		UserPublicKey:                 signer,
		QuoteResponse:                 quote,
		WrapAndUnwrapSol:              cfg.WrapAndUnwrapSol,
		DynamicComputeUnitLimit:       cfg.DynamicComputeUnitLimit,
		UseSharedAccounts:             cfg.UseSharedAccounts,
		ComputeUnitPriceMicroLamports: cfg.ComputeUnitPriceMicroLamports,
	}

	var resp types.SwapInstructionsResponse
	err := utils.PostUrlResponse(c.BaseURL+"/swap-instructions", body, c.headers(), &resp, logger.ArbLogger)
	if err != nil {
		return nil, fmt.Errorf("swap-instructions failed: %w", err)
	}
	return &resp, nil
}

// Swap requests POST /swap: a fully built, unsigned serialized transaction.
func (c *Client) Swap(signer solana.PublicKey, quote *types.QuoteResponse, cfg SwapConfig) (*types.SwapResponse, error) {
	body := swapRequestBody{
		UserPublicKey:                 signer,
		QuoteResponse:                 quote,
		WrapAndUnwrapSol:              cfg.WrapAndUnwrapSol,
		DynamicComputeUnitLimit:       cfg.DynamicComputeUnitLimit,
		UseSharedAccounts:             cfg.UseSharedAccounts,
		ComputeUnitPriceMicroLamports: cfg.ComputeUnitPriceMicroLamports,
	}

	var resp types.SwapResponse
	err := utils.PostUrlResponse(c.BaseURL+"/swap", body, c.headers(), &resp, logger.ArbLogger)
	if err != nil {
		return nil, fmt.Errorf("swap failed: %w", err)
	}
	return &resp, nil
}
