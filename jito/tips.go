package jito

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"arber/config"
	"arber/logger"
	"arber/utils"
)

var BundlesURL string

func GetBundlesURL() string {
	if BundlesURL != "" {
		return BundlesURL
	}

	BundlesURL = viper.GetString("jito.bundles-url")
	if BundlesURL == "" {
		BundlesURL = "https://bundles.jito.wtf/api/v1/bundles"
		logger.JitoLogger.Warn("Bundles URL not set in config, using default", "url", BundlesURL)
	}

	return BundlesURL
}

var (
	tipAccountsMu sync.RWMutex
	tipAccounts   []solana.PublicKey
)

// InitTipAccounts fetches the relay's tip accounts once at startup.
func (c *Client) InitTipAccounts() error {
	var accounts []string
	if err := c.call("getTipAccounts", []interface{}{}, &accounts); err != nil {
		return err
	}
	if len(accounts) == 0 {
		return fmt.Errorf("relay returned no tip accounts")
	}

	parsed := make([]solana.PublicKey, 0, len(accounts))
	for _, acc := range accounts {
		key, err := solana.PublicKeyFromBase58(acc)
		if err != nil {
			return fmt.Errorf("invalid tip account %s: %w", acc, err)
		}
		parsed = append(parsed, key)
	}

	tipAccountsMu.Lock()
	tipAccounts = parsed
	tipAccountsMu.Unlock()

	logger.JitoLogger.Info("Loaded tip accounts", "count", len(parsed))
	return nil
}

// GetTipAccount returns one of the cached tip accounts at random, so
// concurrent attempts do not contend for the same account's write lock.
func GetTipAccount() (solana.PublicKey, error) {
	tipAccountsMu.RLock()
	defer tipAccountsMu.RUnlock()
	if len(tipAccounts) == 0 {
		return solana.PublicKey{}, fmt.Errorf("tip accounts not initialized")
	}
	return tipAccounts[rand.Intn(len(tipAccounts))], nil
}

type tipFloor struct {
	Time                        string  `json:"time"`
	LandedTips25thPercentile    float64 `json:"landed_tips_25th_percentile"`
	LandedTips50thPercentile    float64 `json:"landed_tips_50th_percentile"`
	LandedTips75thPercentile    float64 `json:"landed_tips_75th_percentile"`
	LandedTips95thPercentile    float64 `json:"landed_tips_95th_percentile"`
	LandedTips99thPercentile    float64 `json:"landed_tips_99th_percentile"`
	EmaLandedTips50thPercentile float64 `json:"ema_landed_tips_50th_percentile"`
}

// GetTipFloorLamports fetches the current competitive tip level (the 50th
// percentile of recently landed tips), clamped to the configured bounds.
func GetTipFloorLamports() (uint64, error) {
	var floors []tipFloor
	err := utils.GetUrlResponse(GetBundlesURL()+"/tip_floor", nil, nil, &floors, logger.JitoLogger)
	if err != nil {
		return 0, fmt.Errorf("tip floor fetch failed: %w", err)
	}
	if len(floors) == 0 {
		return 0, fmt.Errorf("tip floor response empty")
	}

	lamports := utils.ToLamports(floors[0].EmaLandedTips50thPercentile)
	return ClampTip(lamports), nil
}

// ClampTip bounds a proposed tip to [MinTipLamports, MaxTipLamports].
func ClampTip(lamports uint64) uint64 {
	return utils.ClampUint64(lamports, config.MinTipLamports, config.MaxTipLamports)
}
