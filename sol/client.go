package sol

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/viper"

	"arber/logger"
)

// WSOL is the wrapped native mint, the only asset round trips start from.
var WSOL = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

// GetRandomRpcURL picks one endpoint from the RPC_ENDPOINTS comma list.
// Each attempt draws its own endpoint so load spreads across providers.
func GetRandomRpcURL() (string, error) {
	raw := viper.GetString("RPC_ENDPOINTS")
	if raw == "" {
		return "", fmt.Errorf("RPC_ENDPOINTS not configured")
	}

	urls := make([]string, 0)
	for _, u := range strings.Split(raw, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("RPC_ENDPOINTS contains no usable endpoints")
	}

	url := urls[rand.Intn(len(urls))]
	logger.GlobalLogger.Debug("Chose rpc endpoint", "url", url)
	return url, nil
}

func GetRpcClient() (*rpc.Client, error) {
	url, err := GetRandomRpcURL()
	if err != nil {
		return nil, err
	}
	return rpc.New(url), nil
}

// GetPayer loads the signing key from PRIVATE_KEY (base58).
func GetPayer() (solana.PrivateKey, error) {
	raw := viper.GetString("PRIVATE_KEY")
	if raw == "" {
		return nil, fmt.Errorf("PRIVATE_KEY not configured")
	}
	payer, err := solana.PrivateKeyFromBase58(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PRIVATE_KEY: %w", err)
	}
	return payer, nil
}

// GetMint fetches and decodes a token mint account.
func GetMint(ctx context.Context, client *rpc.Client, address solana.PublicKey) (*token.Mint, error) {
	var mint token.Mint
	if err := client.GetAccountDataInto(ctx, address, &mint); err != nil {
		return nil, fmt.Errorf("failed to fetch mint %s: %w", address, err)
	}
	return &mint, nil
}
