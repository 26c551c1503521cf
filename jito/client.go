package jito

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"arber/logger"
	"arber/utils"
)

var BlockEngineURL string

func GetBlockEngineURL() string {
	if BlockEngineURL != "" {
		return BlockEngineURL
	}

	BlockEngineURL = viper.GetString("jito.block-engine-url")
	if BlockEngineURL == "" {
		BlockEngineURL = "https://mainnet.block-engine.jito.wtf"
		logger.JitoLogger.Warn("Block engine URL not set in config, using default", "url", BlockEngineURL)
	}

	return BlockEngineURL
}

// Client talks JSON-RPC to the Jito block engine bundle endpoint. It is
// stateless and safe to share across attempts.
type Client struct {
	url string
}

func NewClient() *Client {
	return &Client{url: GetBlockEngineURL() + "/api/v1/bundles"}
}

type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) call(method string, params []interface{}, result any) error {
	req := rpcRequest{
		Jsonrpc: "2.0",
		ID:      "1",
		Method:  method,
		Params:  params,
	}

	var resp rpcResponse
	if err := utils.PostUrlResponse(c.url, req, nil, &resp, logger.JitoLogger); err != nil {
		return fmt.Errorf("relay %s failed: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("relay %s returned error: %d %s", method, resp.Error.Code, resp.Error.Message)
	}
	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("relay %s result unmarshal failed: %w", method, err)
		}
	}
	return nil
}

// SendBundle submits signed transactions as one atomic bundle and returns
// the relay's opaque bundle id.
func (c *Client) SendBundle(txs []*solana.Transaction) (string, error) {
	encoded := make([]string, 0, len(txs))
	for _, tx := range txs {
		raw, err := tx.MarshalBinary()
		if err != nil {
			return "", fmt.Errorf("failed to serialize transaction: %w", err)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(raw))
	}

	var bundleId string
	err := c.call("sendBundle", []interface{}{encoded, map[string]string{"encoding": "base64"}}, &bundleId)
	if err != nil {
		return "", err
	}
	return bundleId, nil
}

// BundleStatus is the relay-reported outcome of a submitted bundle.
// An id the relay has not resolved yet simply does not appear in the
// response value.
type BundleStatus struct {
	BundleId           string   `json:"bundle_id"`
	Transactions       []string `json:"transactions"`
	Slot               uint64   `json:"slot"`
	ConfirmationStatus string   `json:"confirmation_status"`
	Err                any      `json:"err,omitempty"`
}

type bundleStatusesResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value []BundleStatus `json:"value"`
}

// GetBundleStatuses polls the relay for the current status of bundle ids.
func (c *Client) GetBundleStatuses(bundleIds []string) ([]BundleStatus, error) {
	var result bundleStatusesResult
	err := c.call("getBundleStatuses", []interface{}{bundleIds}, &result)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}
