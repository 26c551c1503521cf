package jito

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"arber/sol"
)

// newRelayServer fakes the block engine JSON-RPC endpoint. The handler
// receives the decoded method and raw params and returns the result value.
func newRelayServer(t *testing.T, handler func(method string, params []json.RawMessage) any) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Jsonrpc string            `json:"jsonrpc"`
			ID      string            `json:"id"`
			Method  string            `json:"method"`
			Params  []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode rpc request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Jsonrpc != "2.0" {
			t.Errorf("jsonrpc version = %q, want 2.0", req.Jsonrpc)
		}

		result := handler(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	return ts, &Client{url: ts.URL}
}

func signedTestTx(t *testing.T, payer *solana.Wallet) *solana.Transaction {
	t.Helper()
	ix := system.NewTransferInstruction(1_000, payer.PublicKey(), solana.SysVarRentPubkey).Build()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		solana.Hash{},
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		t.Fatalf("failed to build transaction: %v", err)
	}
	if err := sol.SignTransaction(tx, payer.PrivateKey); err != nil {
		t.Fatalf("failed to sign transaction: %v", err)
	}
	return tx
}

func TestSendBundle(t *testing.T) {
	payer := solana.NewWallet()
	tx := signedTestTx(t, payer)

	ts, client := newRelayServer(t, func(method string, params []json.RawMessage) any {
		if method != "sendBundle" {
			t.Errorf("method = %q, want sendBundle", method)
		}
		if len(params) != 2 {
			t.Fatalf("params length = %d, want 2", len(params))
		}

		var encoded []string
		if err := json.Unmarshal(params[0], &encoded); err != nil {
			t.Fatalf("params[0] is not a string array: %v", err)
		}
		if len(encoded) != 1 {
			t.Fatalf("encoded tx count = %d, want 1", len(encoded))
		}
		raw, err := base64.StdEncoding.DecodeString(encoded[0])
		if err != nil {
			t.Errorf("transaction is not base64: %v", err)
		} else if len(raw) == 0 {
			t.Error("transaction payload empty")
		}

		var opts map[string]string
		if err := json.Unmarshal(params[1], &opts); err != nil {
			t.Fatalf("params[1] is not an options object: %v", err)
		}
		if opts["encoding"] != "base64" {
			t.Errorf("encoding option = %q, want base64", opts["encoding"])
		}

		return "bundle-id-1"
	})
	defer ts.Close()

	bundleId, err := client.SendBundle([]*solana.Transaction{tx})
	if err != nil {
		t.Fatalf("SendBundle failed: %v", err)
	}
	if bundleId != "bundle-id-1" {
		t.Errorf("bundleId = %q, want bundle-id-1", bundleId)
	}
}

func TestGetBundleStatuses(t *testing.T) {
	ts, client := newRelayServer(t, func(method string, params []json.RawMessage) any {
		if method != "getBundleStatuses" {
			t.Errorf("method = %q, want getBundleStatuses", method)
		}
		var ids []string
		if err := json.Unmarshal(params[0], &ids); err != nil {
			t.Fatalf("params[0] is not an id array: %v", err)
		}
		if len(ids) != 1 || ids[0] != "bundle-id-1" {
			t.Errorf("ids = %v, want [bundle-id-1]", ids)
		}

		return map[string]any{
			"context": map[string]any{"slot": 12345},
			"value": []map[string]any{{
				"bundle_id":           "bundle-id-1",
				"transactions":        []string{"sig1"},
				"slot":                12340,
				"confirmation_status": "finalized",
				"err":                 nil,
			}},
		}
	})
	defer ts.Close()

	statuses, err := client.GetBundleStatuses([]string{"bundle-id-1"})
	if err != nil {
		t.Fatalf("GetBundleStatuses failed: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("statuses length = %d, want 1", len(statuses))
	}
	status := statuses[0]
	if status.BundleId != "bundle-id-1" {
		t.Errorf("bundleId = %q", status.BundleId)
	}
	if status.Slot != 12340 {
		t.Errorf("slot = %d, want 12340", status.Slot)
	}
	if status.ConfirmationStatus != ConfirmationStatusFinalized {
		t.Errorf("confirmationStatus = %q", status.ConfirmationStatus)
	}
	if len(status.Transactions) != 1 || status.Transactions[0] != "sig1" {
		t.Errorf("transactions = %v", status.Transactions)
	}
}

func TestSubmitAndConfirmFireAndForget(t *testing.T) {
	payer := solana.NewWallet()
	tx := signedTestTx(t, payer)

	statusCalls := 0
	ts, client := newRelayServer(t, func(method string, params []json.RawMessage) any {
		switch method {
		case "sendBundle":
			return "bundle-id-2"
		case "getBundleStatuses":
			statusCalls++
			return map[string]any{"value": []any{}}
		default:
			t.Errorf("unexpected method %q", method)
			return nil
		}
	})
	defer ts.Close()

	bundleId, sigs, err := client.SubmitAndConfirm([]*solana.Transaction{tx}, payer.PrivateKey, false, time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("SubmitAndConfirm failed: %v", err)
	}
	if bundleId != "bundle-id-2" {
		t.Errorf("bundleId = %q, want bundle-id-2", bundleId)
	}
	if len(sigs) != 0 {
		t.Errorf("signatures = %v, want empty without confirmation", sigs)
	}
	if statusCalls != 0 {
		t.Errorf("status calls = %d, want 0 in fire-and-forget mode", statusCalls)
	}
}

func TestSubmitAndConfirmWaits(t *testing.T) {
	payer := solana.NewWallet()
	tx := signedTestTx(t, payer)

	statusCalls := 0
	ts, client := newRelayServer(t, func(method string, params []json.RawMessage) any {
		switch method {
		case "sendBundle":
			return "bundle-id-3"
		case "getBundleStatuses":
			statusCalls++
			if statusCalls < 2 {
				return map[string]any{"value": []any{}}
			}
			return map[string]any{
				"value": []map[string]any{{
					"bundle_id":           "bundle-id-3",
					"transactions":        []string{"sig1"},
					"confirmation_status": "confirmed",
				}},
			}
		default:
			t.Errorf("unexpected method %q", method)
			return nil
		}
	})
	defer ts.Close()

	bundleId, sigs, err := client.SubmitAndConfirm([]*solana.Transaction{tx}, payer.PrivateKey, true, time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("SubmitAndConfirm failed: %v", err)
	}
	if bundleId != "bundle-id-3" {
		t.Errorf("bundleId = %q, want bundle-id-3", bundleId)
	}
	if len(sigs) != 1 || sigs[0] != "sig1" {
		t.Errorf("signatures = %v, want [sig1]", sigs)
	}
}
