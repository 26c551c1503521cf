package jito

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"arber/logger"
	"arber/utils"
)

func init() {
	logger.InitLogs("jito_test")
}

func TestWaitForBundleConfirmationLands(t *testing.T) {
	calls := 0
	fetch := func(bundleId string) ([]BundleStatus, error) {
		calls++
		if calls < 3 {
			return []BundleStatus{{BundleId: bundleId, ConfirmationStatus: "processed"}}, nil
		}
		return []BundleStatus{{
			BundleId:           bundleId,
			Transactions:       []string{"sig1", "sig2"},
			Slot:               123,
			ConfirmationStatus: ConfirmationStatusFinalized,
		}}, nil
	}

	txs, err := WaitForBundleConfirmation(fetch, "bundle-a", 5*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}
	if len(txs) != 2 || txs[0] != "sig1" || txs[1] != "sig2" {
		t.Errorf("transactions = %v, want [sig1 sig2]", txs)
	}
	if calls != 3 {
		t.Errorf("fetch calls = %d, want 3", calls)
	}
}

func TestWaitForBundleConfirmationConfirmedCounts(t *testing.T) {
	fetch := func(bundleId string) ([]BundleStatus, error) {
		return []BundleStatus{{
			BundleId:           bundleId,
			Transactions:       []string{"sig1"},
			ConfirmationStatus: ConfirmationStatusConfirmed,
		}}, nil
	}

	txs, err := WaitForBundleConfirmation(fetch, "bundle-b", time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("transactions = %v, want one signature", txs)
	}
}

func TestWaitForBundleConfirmationTimeout(t *testing.T) {
	calls := 0
	fetch := func(bundleId string) ([]BundleStatus, error) {
		calls++
		return nil, nil
	}

	timeout := 60 * time.Millisecond
	start := time.Now()
	_, err := WaitForBundleConfirmation(fetch, "bundle-c", 10*time.Millisecond, timeout)
	elapsed := time.Since(start)

	if !errors.Is(err, utils.ErrConfirmationTimeout) {
		t.Fatalf("expected ErrConfirmationTimeout, got %v", err)
	}
	if elapsed < timeout {
		t.Errorf("returned after %s, before the %s timeout", elapsed, timeout)
	}
	if calls < 2 {
		t.Errorf("fetch calls = %d, want repeated polling", calls)
	}
}

func TestWaitForBundleConfirmationSwallowsPollErrors(t *testing.T) {
	calls := 0
	fetch := func(bundleId string) ([]BundleStatus, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("relay unreachable")
		}
		return []BundleStatus{{
			BundleId:           bundleId,
			Transactions:       []string{"sig1"},
			ConfirmationStatus: ConfirmationStatusFinalized,
		}}, nil
	}

	txs, err := WaitForBundleConfirmation(fetch, "bundle-d", time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("poll error must not fail the wait, got %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("transactions = %v, want one signature", txs)
	}
}

func TestWaitForBundleConfirmationIgnoresOtherBundles(t *testing.T) {
	calls := 0
	fetch := func(bundleId string) ([]BundleStatus, error) {
		calls++
		if calls == 1 {
			return []BundleStatus{{
				BundleId:           "someone-else",
				Transactions:       []string{"sigX"},
				ConfirmationStatus: ConfirmationStatusFinalized,
			}}, nil
		}
		return []BundleStatus{{
			BundleId:           bundleId,
			Transactions:       []string{"sig1"},
			ConfirmationStatus: ConfirmationStatusFinalized,
		}}, nil
	}

	txs, err := WaitForBundleConfirmation(fetch, "bundle-e", time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (first response is a different bundle)", calls)
	}
	if len(txs) != 1 || txs[0] != "sig1" {
		t.Errorf("transactions = %v, want [sig1]", txs)
	}
}

func TestWaitForBundleConfirmationSkipsErroredStatus(t *testing.T) {
	calls := 0
	fetch := func(bundleId string) ([]BundleStatus, error) {
		calls++
		if calls == 1 {
			return []BundleStatus{{
				BundleId:           bundleId,
				Transactions:       []string{"sig1"},
				ConfirmationStatus: ConfirmationStatusFinalized,
				Err:                map[string]any{"Err": "ProgramFailure"},
			}}, nil
		}
		return []BundleStatus{{
			BundleId:           bundleId,
			Transactions:       []string{"sig1"},
			ConfirmationStatus: ConfirmationStatusFinalized,
		}}, nil
	}

	txs, err := WaitForBundleConfirmation(fetch, "bundle-f", time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("expected eventual confirmation, got %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (errored status skipped)", calls)
	}
	if len(txs) != 1 {
		t.Errorf("transactions = %v, want [sig1]", txs)
	}
}

func TestWaitForBundleConfirmationOkErrShape(t *testing.T) {
	// The relay encodes success as {"Ok": null}, which arrives as a
	// non-nil map. It must confirm on the first poll, not time out.
	fetch := func(bundleId string) ([]BundleStatus, error) {
		raw := `[{
			"bundle_id": "` + bundleId + `",
			"transactions": ["sig1"],
			"slot": 123,
			"confirmation_status": "finalized",
			"err": {"Ok": null}
		}]`
		var statuses []BundleStatus
		if err := json.Unmarshal([]byte(raw), &statuses); err != nil {
			t.Fatalf("failed to decode fixture: %v", err)
		}
		return statuses, nil
	}

	txs, err := WaitForBundleConfirmation(fetch, "bundle-g", time.Millisecond, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("expected confirmation, got %v", err)
	}
	if len(txs) != 1 || txs[0] != "sig1" {
		t.Errorf("transactions = %v, want [sig1]", txs)
	}
}

func TestStatusErr(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		errored bool
	}{
		{"absent", nil, false},
		{"ok-null", map[string]any{"Ok": nil}, false},
		{"empty-object", map[string]any{}, false},
		{"ok-populated", map[string]any{"Ok": "oops"}, true},
		{"err-populated", map[string]any{"Err": "ProgramFailure"}, true},
		{"plain-string", "InternalError", true},
	}
	for _, c := range cases {
		if got := statusErr(c.in); (got != nil) != c.errored {
			t.Errorf("%s: statusErr(%v) = %v, want errored=%v", c.name, c.in, got, c.errored)
		}
	}
}
