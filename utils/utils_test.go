package utils

import "testing"

func TestLamportConversions(t *testing.T) {
	if got := ToLamports(1.5); got != 1_500_000_000 {
		t.Errorf("ToLamports(1.5) = %d", got)
	}
	if got := ToUiAmount(250_000_000); got != 0.25 {
		t.Errorf("ToUiAmount(250000000) = %v", got)
	}
	if got := ToUiAmountSigned(-1_000_000); got != -0.001 {
		t.Errorf("ToUiAmountSigned(-1000000) = %v", got)
	}
}

func TestToTokenAmount(t *testing.T) {
	if got := ToTokenAmount(2.5, 6); got != 2_500_000 {
		t.Errorf("ToTokenAmount(2.5, 6) = %d", got)
	}
	if got := ToTokenAmount(1, 0); got != 1 {
		t.Errorf("ToTokenAmount(1, 0) = %d", got)
	}
}

func TestClampUint64(t *testing.T) {
	cases := []struct {
		v, lo, hi, want uint64
	}{
		{5, 10, 20, 10},
		{15, 10, 20, 15},
		{25, 10, 20, 20},
		{10, 10, 20, 10},
		{20, 10, 20, 20},
	}
	for _, c := range cases {
		if got := ClampUint64(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("ClampUint64(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
