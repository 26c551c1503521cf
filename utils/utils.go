package utils

import "math"

// Units
const (
	LamportsPerSol = 1e9 // 1 SOL = 10^9 lamports
	SolDecimals    = 9
)

// ToLamports converts a UI SOL amount to lamports, truncating sub-lamport dust.
func ToLamports(uiAmount float64) uint64 {
	return uint64(uiAmount * LamportsPerSol)
}

// ToUiAmount converts lamports to a UI SOL amount.
func ToUiAmount(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSol
}

// ToUiAmountSigned converts a signed lamport amount (e.g. profit) to SOL.
func ToUiAmountSigned(lamports int64) float64 {
	return float64(lamports) / LamportsPerSol
}

// ToTokenAmount converts a UI amount to the token's smallest unit.
func ToTokenAmount(uiAmount float64, decimals uint8) uint64 {
	return uint64(uiAmount * math.Pow10(int(decimals)))
}

func ClampUint64(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
