package types

import (
	"github.com/gagliardetto/solana-go"
)

// Instruction is the wire form of one on-chain instruction as the Jupiter
// swap-instructions endpoint returns it. Data is base64 on the wire, which
// encoding/json maps to []byte directly.
type Instruction struct {
	ProgramId solana.PublicKey `json:"programId"`
	Accounts  []AccountMeta    `json:"accounts"`
	Data      []byte           `json:"data"`
}

type AccountMeta struct {
	Pubkey     solana.PublicKey `json:"pubkey"`
	IsSigner   bool             `json:"isSigner"`
	IsWritable bool             `json:"isWritable"`
}

// ToSolana converts the wire form into an instruction the message compiler
// accepts.
func (ix *Instruction) ToSolana() solana.Instruction {
	accounts := make(solana.AccountMetaSlice, 0, len(ix.Accounts))
	for _, acc := range ix.Accounts {
		accounts = append(accounts, &solana.AccountMeta{
			PublicKey:  acc.Pubkey,
			IsSigner:   acc.IsSigner,
			IsWritable: acc.IsWritable,
		})
	}
	return solana.NewInstruction(ix.ProgramId, accounts, ix.Data)
}

// SwapInstructionsResponse is the instruction plan for one transaction.
// The stage split mirrors the endpoint; ordering them into a single list is
// arb.BuildInstructions' job.
type SwapInstructionsResponse struct {
	TokenLedgerInstruction      *Instruction       `json:"tokenLedgerInstruction,omitempty"`
	ComputeBudgetInstructions   []Instruction      `json:"computeBudgetInstructions"`
	SetupInstructions           []Instruction      `json:"setupInstructions"`
	SwapInstruction             Instruction        `json:"swapInstruction"`
	CleanupInstruction          *Instruction       `json:"cleanupInstruction,omitempty"`
	OtherInstructions           []Instruction      `json:"otherInstructions"`
	AddressLookupTableAddresses []solana.PublicKey `json:"addressLookupTableAddresses"`
}

// SwapResponse carries a ready-to-sign serialized transaction from the
// /swap endpoint (base64 on the wire).
type SwapResponse struct {
	SwapTransaction      []byte `json:"swapTransaction"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}
