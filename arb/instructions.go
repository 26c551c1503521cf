package arb

import (
	"github.com/gagliardetto/solana-go"

	"arber/types"
)

// BuildInstructions flattens the instruction plan into submission order:
// compute budget, setup, swap, tip, cleanup, trailing.
//
// The order is a correctness contract. The tip must follow the swap (pay
// only after the swap could execute) and precede cleanup (the unwrap must
// not consume the WSOL the swap needs). Do not reorder.
func BuildInstructions(swapInstructions *types.SwapInstructionsResponse, tipInstruction solana.Instruction) []solana.Instruction {
	n := len(swapInstructions.ComputeBudgetInstructions) +
		len(swapInstructions.SetupInstructions) +
		len(swapInstructions.OtherInstructions) + 3

	instructions := make([]solana.Instruction, 0, n)
	for i := range swapInstructions.ComputeBudgetInstructions {
		instructions = append(instructions, swapInstructions.ComputeBudgetInstructions[i].ToSolana())
	}
	for i := range swapInstructions.SetupInstructions {
		instructions = append(instructions, swapInstructions.SetupInstructions[i].ToSolana())
	}
	instructions = append(instructions, swapInstructions.SwapInstruction.ToSolana())
	instructions = append(instructions, tipInstruction)
	if swapInstructions.CleanupInstruction != nil {
		instructions = append(instructions, swapInstructions.CleanupInstruction.ToSolana())
	}
	for i := range swapInstructions.OtherInstructions {
		instructions = append(instructions, swapInstructions.OtherInstructions[i].ToSolana())
	}
	return instructions
}
