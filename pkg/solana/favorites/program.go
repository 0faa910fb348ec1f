package favorites

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/favorites-action/pkg/solana"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrInvalidAccounts        = errors.New("unexpected instruction accounts")
)

var (
	PROGRAM_ADDRESS = solana.MustPublicKeyFromString("4Pm9xVzVsQJMmodRdANm28UapsES4Ffy13AKeSPuEtqy")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = solana.MustPublicKeyFromString("11111111111111111111111111111111")
)

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	if len(program) == 0 {
		return PROGRAM_ID
	}
	return program
}
