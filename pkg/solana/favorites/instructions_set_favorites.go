package favorites

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/favorites-action/pkg/solana"
)

var (
	SetFavoritesInstructionDiscriminator = []byte{0, 0, 0, 0, 0, 0, 0, 0}
)

const (
	SetFavoritesOpcode uint8 = 0

	SetFavoritesInstructionHeaderSize = (8 + // discriminator
		1) // opcode

	SetFavoritesInstructionArgsBaseSize = (8 + // number
		4) // color length
)

type SetFavoritesInstructionArgs struct {
	Number uint64
	Color  string
}

type SetFavoritesInstructionAccounts struct {
	User      ed25519.PublicKey
	Favorites ed25519.PublicKey

	// Program defaults to PROGRAM_ID when unset
	Program ed25519.PublicKey
}

// SetFavoritesInstructionSize is the payload size for a color of the given
// UTF-8 byte length.
func SetFavoritesInstructionSize(colorLen int) int {
	return SetFavoritesInstructionHeaderSize + SetFavoritesInstructionArgsBaseSize + colorLen
}

func NewSetFavoritesInstruction(
	accounts *SetFavoritesInstructionAccounts,
	args *SetFavoritesInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, SetFavoritesInstructionSize(len(args.Color)))

	putDiscriminator(data, SetFavoritesInstructionDiscriminator, &offset)
	putUint8(data, SetFavoritesOpcode, &offset)
	putUint64(data, args.Number, &offset)
	putString(data, args.Color, &offset)

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewAccountMeta(accounts.User, true),
		solana.NewAccountMeta(accounts.Favorites, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type DecompiledSetFavorites struct {
	User      ed25519.PublicKey
	Favorites ed25519.PublicKey

	Number uint64
	Color  string
}

// DecompileSetFavorites recovers the set favorites instruction at index from a
// compiled message. Only statically loaded accounts are resolved.
func DecompileSetFavorites(m solana.Message, index int, program ed25519.PublicKey) (*DecompiledSetFavorites, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}
	i := m.Instructions[index]

	if int(i.ProgramIndex) >= len(m.Accounts) || !bytes.Equal(m.Accounts[i.ProgramIndex], programOrDefault(program)) {
		return nil, ErrInvalidProgram
	}

	if len(i.Accounts) != 3 {
		return nil, errors.Wrapf(ErrInvalidAccounts, "invalid number of accounts: %d", len(i.Accounts))
	}
	for _, accountIndex := range i.Accounts {
		if int(accountIndex) >= len(m.Accounts) {
			return nil, errors.Wrap(ErrInvalidAccounts, "account is not statically loaded")
		}
	}
	if !bytes.Equal(m.Accounts[i.Accounts[2]], SYSTEM_PROGRAM_ID) {
		return nil, errors.Wrap(ErrInvalidAccounts, "system program account mismatch")
	}

	if len(i.Data) < SetFavoritesInstructionSize(0) {
		return nil, ErrInvalidInstructionData
	}

	var offset int
	var discriminator []byte
	var opcode uint8
	var colorLen uint32
	decompiled := &DecompiledSetFavorites{
		User:      m.Accounts[i.Accounts[0]],
		Favorites: m.Accounts[i.Accounts[1]],
	}

	getDiscriminator(i.Data, &discriminator, &offset)
	getUint8(i.Data, &opcode, &offset)
	if !bytes.Equal(discriminator, SetFavoritesInstructionDiscriminator) || opcode != SetFavoritesOpcode {
		return nil, ErrInvalidInstructionData
	}

	getUint64(i.Data, &decompiled.Number, &offset)
	getUint32(i.Data, &colorLen, &offset)
	if uint64(len(i.Data)-offset) != uint64(colorLen) {
		return nil, errors.Wrapf(ErrInvalidInstructionData, "color length %d doesn't match remaining %d bytes", colorLen, len(i.Data)-offset)
	}
	decompiled.Color = string(i.Data[offset:])

	return decompiled, nil
}
