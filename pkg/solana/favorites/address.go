package favorites

import (
	"crypto/ed25519"

	"github.com/code-payments/favorites-action/pkg/solana"
)

var (
	FavoritesPrefix = []byte("fav")
)

type GetFavoritesAddressArgs struct {
	Owner ed25519.PublicKey

	// Program defaults to PROGRAM_ID when unset
	Program ed25519.PublicKey
}

// GetFavoritesAddress derives the account holding the owner's favorites from
// the seeds ["fav", owner].
func GetFavoritesAddress(args *GetFavoritesAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		FavoritesPrefix,
		args.Owner,
	)
}
