package favorites

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/favorites-action/pkg/metrics"
	"github.com/code-payments/favorites-action/pkg/solana"
	favorites_program "github.com/code-payments/favorites-action/pkg/solana/favorites"
)

const (
	metricsStructName = "favorites.transaction_builder"
)

// BlockhashProvider is the network capability the builder depends on.
// solana.Client satisfies it.
type BlockhashProvider interface {
	GetLatestBlockhash() (solana.Blockhash, error)
}

type SetFavoritesArgs struct {
	// Account is the base58 encoded wallet that pays for and signs the
	// transaction
	Account string

	Number uint64
	Color  string
}

type SetFavoritesTransaction struct {
	Owner     ed25519.PublicKey
	Favorites ed25519.PublicKey

	Transaction solana.Transaction

	// Serialized is the wire format of Transaction
	Serialized []byte
}

type TransactionBuilder struct {
	log         *logrus.Entry
	blockhashes BlockhashProvider
	program     ed25519.PublicKey
}

func NewTransactionBuilder(blockhashes BlockhashProvider, program ed25519.PublicKey) *TransactionBuilder {
	return &TransactionBuilder{
		log:         logrus.StandardLogger().WithField("type", "favorites/transaction_builder"),
		blockhashes: blockhashes,
		program:     program,
	}
}

// BuildSetFavoritesTransaction assembles an unsigned v0 transaction with a
// single set favorites instruction, paid for by the caller. Errors are always
// *Error.
func (b *TransactionBuilder) BuildSetFavoritesTransaction(ctx context.Context, args *SetFavoritesArgs) (*SetFavoritesTransaction, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "BuildSetFavoritesTransaction")
	defer tracer.End()

	res, err := b.buildSetFavoritesTransaction(ctx, args)
	tracer.OnError(err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (b *TransactionBuilder) buildSetFavoritesTransaction(ctx context.Context, args *SetFavoritesArgs) (*SetFavoritesTransaction, error) {
	owner, err := solana.PublicKeyFromString(args.Account)
	if err != nil {
		return nil, newInvalidInputError(err, "invalid account")
	}

	favorites, _, err := favorites_program.GetFavoritesAddress(&favorites_program.GetFavoritesAddressArgs{
		Owner:   owner,
		Program: b.program,
	})
	if err != nil {
		return nil, newInternalError(err, "failed to derive favorites account")
	}

	log := b.log.WithFields(logrus.Fields{
		"account":           base58.Encode(owner),
		"favorites_account": base58.Encode(favorites),
	})

	ixn := favorites_program.NewSetFavoritesInstruction(
		&favorites_program.SetFavoritesInstructionAccounts{
			User:      owner,
			Favorites: favorites,
			Program:   b.program,
		},
		&favorites_program.SetFavoritesInstructionArgs{
			Number: args.Number,
			Color:  args.Color,
		},
	)

	txn := solana.NewV0Transaction(owner, ixn)

	// The blockhash doesn't affect the size, so oversized input is rejected
	// before going to the network.
	if _, err := txn.Marshal(); err != nil {
		return nil, newInvalidInputError(err, "color is too long")
	}

	blockhash, err := b.getLatestBlockhash(ctx)
	if err != nil {
		return nil, newUpstreamUnavailableError(err, "failed to fetch latest blockhash")
	}
	txn.SetBlockhash(blockhash)

	serialized, err := txn.Marshal()
	if err != nil {
		return nil, newInternalError(err, "failed to marshal transaction")
	}

	log.WithFields(logrus.Fields{
		"blockhash": blockhash.ToBase58(),
		"size":      len(serialized),
	}).Debug("built set favorites transaction")

	return &SetFavoritesTransaction{
		Owner:       owner,
		Favorites:   favorites,
		Transaction: txn,
		Serialized:  serialized,
	}, nil
}

func (b *TransactionBuilder) getLatestBlockhash(ctx context.Context) (solana.Blockhash, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetLatestBlockhash")
	defer tracer.End()

	blockhash, err := b.blockhashes.GetLatestBlockhash()
	tracer.OnError(err)
	return blockhash, err
}
