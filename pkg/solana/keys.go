package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrMalformedPublicKey = errors.New("malformed public key")
)

// PublicKeyFromString decodes a base58 encoded ed25519 public key. The key is
// not required to lie on the curve, since program derived addresses are valid
// account keys.
func PublicKeyFromString(value string) (ed25519.PublicKey, error) {
	if len(value) == 0 {
		return nil, errors.Wrap(ErrMalformedPublicKey, "value is empty")
	}

	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedPublicKey, "%s is not base58 encoded", value)
	}

	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrMalformedPublicKey, "%s decodes to %d bytes, expected %d", value, len(decoded), ed25519.PublicKeySize)
	}

	return ed25519.PublicKey(decoded), nil
}

// MustPublicKeyFromString is PublicKeyFromString for package level constants.
func MustPublicKeyFromString(value string) ed25519.PublicKey {
	pub, err := PublicKeyFromString(value)
	if err != nil {
		panic(err)
	}
	return pub
}
