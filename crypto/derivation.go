package crypto

import (
	"github.com/iov-one/paysplit/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// DefaultPath is the derivation path used for the first account key.
const DefaultPath = "m/44'/234'/0'"

// DeriveKey returns the private key found at given hardened path, starting
// from the master seed.
func DeriveKey(seed []byte, path string) (*PrivateKey, error) {
	if len(seed) < 16 {
		return nil, errors.Wrap(errors.ErrInput, "seed too short")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
