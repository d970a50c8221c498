package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/weavetest/assert"
	"github.com/stellar/go/exp/crypto/derivation"
)

func TestDeriveKey(t *testing.T) {
	// SLIP-0010 ed25519 test vector 1.
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	key, err := DeriveKey(seed, "m/0'")
	assert.Nil(t, err)
	assert.Equal(t, "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3",
		hex.EncodeToString(key.Ed25519[:32]))

	k, err := derivation.DeriveForPath("m/0'", seed)
	assert.Nil(t, err)
	pub, err := k.PublicKey()
	assert.Nil(t, err)
	assert.Equal(t, pub, key.PublicKey().Ed25519)

	first, err := DeriveKey(seed, DefaultPath)
	assert.Nil(t, err)
	second, err := DeriveKey(seed, "m/44'/234'/1'")
	assert.Nil(t, err)
	if first.PublicKey().Equals(second.PublicKey()) {
		t.Fatal("different paths derive the same key")
	}

	_, err = DeriveKey(seed, "m/0")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = DeriveKey([]byte{1}, DefaultPath)
	assert.IsErr(t, errors.ErrInput, err)
}
