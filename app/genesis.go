package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID    string           `json:"chain_id"`
	AppOptions paysplit.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

const chainIDKey = "_wv:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv paysplit.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv paysplit.KVStore, chainID string) error {
	if !paysplit.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
