/*
Package iavl provides a persistent, versioned state store backed by a merkle
tree. Every Commit saves a new version and returns its root hash.
*/
package iavl

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes kept in memory.
const cacheSize = 10000

// CommitStore manages an iavl committed state.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ paysplit.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing. The database is
// kept in a directory called name inside dir.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", name, err)
	}
	return newCommitStore(db), nil
}

// NewMemCommitStore creates a store that keeps all versions in memory.
func NewMemCommitStore() *CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
		db:   db,
	}
}

// Commit the next version to disk, and returns info.
func (s *CommitStore) Commit() (paysplit.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return paysplit.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return paysplit.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a crash
// during the last commit, it is guaranteed to return a stable state, even if
// older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() paysplit.CommitID {
	return paysplit.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Close releases the underlying database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// Get returns the value from the working version. Returns nil iff key
// doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists in the working version.
func (s *CommitStore) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return s.tree.Has(key), nil
}

// Set adds a new value to the working version.
func (s *CommitStore) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working version.
func (s *CommitStore) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that applies all operations on Write.
func (s *CommitStore) NewBatch() paysplit.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap wraps the tree with a btree, so that a transaction can be
// discarded without touching the working version.
func (s *CommitStore) CacheWrap() paysplit.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (paysplit.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (paysplit.Iterator, error) {
	return s.iterate(start, end, false), nil
}

func (s *CommitStore) iterate(start, end []byte, ascending bool) paysplit.Iterator {
	var res []paysplit.Model
	s.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, paysplit.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}
