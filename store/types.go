package store

import "github.com/iov-one/paysplit"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = paysplit.ReadOnlyKVStore
	SetDeleter       = paysplit.SetDeleter
	KVStore          = paysplit.KVStore
	Batch            = paysplit.Batch
	Iterator         = paysplit.Iterator
	CacheableKVStore = paysplit.CacheableKVStore
	KVCacheWrap      = paysplit.KVCacheWrap
	Model            = paysplit.Model
)
