//nolint
package store

import "github.com/iov-one/almoner"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = almoner.ReadOnlyKVStore
type KVStore = almoner.KVStore
type Iterator = almoner.Iterator
type CacheableKVStore = almoner.CacheableKVStore
type KVCacheWrap = almoner.KVCacheWrap
type Model = almoner.Model
