package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/almoner/errors"
)

// DefaultFreeListSize is the size we hold for free nodes in btree.
const DefaultFreeListSize = btree.DefaultFreeListSize

// MemStore returns an in-memory, btree backed store. There is no
// persistence here. This is the reference storage implementation for tests
// and for the execution harness; durable engines are the host's concern.
func MemStore() CacheableKVStore {
	return &memStore{
		bt: btree.New(2),
	}
}

type memStore struct {
	bt *btree.BTree
}

var _ CacheableKVStore = (*memStore)(nil)

func (m *memStore) Get(key []byte) ([]byte, error) {
	res := m.bt.Get(bkey{key})
	if res == nil {
		return nil, nil
	}
	return res.(setItem).value, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	return m.bt.Has(bkey{key}), nil
}

func (m *memStore) Set(key, value []byte) error {
	m.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.bt.Delete(bkey{key})
	return nil
}

func (m *memStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(ascendRange(m.bt, start, end)), nil
}

func (m *memStore) ReverseIterator(start, end []byte) (Iterator, error) {
	models := ascendRange(m.bt, start, end)
	reverse(models)
	return NewSliceIterator(models), nil
}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back.
func (m *memStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(m)
}

// ascendRange materializes all set items within [start, end) in ascending
// key order. Materializing keeps iteration deterministic and side-steps the
// btree contract that forbids writes during an active iteration.
func ascendRange(bt *btree.BTree, start, end []byte) []Model {
	var models []Model
	insert := func(item btree.Item) bool {
		if s, ok := item.(setItem); ok {
			models = append(models, Model{Key: s.key, Value: s.value})
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return models
}

func reverse(models []Model) {
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
}

///////////////////////////////////////////////
// Actual CacheWrap implementation

// BTreeCacheWrap places a btree cache over a KVStore. All writes go to the
// overlay until Write copies them to the backing store, or Discard drops
// them. This is the savepoint/rollback primitive the execution harness
// builds per-call atomicity on.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back KVStore
	ops  []Op
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
func NewBTreeCacheWrap(kv KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:   btree.NewWithFreeList(2, btree.NewFreeList(DefaultFreeListSize)),
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
// Don't change horses in mid-stream....
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write syncs with the underlying store. And then cleans up.
func (b *BTreeCacheWrap) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.back); err != nil {
			return errors.Wrap(err, "apply cached op")
		}
	}
	b.Discard()
	return nil
}

// Discard invalidates this CacheWrap and releases all data.
func (b *BTreeCacheWrap) Discard() {
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
	b.ops = nil
}

// Set writes to the BTree and remembers the op for Write.
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete marks the key deleted in the BTree and remembers the op for Write.
func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Get reads from btree if there, else backing store.
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value, nil
		case deletedItem:
			return nil, nil
		default:
			return nil, errors.Wrapf(errors.ErrStore, "unknown item in btree: %#v", res)
		}
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store.
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true, nil
		case deletedItem:
			return false, nil
		default:
			return false, errors.Wrapf(errors.ErrStore, "unknown item in btree: %#v", res)
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store.
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	models, err := b.merged(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store.
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	models, err := b.merged(start, end)
	if err != nil {
		return nil, err
	}
	reverse(models)
	return NewSliceIterator(models), nil
}

// merged combines the overlay items with the backing store within
// [start, end), ascending. Overlay entries shadow the backing store,
// deletions drop the key from the result.
func (b *BTreeCacheWrap) merged(start, end []byte) ([]Model, error) {
	parentIter, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer parentIter.Close()

	var overlay []btree.Item
	insert := func(item btree.Item) bool {
		overlay = append(overlay, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(insert)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, insert)
	}

	var models []Model
	pos := 0
	emitOverlay := func(item btree.Item) {
		if s, ok := item.(setItem); ok {
			models = append(models, Model{Key: s.key, Value: s.value})
		}
	}
	for parentIter.Valid() {
		key := parentIter.Key()
		// emit all overlay items strictly before the parent key
		for pos < len(overlay) && bytes.Compare(overlay[pos].(keyer).Key(), key) < 0 {
			emitOverlay(overlay[pos])
			pos++
		}
		if pos < len(overlay) && bytes.Equal(overlay[pos].(keyer).Key(), key) {
			// overlay shadows the backing store
			emitOverlay(overlay[pos])
			pos++
		} else {
			models = append(models, Model{Key: key, Value: parentIter.Value()})
		}
		if err := parentIter.Next(); err != nil {
			return nil, err
		}
	}
	for ; pos < len(overlay); pos++ {
		emitOverlay(overlay[pos])
	}
	return models, nil
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
