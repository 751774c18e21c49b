package kv

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// versionPrefix is a reserved key prefix outside the eleven keyspace
// prefixes, carrying the single oxversion key.
const versionPrefix = 0xff

var versionKey = []byte{versionPrefix}

func keyspacePrefix(ks Keyspace) byte { return byte(ks) }

func prefixedKey(ks Keyspace, key []byte) []byte {
	out := make([]byte, 1+len(key))
	out[0] = keyspacePrefix(ks)
	copy(out[1:], key)
	return out
}

// BadgerStore implements Store on top of an embedded BadgerDB instance.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if absent) a BadgerDB instance rooted at path.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("kv: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) View(fn func(Txn) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&badgerTxn{txn: txn, writable: false})
	})
}

func (s *BadgerStore) Update(fn func(Txn) error) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTxn{txn: txn, writable: true})
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrConflict
	}
	return err
}

func (s *BadgerStore) Begin(writable bool) (Txn, error) {
	txn := s.db.NewTransaction(writable)
	return &badgerTxn{txn: txn, writable: writable, owned: true}, nil
}

func (s *BadgerStore) Flush() error      { return s.db.Sync() }
func (s *BadgerStore) FlushAsync() error { return s.db.Sync() }
func (s *BadgerStore) Close() error      { return s.db.Close() }

// badgerTxn implements Txn over a single BadgerDB transaction, namespacing
// every key by a one-byte keyspace prefix.
type badgerTxn struct {
	txn      *badger.Txn
	writable bool
	owned    bool // true if created via Store.Begin, so Commit/Rollback are meaningful
}

func (t *badgerTxn) Commit() error {
	err := t.txn.Commit()
	if errors.Is(err, badger.ErrConflict) {
		return ErrConflict
	}
	return err
}

func (t *badgerTxn) Rollback() error {
	t.txn.Discard()
	return nil
}

func (t *badgerTxn) Get(ks Keyspace, key []byte) ([]byte, error) {
	item, err := t.txn.Get(prefixedKey(ks, key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *badgerTxn) Contains(ks Keyspace, key []byte) (bool, error) {
	_, err := t.txn.Get(prefixedKey(ks, key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (t *badgerTxn) Set(ks Keyspace, key, value []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	return t.txn.Set(prefixedKey(ks, key), value)
}

func (t *badgerTxn) Delete(ks Keyspace, key []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	return t.txn.Delete(prefixedKey(ks, key))
}

func (t *badgerTxn) Scan(ks Keyspace, prefix []byte) Iterator {
	opts := badger.DefaultIteratorOptions
	scanPrefix := prefixedKey(ks, prefix)
	opts.Prefix = scanPrefix

	it := t.txn.NewIterator(opts)
	it.Seek(scanPrefix)

	return &badgerIterator{it: it, keyspacePrefixLen: 1, seeked: true}
}

func (t *badgerTxn) Clear(ks Keyspace) error {
	if !t.writable {
		return ErrReadOnly
	}
	prefix := []byte{keyspacePrefix(ks)}
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	it := t.txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, append([]byte{}, it.Item().Key()...))
	}
	for _, k := range keys {
		if err := t.txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func (t *badgerTxn) GetVersion() ([]byte, error) {
	item, err := t.txn.Get(versionKey)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *badgerTxn) SetVersion(value []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	return t.txn.Set(versionKey, value)
}

// badgerIterator implements Iterator over a single keyspace-prefixed range.
// seeked tracks whether the initial Seek (done by Scan before construction)
// still stands, so the first Next call doesn't skip that first item.
type badgerIterator struct {
	it                *badger.Iterator
	keyspacePrefixLen int
	seeked            bool
	valid             bool
	closed            bool
}

func (i *badgerIterator) Next() bool {
	if i.closed {
		return false
	}
	if i.seeked {
		i.seeked = false
	} else {
		i.it.Next()
	}
	i.valid = i.it.Valid()
	return i.valid
}

func (i *badgerIterator) Key() []byte {
	if !i.valid {
		return nil
	}
	key := i.it.Item().Key()
	if len(key) <= i.keyspacePrefixLen {
		return nil
	}
	return key[i.keyspacePrefixLen:]
}

func (i *badgerIterator) Value() ([]byte, error) {
	if !i.valid {
		return nil, ErrNotFound
	}
	return i.it.Item().ValueCopy(nil)
}

func (i *badgerIterator) Close() error {
	i.closed = true
	i.it.Close()
	return nil
}
