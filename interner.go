package quadstore

import "github.com/oxicore/quadstore/internal/kv"

// GetStr resolves a content hash to its interned string.
func (s *Store) GetStr(hash [16]byte) (string, bool, error) {
	var value string
	var ok bool
	err := s.kv.View(func(txn kv.Txn) error {
		var err error
		value, ok, err = getStrTxn(txn, hash)
		return err
	})
	return value, ok, ioError(err)
}

// ContainsStr reports whether hash is present in the interner.
func (s *Store) ContainsStr(hash [16]byte) (bool, error) {
	var ok bool
	err := s.kv.View(func(txn kv.Txn) error {
		var err error
		ok, err = containsStrTxn(txn, hash)
		return err
	})
	return ok, ioError(err)
}

// InsertStr interns value under hash, returning true iff it was newly
// inserted. Interning is append-only: the core never deletes entries.
func (s *Store) InsertStr(hash [16]byte, value string) (bool, error) {
	var isNew bool
	err := s.kv.Update(func(txn kv.Txn) error {
		var err error
		isNew, err = insertStrTxn(txn, hash, value)
		return err
	})
	return isNew, ioError(err)
}
