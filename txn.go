package quadstore

import (
	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
	"github.com/oxicore/quadstore/internal/rdf"
)

// maxTransactionAttempts bounds the conflict-retry loop in Transaction.
// Badger does not retry internally (unlike oxigraph's sled wrapper), so the
// façade does it explicitly; a conflict surviving this many attempts is
// reported to the caller rather than retried forever.
const maxTransactionAttempts = 16

// Txn is a transactional handle spanning all eleven keyspaces, passed to
// the closure given to Transaction. It implements StorageLike, so code
// written against that interface runs unchanged inside a transaction.
type Txn struct {
	kv kv.Txn
}

var _ StorageLike = (*Txn)(nil)

// Contains reports whether q is present, as seen by this transaction.
func (t *Txn) Contains(q *rdf.Quad) (bool, error) {
	eq, _, err := encoding.EncodeQuad(q)
	if err != nil {
		return false, invalidDataError(err)
	}
	return containsQuadTxn(t.kv, eq, newScratch())
}

// Insert writes q within this transaction, returning true iff it was not
// already present.
func (t *Txn) Insert(q *rdf.Quad) (bool, error) {
	eq, strs, err := encoding.EncodeQuad(q)
	if err != nil {
		return false, invalidDataError(err)
	}
	return insertQuadTxn(t.kv, eq, strs, newScratch())
}

// Remove deletes q within this transaction, returning true iff it was
// present.
func (t *Txn) Remove(q *rdf.Quad) (bool, error) {
	eq, _, err := encoding.EncodeQuad(q)
	if err != nil {
		return false, invalidDataError(err)
	}
	return removeQuadTxn(t.kv, eq, newScratch())
}

// InsertNamedGraph registers g within this transaction.
func (t *Txn) InsertNamedGraph(g rdf.Term) (bool, error) {
	eg, str, err := encoding.Encode(g)
	if err != nil {
		return false, invalidDataError(err)
	}
	if str != nil {
		var hash [16]byte
		copy(hash[:], eg[1:])
		if _, err := insertStrTxn(t.kv, hash, *str); err != nil {
			return false, err
		}
	}
	return insertNamedGraphTxn(t.kv, eg)
}

// GetStr resolves hash within this transaction's view.
func (t *Txn) GetStr(hash [16]byte) (string, bool, error) {
	return getStrTxn(t.kv, hash)
}

// ContainsStr reports whether hash is interned, within this transaction's
// view.
func (t *Txn) ContainsStr(hash [16]byte) (bool, error) {
	return containsStrTxn(t.kv, hash)
}

// InsertStr interns value under hash within this transaction.
func (t *Txn) InsertStr(hash [16]byte, value string) (bool, error) {
	return insertStrTxn(t.kv, hash, value)
}

// Transaction runs fn inside a multi-keyspace transaction on s. fn may run
// more than once: a substrate conflict rolls the transaction back and
// retries fn from scratch, so fn must be free of observable side effects
// other than its transactional mutations. Returning Abort(E) rolls the
// transaction back and returns that error unchanged, with no retry.
func Transaction[T any](s *Store, fn func(*Txn) (T, error)) (T, error) {
	var result T
	var lastConflict error

	for attempt := 0; attempt < maxTransactionAttempts; attempt++ {
		var value T
		err := s.kv.Update(func(kvTxn kv.Txn) error {
			v, ferr := fn(&Txn{kv: kvTxn})
			value = v
			return ferr
		})

		switch {
		case err == nil:
			return value, nil
		case IsAbort(err):
			return result, err
		case err == kv.ErrConflict:
			lastConflict = err
			continue
		default:
			return result, ioError(err)
		}
	}
	return result, &StorageError{Kind: KindConflict, Err: lastConflict}
}
