package quadstore

import (
	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
	"github.com/oxicore/quadstore/internal/rdf"
)

// Contains reports whether q is present, via a point lookup on DSPO for the
// default graph or GSPO for named graphs.
func (s *Store) Contains(q *rdf.Quad) (bool, error) {
	eq, _, err := encoding.EncodeQuad(q)
	if err != nil {
		return false, invalidDataError(err)
	}

	var found bool
	err = s.kv.View(func(txn kv.Txn) error {
		var err error
		found, err = containsQuadTxn(txn, eq, newScratch())
		return err
	})
	return found, ioError(err)
}

// Insert writes q, returning true iff it was not already present. Only on
// first insertion are the redundant permutations (and, for named graphs,
// the graph registry) written. All of these writes happen in a single
// substrate transaction.
func (s *Store) Insert(q *rdf.Quad) (bool, error) {
	eq, strs, err := encoding.EncodeQuad(q)
	if err != nil {
		return false, invalidDataError(err)
	}

	var isNew bool
	err = s.kv.Update(func(txn kv.Txn) error {
		var err error
		isNew, err = insertQuadTxn(txn, eq, strs, newScratch())
		return err
	})
	return isNew, ioError(err)
}

// Remove deletes q, returning true iff it was present. The graph registry
// entry is retained even if this was the graph's last quad.
func (s *Store) Remove(q *rdf.Quad) (bool, error) {
	eq, _, err := encoding.EncodeQuad(q)
	if err != nil {
		return false, invalidDataError(err)
	}

	var removed bool
	err = s.kv.Update(func(txn kv.Txn) error {
		var err error
		removed, err = removeQuadTxn(txn, eq, newScratch())
		return err
	})
	return removed, ioError(err)
}

// Len reports the total number of quads: DSPO's key count plus GSPO's.
func (s *Store) Len() (int, error) {
	var n int
	err := s.kv.View(func(txn kv.Txn) error {
		var err error
		n, err = lenTxn(txn)
		return err
	})
	return n, ioError(err)
}

// IsEmpty reports whether the store holds zero quads.
func (s *Store) IsEmpty() (bool, error) {
	n, err := s.Len()
	return n == 0, err
}

// Clear truncates all nine index keyspaces, the graph registry, and the
// string interner.
func (s *Store) Clear() error {
	return ioError(s.kv.Update(clearTxn))
}
