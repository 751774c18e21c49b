package quadstore

import (
	"fmt"

	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
	"github.com/oxicore/quadstore/internal/rdf"
)

// InsertNamedGraph adds g to the graph registry only, returning true iff it
// was not already registered. Inserting quads into g via Insert registers
// it automatically; this exists for declaring an empty graph.
func (s *Store) InsertNamedGraph(g rdf.Term) (bool, error) {
	eg, str, err := encoding.Encode(g)
	if err != nil {
		return false, invalidDataError(err)
	}

	var isNew bool
	err = s.kv.Update(func(txn kv.Txn) error {
		if str != nil {
			var hash [16]byte
			copy(hash[:], eg[1:])
			if _, err := insertStrTxn(txn, hash, *str); err != nil {
				return err
			}
		}
		var err error
		isNew, err = insertNamedGraphTxn(txn, eg)
		return err
	})
	return isNew, ioError(err)
}

// ContainsNamedGraph reports whether g is registered, independent of
// whether it currently holds any quads.
func (s *Store) ContainsNamedGraph(g rdf.Term) (bool, error) {
	eg, _, err := encoding.Encode(g)
	if err != nil {
		return false, invalidDataError(err)
	}

	var found bool
	err = s.kv.View(func(txn kv.Txn) error {
		var err error
		found, err = containsNamedGraphTxn(txn, eg)
		return err
	})
	return found, ioError(err)
}

// RemoveNamedGraph removes every quad in g and drops g from the registry,
// returning true iff g was registered.
func (s *Store) RemoveNamedGraph(g rdf.Term) (bool, error) {
	eg, _, err := encoding.Encode(g)
	if err != nil {
		return false, invalidDataError(err)
	}

	var removed bool
	err = s.kv.Update(func(txn kv.Txn) error {
		var err error
		removed, err = removeNamedGraphTxn(txn, eg, newScratch())
		return err
	})
	return removed, ioError(err)
}

// ClearGraph removes every quad in g. For the default graph this truncates
// DSPO/DPOS/DOSP; for a named graph it removes quad-by-quad and, unlike
// RemoveNamedGraph, retains the registry entry.
func (s *Store) ClearGraph(g rdf.Term) error {
	eg, _, err := encoding.Encode(g)
	if err != nil {
		return invalidDataError(err)
	}

	return ioError(s.kv.Update(func(txn kv.Txn) error {
		return clearGraphTxn(txn, eg, newScratch())
	}))
}

// NamedGraphs returns every registered named graph.
func (s *Store) NamedGraphs() ([]rdf.Term, error) {
	var out []rdf.Term
	err := s.kv.View(func(txn kv.Txn) error {
		it := txn.Scan(kv.KeyspaceGraphs, nil)
		defer it.Close()
		for it.Next() {
			var encoded encoding.EncodedTerm
			key := it.Key()
			if len(key) < encoding.EncodedTermSize {
				return invalidDataError(fmt.Errorf("short graphs key: %d bytes", len(key)))
			}
			copy(encoded[:], key[:encoding.EncodedTermSize])
			term, err := decodeTermTxn(txn, encoded)
			if err != nil {
				return err
			}
			out = append(out, term)
		}
		return nil
	})
	return out, ioError(err)
}
