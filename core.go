package quadstore

import (
	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
	"github.com/oxicore/quadstore/internal/rdf"
)

// scratch is a reusable buffer sized to the worst-case composite key
// (4 encoded terms), so a single insert/remove call never reallocates
// across its up-to-six key writes.
type scratch struct {
	buf []byte
}

func newScratch() *scratch {
	return &scratch{buf: make([]byte, 0, 4*encoding.WrittenTermMaxSize)}
}

func (s *scratch) reset() []byte {
	s.buf = s.buf[:0]
	return s.buf
}

// containsQuadTxn implements the storage façade's contains(quad): a point
// lookup on DSPO or GSPO depending on the quad's graph class.
func containsQuadTxn(txn kv.Txn, eq encoding.EncodedQuad, sc *scratch) (bool, error) {
	if eq.Graph.IsDefaultGraph() {
		key := encoding.WriteSPO(sc.reset(), eq)
		return txn.Contains(kv.KeyspaceDSPO, key)
	}
	key := encoding.WriteGSPO(sc.reset(), eq)
	return txn.Contains(kv.KeyspaceGSPO, key)
}

// insertQuadTxn writes the primary permutation first; iff it was absent, it
// writes the redundant permutations and, for named graphs, records the
// graph in the registry. strs carries the interned-string payloads that
// must accompany any hash-addressed term in eq.
func insertQuadTxn(txn kv.Txn, eq encoding.EncodedQuad, strs [4]*string, sc *scratch) (bool, error) {
	if err := insertStringsTxn(txn, eq, strs); err != nil {
		return false, err
	}

	if eq.Graph.IsDefaultGraph() {
		key := encoding.WriteSPO(sc.reset(), eq)
		existing, err := txn.Contains(kv.KeyspaceDSPO, key)
		if err != nil {
			return false, err
		}
		if existing {
			return false, nil
		}
		if err := txn.Set(kv.KeyspaceDSPO, key, nil); err != nil {
			return false, err
		}
		if err := txn.Set(kv.KeyspaceDPOS, encoding.WritePOS(sc.reset(), eq), nil); err != nil {
			return false, err
		}
		if err := txn.Set(kv.KeyspaceDOSP, encoding.WriteOSP(sc.reset(), eq), nil); err != nil {
			return false, err
		}
		return true, nil
	}

	key := encoding.WriteSPOG(sc.reset(), eq)
	existing, err := txn.Contains(kv.KeyspaceSPOG, key)
	if err != nil {
		return false, err
	}
	if existing {
		return false, nil
	}
	if err := txn.Set(kv.KeyspaceSPOG, key, nil); err != nil {
		return false, err
	}
	if err := txn.Set(kv.KeyspacePOSG, encoding.WritePOSG(sc.reset(), eq), nil); err != nil {
		return false, err
	}
	if err := txn.Set(kv.KeyspaceOSPG, encoding.WriteOSPG(sc.reset(), eq), nil); err != nil {
		return false, err
	}
	if err := txn.Set(kv.KeyspaceGSPO, encoding.WriteGSPO(sc.reset(), eq), nil); err != nil {
		return false, err
	}
	if err := txn.Set(kv.KeyspaceGPOS, encoding.WriteGPOS(sc.reset(), eq), nil); err != nil {
		return false, err
	}
	if err := txn.Set(kv.KeyspaceGOSP, encoding.WriteGOSP(sc.reset(), eq), nil); err != nil {
		return false, err
	}
	if err := txn.Set(kv.KeyspaceGraphs, encoding.EncodeTermPrefix(eq.Graph), nil); err != nil {
		return false, err
	}
	return true, nil
}

// removeQuadTxn is the mirror of insertQuadTxn: primary removal first;
// siblings are removed iff the primary removal found the key present. The
// graph registry entry is never touched here (it is retained on purpose).
func removeQuadTxn(txn kv.Txn, eq encoding.EncodedQuad, sc *scratch) (bool, error) {
	if eq.Graph.IsDefaultGraph() {
		key := encoding.WriteSPO(sc.reset(), eq)
		existing, err := txn.Contains(kv.KeyspaceDSPO, key)
		if err != nil {
			return false, err
		}
		if !existing {
			return false, nil
		}
		if err := txn.Delete(kv.KeyspaceDSPO, key); err != nil {
			return false, err
		}
		if err := txn.Delete(kv.KeyspaceDPOS, encoding.WritePOS(sc.reset(), eq)); err != nil {
			return false, err
		}
		if err := txn.Delete(kv.KeyspaceDOSP, encoding.WriteOSP(sc.reset(), eq)); err != nil {
			return false, err
		}
		return true, nil
	}

	key := encoding.WriteSPOG(sc.reset(), eq)
	existing, err := txn.Contains(kv.KeyspaceSPOG, key)
	if err != nil {
		return false, err
	}
	if !existing {
		return false, nil
	}
	if err := txn.Delete(kv.KeyspaceSPOG, key); err != nil {
		return false, err
	}
	if err := txn.Delete(kv.KeyspacePOSG, encoding.WritePOSG(sc.reset(), eq)); err != nil {
		return false, err
	}
	if err := txn.Delete(kv.KeyspaceOSPG, encoding.WriteOSPG(sc.reset(), eq)); err != nil {
		return false, err
	}
	if err := txn.Delete(kv.KeyspaceGSPO, encoding.WriteGSPO(sc.reset(), eq)); err != nil {
		return false, err
	}
	if err := txn.Delete(kv.KeyspaceGPOS, encoding.WriteGPOS(sc.reset(), eq)); err != nil {
		return false, err
	}
	if err := txn.Delete(kv.KeyspaceGOSP, encoding.WriteGOSP(sc.reset(), eq)); err != nil {
		return false, err
	}
	return true, nil
}

func insertStringsTxn(txn kv.Txn, eq encoding.EncodedQuad, strs [4]*string) error {
	terms := [4]encoding.EncodedTerm{eq.Subject, eq.Predicate, eq.Object, eq.Graph}
	for i, term := range terms {
		if strs[i] == nil || !term.NeedsStringLookup() {
			continue
		}
		var hash [16]byte
		copy(hash[:], term[1:])
		if _, err := insertStrTxn(txn, hash, *strs[i]); err != nil {
			return err
		}
	}
	return nil
}

func insertNamedGraphTxn(txn kv.Txn, g encoding.EncodedTerm) (bool, error) {
	key := encoding.EncodeTermPrefix(g)
	existing, err := txn.Contains(kv.KeyspaceGraphs, key)
	if err != nil {
		return false, err
	}
	if existing {
		return false, nil
	}
	return true, txn.Set(kv.KeyspaceGraphs, key, nil)
}

func containsNamedGraphTxn(txn kv.Txn, g encoding.EncodedTerm) (bool, error) {
	return txn.Contains(kv.KeyspaceGraphs, encoding.EncodeTermPrefix(g))
}

func getStrTxn(txn kv.Txn, hash [16]byte) (string, bool, error) {
	val, err := txn.Get(kv.KeyspaceID2Str, hash[:])
	if err == kv.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

func containsStrTxn(txn kv.Txn, hash [16]byte) (bool, error) {
	return txn.Contains(kv.KeyspaceID2Str, hash[:])
}

func insertStrTxn(txn kv.Txn, hash [16]byte, value string) (bool, error) {
	existing, err := txn.Contains(kv.KeyspaceID2Str, hash[:])
	if err != nil {
		return false, err
	}
	if existing {
		return false, nil
	}
	return true, txn.Set(kv.KeyspaceID2Str, hash[:], []byte(value))
}

// lenTxn sums DSPO and GSPO key counts via a full keyspace scan, since
// Badger has no native O(1) per-prefix count.
func lenTxn(txn kv.Txn) (int, error) {
	count := 0
	it := txn.Scan(kv.KeyspaceDSPO, nil)
	for it.Next() {
		count++
	}
	it.Close()

	it = txn.Scan(kv.KeyspaceGSPO, nil)
	for it.Next() {
		count++
	}
	it.Close()
	return count, nil
}

func clearGraphTxn(txn kv.Txn, g encoding.EncodedTerm, sc *scratch) error {
	if g.IsDefaultGraph() {
		if err := txn.Clear(kv.KeyspaceDSPO); err != nil {
			return err
		}
		if err := txn.Clear(kv.KeyspaceDPOS); err != nil {
			return err
		}
		return txn.Clear(kv.KeyspaceDOSP)
	}

	quads, err := quadsForGraphTxn(txn, g)
	if err != nil {
		return err
	}
	for _, q := range quads {
		if _, err := removeQuadTxn(txn, q, sc); err != nil {
			return err
		}
	}
	return nil
}

func removeNamedGraphTxn(txn kv.Txn, g encoding.EncodedTerm, sc *scratch) (bool, error) {
	quads, err := quadsForGraphTxn(txn, g)
	if err != nil {
		return false, err
	}
	for _, q := range quads {
		if _, err := removeQuadTxn(txn, q, sc); err != nil {
			return false, err
		}
	}
	key := encoding.EncodeTermPrefix(g)
	existing, err := txn.Contains(kv.KeyspaceGraphs, key)
	if err != nil {
		return false, err
	}
	if !existing {
		return false, nil
	}
	return true, txn.Delete(kv.KeyspaceGraphs, key)
}

// quadsForGraphTxn materializes every quad in a named graph so it can be
// removed; the GSPO scan is drained up front because removeQuadTxn mutates
// the very keyspace being scanned.
func quadsForGraphTxn(txn kv.Txn, g encoding.EncodedTerm) ([]encoding.EncodedQuad, error) {
	prefix := encoding.EncodeTermPrefix(g)
	it := txn.Scan(kv.KeyspaceGSPO, prefix)
	defer it.Close()

	var out []encoding.EncodedQuad
	for it.Next() {
		eq, err := encoding.EncodingGSPO.Decode(it.Key())
		if err != nil {
			return nil, invalidDataError(err)
		}
		out = append(out, eq)
	}
	return out, nil
}

func clearTxn(txn kv.Txn) error {
	for _, ks := range []kv.Keyspace{
		kv.KeyspaceDSPO, kv.KeyspaceDPOS, kv.KeyspaceDOSP,
		kv.KeyspaceSPOG, kv.KeyspacePOSG, kv.KeyspaceOSPG,
		kv.KeyspaceGSPO, kv.KeyspaceGPOS, kv.KeyspaceGOSP,
		kv.KeyspaceGraphs, kv.KeyspaceID2Str,
	} {
		if err := txn.Clear(ks); err != nil {
			return err
		}
	}
	return nil
}

// decodeQuadTxn turns an EncodedQuad back into an rdf.Quad, resolving any
// hash-addressed term through the interner.
func decodeQuadTxn(txn kv.Txn, eq encoding.EncodedQuad) (*rdf.Quad, error) {
	subject, err := decodeTermTxn(txn, eq.Subject)
	if err != nil {
		return nil, err
	}
	predicate, err := decodeTermTxn(txn, eq.Predicate)
	if err != nil {
		return nil, err
	}
	object, err := decodeTermTxn(txn, eq.Object)
	if err != nil {
		return nil, err
	}
	graph, err := decodeTermTxn(txn, eq.Graph)
	if err != nil {
		return nil, err
	}
	return rdf.NewQuad(subject, predicate, object, graph), nil
}

func decodeTermTxn(txn kv.Txn, t encoding.EncodedTerm) (rdf.Term, error) {
	var strPtr *string
	if t.NeedsStringLookup() {
		var hash [16]byte
		copy(hash[:], t[1:])
		val, ok, err := getStrTxn(txn, hash)
		if err != nil {
			return nil, err
		}
		if ok {
			strPtr = &val
		}
	}
	term, _, err := encoding.Decode(t[:], strPtr)
	if err != nil {
		return nil, invalidDataError(err)
	}
	return term, nil
}
