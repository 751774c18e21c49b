package quadstore

import (
	"fmt"

	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
	"github.com/oxicore/quadstore/internal/rdf"
)

// scanStage names one ordered prefix scan: the keyspace to scan, the
// prefix bytes built from the pattern's bound positions, and the decoder
// that turns a matching key back into an EncodedQuad.
type scanStage struct {
	ks     kv.Keyspace
	prefix []byte
	enc    encoding.QuadEncoding
}

func pairStages(ks1 kv.Keyspace, prefix1 []byte, enc1 encoding.QuadEncoding,
	ks2 kv.Keyspace, prefix2 []byte, enc2 encoding.QuadEncoding) []scanStage {
	return []scanStage{{ks1, prefix1, enc1}, {ks2, prefix2, enc2}}
}

// buildScanStages implements the pattern→keyspace selection table: when g
// is bound, exactly one side (default or named) is scanned; when g is
// unbound, the default side is chained before the named side.
func buildScanStages(s, p, o, g *encoding.EncodedTerm) []scanStage {
	switch {
	case s != nil && p != nil && o != nil:
		if g != nil {
			return stagesSPOG(*s, *p, *o, *g)
		}
		return pairStages(
			kv.KeyspaceDSPO, encoding.EncodeTermPrefix(*s, *p, *o), encoding.EncodingSPO,
			kv.KeyspaceSPOG, encoding.EncodeTermPrefix(*s, *p, *o), encoding.EncodingSPOG,
		)
	case s != nil && p != nil:
		if g != nil {
			return stagesSPG(*s, *p, *g)
		}
		return pairStages(
			kv.KeyspaceDSPO, encoding.EncodeTermPrefix(*s, *p), encoding.EncodingSPO,
			kv.KeyspaceSPOG, encoding.EncodeTermPrefix(*s, *p), encoding.EncodingSPOG,
		)
	case s != nil && o != nil:
		if g != nil {
			return stagesSOG(*s, *o, *g)
		}
		return pairStages(
			kv.KeyspaceDOSP, encoding.EncodeTermPrefix(*o, *s), encoding.EncodingOSP,
			kv.KeyspaceOSPG, encoding.EncodeTermPrefix(*o, *s), encoding.EncodingOSPG,
		)
	case s != nil:
		if g != nil {
			return stagesSG(*s, *g)
		}
		return pairStages(
			kv.KeyspaceDSPO, encoding.EncodeTermPrefix(*s), encoding.EncodingSPO,
			kv.KeyspaceSPOG, encoding.EncodeTermPrefix(*s), encoding.EncodingSPOG,
		)
	case p != nil && o != nil:
		if g != nil {
			return stagesPOG(*p, *o, *g)
		}
		return pairStages(
			kv.KeyspaceDPOS, encoding.EncodeTermPrefix(*p, *o), encoding.EncodingPOS,
			kv.KeyspacePOSG, encoding.EncodeTermPrefix(*p, *o), encoding.EncodingPOSG,
		)
	case p != nil:
		if g != nil {
			return stagesPG(*p, *g)
		}
		return pairStages(
			kv.KeyspaceDPOS, encoding.EncodeTermPrefix(*p), encoding.EncodingPOS,
			kv.KeyspacePOSG, encoding.EncodeTermPrefix(*p), encoding.EncodingPOSG,
		)
	case o != nil:
		if g != nil {
			return stagesOG(*o, *g)
		}
		return pairStages(
			kv.KeyspaceDOSP, encoding.EncodeTermPrefix(*o), encoding.EncodingOSP,
			kv.KeyspaceOSPG, encoding.EncodeTermPrefix(*o), encoding.EncodingOSPG,
		)
	case g != nil:
		return stagesG(*g)
	default:
		return pairStages(
			kv.KeyspaceDSPO, nil, encoding.EncodingSPO,
			kv.KeyspaceGSPO, nil, encoding.EncodingGSPO,
		)
	}
}

func stagesG(g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDSPO, nil, encoding.EncodingSPO}}
	}
	return []scanStage{{kv.KeyspaceGSPO, encoding.EncodeTermPrefix(g), encoding.EncodingGSPO}}
}

func stagesSG(s, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDSPO, encoding.EncodeTermPrefix(s), encoding.EncodingSPO}}
	}
	return []scanStage{{kv.KeyspaceGSPO, encoding.EncodeTermPrefix(g, s), encoding.EncodingGSPO}}
}

func stagesSPG(s, p, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDSPO, encoding.EncodeTermPrefix(s, p), encoding.EncodingSPO}}
	}
	return []scanStage{{kv.KeyspaceGSPO, encoding.EncodeTermPrefix(g, s, p), encoding.EncodingGSPO}}
}

func stagesSPOG(s, p, o, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDSPO, encoding.EncodeTermPrefix(s, p, o), encoding.EncodingSPO}}
	}
	return []scanStage{{kv.KeyspaceGSPO, encoding.EncodeTermPrefix(g, s, p, o), encoding.EncodingGSPO}}
}

func stagesSOG(s, o, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDOSP, encoding.EncodeTermPrefix(o, s), encoding.EncodingOSP}}
	}
	return []scanStage{{kv.KeyspaceGOSP, encoding.EncodeTermPrefix(g, o, s), encoding.EncodingGOSP}}
}

func stagesPG(p, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDPOS, encoding.EncodeTermPrefix(p), encoding.EncodingPOS}}
	}
	return []scanStage{{kv.KeyspaceGPOS, encoding.EncodeTermPrefix(g, p), encoding.EncodingGPOS}}
}

func stagesPOG(p, o, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDPOS, encoding.EncodeTermPrefix(p, o), encoding.EncodingPOS}}
	}
	return []scanStage{{kv.KeyspaceGPOS, encoding.EncodeTermPrefix(g, p, o), encoding.EncodingGPOS}}
}

func stagesOG(o, g encoding.EncodedTerm) []scanStage {
	if g.IsDefaultGraph() {
		return []scanStage{{kv.KeyspaceDOSP, encoding.EncodeTermPrefix(o), encoding.EncodingOSP}}
	}
	return []scanStage{{kv.KeyspaceGOSP, encoding.EncodeTermPrefix(g, o), encoding.EncodingGOSP}}
}

// QuadIterator is a lazy, finite sequence of quads matching a pattern. It
// holds a read transaction open for its whole lifetime; callers must Close
// it (directly or via drain-to-completion) to release the transaction.
type QuadIterator struct {
	txn     kv.Txn
	stages  []scanStage
	idx     int
	it      kv.Iterator
	current *rdf.Quad
	err     error
	closed  bool
}

// QuadsForPattern returns the quads matching the given positions; a nil
// position is unbound. Binding graph to rdf.NewDefaultGraph() restricts
// the scan to the default graph; leaving it nil matches any graph.
func (s *Store) QuadsForPattern(subject, predicate, object, graph rdf.Term) (*QuadIterator, error) {
	sEnc, err := encodeOptional(subject)
	if err != nil {
		return nil, err
	}
	pEnc, err := encodeOptional(predicate)
	if err != nil {
		return nil, err
	}
	oEnc, err := encodeOptional(object)
	if err != nil {
		return nil, err
	}
	gEnc, err := encodeOptional(graph)
	if err != nil {
		return nil, err
	}

	txn, err := s.kv.Begin(false)
	if err != nil {
		return nil, ioError(err)
	}

	qi := &QuadIterator{txn: txn, stages: buildScanStages(sEnc, pEnc, oEnc, gEnc)}
	qi.openStage(0)
	return qi, nil
}

func encodeOptional(t rdf.Term) (*encoding.EncodedTerm, error) {
	if t == nil {
		return nil, nil
	}
	e, _, err := encoding.Encode(t)
	if err != nil {
		return nil, invalidDataError(err)
	}
	return &e, nil
}

func (qi *QuadIterator) openStage(idx int) {
	qi.idx = idx
	if idx >= len(qi.stages) {
		qi.it = nil
		return
	}
	st := qi.stages[idx]
	qi.it = qi.txn.Scan(st.ks, st.prefix)
}

// Next advances to the next matching quad, draining the default-graph
// stage (if any) before the named-graph stage.
func (qi *QuadIterator) Next() bool {
	if qi.closed || qi.err != nil {
		return false
	}
	for qi.it != nil {
		if qi.it.Next() {
			eq, err := qi.stages[qi.idx].enc.Decode(qi.it.Key())
			if err != nil {
				qi.err = invalidDataError(err)
				return false
			}
			q, err := decodeQuadTxn(qi.txn, eq)
			if err != nil {
				qi.err = err
				return false
			}
			qi.current = q
			return true
		}
		qi.it.Close()
		qi.openStage(qi.idx + 1)
	}
	if err := qi.Close(); err != nil {
		qi.err = err
	}
	return false
}

// Quad returns the quad found by the most recent successful Next call.
func (qi *QuadIterator) Quad() (*rdf.Quad, error) {
	if qi.err != nil {
		return nil, qi.err
	}
	if qi.current == nil {
		return nil, fmt.Errorf("quadstore: Quad called before a successful Next")
	}
	return qi.current, nil
}

// Close releases the iterator's underlying scans and read transaction.
func (qi *QuadIterator) Close() error {
	if qi.closed {
		return nil
	}
	qi.closed = true
	if qi.it != nil {
		qi.it.Close()
	}
	return ioError(qi.txn.Rollback())
}
