package encoding

import (
	"fmt"

	"github.com/oxicore/quadstore/internal/rdf"
)

// EncodedQuad is the 4-tuple of encoded terms; Graph is the default-graph
// marker for quads in the unnamed graph.
type EncodedQuad struct {
	Subject   EncodedTerm
	Predicate EncodedTerm
	Object    EncodedTerm
	Graph     EncodedTerm
}

// EncodeQuad encodes all four positions of q, returning any interned
// strings the caller must persist alongside the index entries.
func EncodeQuad(q *rdf.Quad) (EncodedQuad, [4]*string, error) {
	var out EncodedQuad
	var strs [4]*string
	var err error

	if out.Subject, strs[0], err = Encode(q.Subject); err != nil {
		return out, strs, fmt.Errorf("subject: %w", err)
	}
	if out.Predicate, strs[1], err = Encode(q.Predicate); err != nil {
		return out, strs, fmt.Errorf("predicate: %w", err)
	}
	if out.Object, strs[2], err = Encode(q.Object); err != nil {
		return out, strs, fmt.Errorf("object: %w", err)
	}
	if out.Graph, strs[3], err = Encode(q.Graph); err != nil {
		return out, strs, fmt.Errorf("graph: %w", err)
	}
	return out, strs, nil
}

// appendTerm appends an encoded term's bytes to buf, growing it as needed.
func appendTerm(buf []byte, t EncodedTerm) []byte {
	return append(buf, t[:]...)
}

// The nine key writers below each append the positions named by the
// function to buf, in that order. Default-graph writers omit the graph
// term because DSPO/DPOS/DOSP only ever hold default-graph quads.

func WriteSPO(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Subject)
	buf = appendTerm(buf, q.Predicate)
	return appendTerm(buf, q.Object)
}

func WritePOS(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Predicate)
	buf = appendTerm(buf, q.Object)
	return appendTerm(buf, q.Subject)
}

func WriteOSP(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Object)
	buf = appendTerm(buf, q.Subject)
	return appendTerm(buf, q.Predicate)
}

func WriteSPOG(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Subject)
	buf = appendTerm(buf, q.Predicate)
	buf = appendTerm(buf, q.Object)
	return appendTerm(buf, q.Graph)
}

func WritePOSG(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Predicate)
	buf = appendTerm(buf, q.Object)
	buf = appendTerm(buf, q.Subject)
	return appendTerm(buf, q.Graph)
}

func WriteOSPG(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Object)
	buf = appendTerm(buf, q.Subject)
	buf = appendTerm(buf, q.Predicate)
	return appendTerm(buf, q.Graph)
}

func WriteGSPO(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Graph)
	buf = appendTerm(buf, q.Subject)
	buf = appendTerm(buf, q.Predicate)
	return appendTerm(buf, q.Object)
}

func WriteGPOS(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Graph)
	buf = appendTerm(buf, q.Predicate)
	buf = appendTerm(buf, q.Object)
	return appendTerm(buf, q.Subject)
}

func WriteGOSP(buf []byte, q EncodedQuad) []byte {
	buf = appendTerm(buf, q.Graph)
	buf = appendTerm(buf, q.Object)
	buf = appendTerm(buf, q.Subject)
	return appendTerm(buf, q.Predicate)
}

// EncodeTermPrefix concatenates the given encoded terms, for building scan
// prefixes (e.g. subject-only, subject+predicate).
func EncodeTermPrefix(terms ...EncodedTerm) []byte {
	buf := make([]byte, 0, len(terms)*EncodedTermSize)
	for _, t := range terms {
		buf = appendTerm(buf, t)
	}
	return buf
}

// QuadEncoding selects one of the nine key decoders.
type QuadEncoding byte

const (
	EncodingSPO QuadEncoding = iota
	EncodingPOS
	EncodingOSP
	EncodingSPOG
	EncodingPOSG
	EncodingOSPG
	EncodingGSPO
	EncodingGPOS
	EncodingGOSP
)

// Decode parses a composite key written by the writer matching e back into
// an EncodedQuad. Default-graph variants synthesize the default-graph
// marker for the graph position.
func (e QuadEncoding) Decode(key []byte) (EncodedQuad, error) {
	want := 3
	if e >= EncodingSPOG {
		want = 4
	}
	if len(key) < want*EncodedTermSize {
		return EncodedQuad{}, fmt.Errorf("encoding: short quad key: need %d bytes, got %d", want*EncodedTermSize, len(key))
	}

	var a, b, c, d EncodedTerm
	copy(a[:], key[0*EncodedTermSize:1*EncodedTermSize])
	copy(b[:], key[1*EncodedTermSize:2*EncodedTermSize])
	copy(c[:], key[2*EncodedTermSize:3*EncodedTermSize])
	if want == 4 {
		copy(d[:], key[3*EncodedTermSize:4*EncodedTermSize])
	}

	var defaultGraph EncodedTerm
	defaultGraph[0] = byte(rdf.TermTypeDefaultGraph)

	switch e {
	case EncodingSPO:
		return EncodedQuad{Subject: a, Predicate: b, Object: c, Graph: defaultGraph}, nil
	case EncodingPOS:
		return EncodedQuad{Predicate: a, Object: b, Subject: c, Graph: defaultGraph}, nil
	case EncodingOSP:
		return EncodedQuad{Object: a, Subject: b, Predicate: c, Graph: defaultGraph}, nil
	case EncodingSPOG:
		return EncodedQuad{Subject: a, Predicate: b, Object: c, Graph: d}, nil
	case EncodingPOSG:
		return EncodedQuad{Predicate: a, Object: b, Subject: c, Graph: d}, nil
	case EncodingOSPG:
		return EncodedQuad{Object: a, Subject: b, Predicate: c, Graph: d}, nil
	case EncodingGSPO:
		return EncodedQuad{Graph: a, Subject: b, Predicate: c, Object: d}, nil
	case EncodingGPOS:
		return EncodedQuad{Graph: a, Predicate: b, Object: c, Subject: d}, nil
	case EncodingGOSP:
		return EncodedQuad{Graph: a, Object: b, Subject: c, Predicate: d}, nil
	default:
		return EncodedQuad{}, fmt.Errorf("encoding: unknown quad encoding %d", e)
	}
}
