// Package encoding implements the binary term/quad encoder: a mapping
// between RDF terms and fixed-width byte sequences, and the nine composite
// key writers used by the index set. Literals of the fixed-width subtypes
// (integer, decimal, double, boolean, dateTime, date) decode to a canonical
// lexical form, which can differ from the lexical form that was encoded;
// quoted-triple terms encode but do not decode.
package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oxicore/quadstore/internal/rdf"
	"github.com/zeebo/xxh3"
)

const (
	// MaxInlineStringSize is the largest lexical form stored inline in an
	// encoded term instead of being hashed into the interner.
	MaxInlineStringSize = 16

	// EncodedTermSize is the fixed width of every encoded term: one type
	// byte plus a 16-byte inline/hash payload.
	EncodedTermSize = 17

	// WrittenTermMaxSize bounds the worst-case encoding length of a single
	// term; callers pre-size scratch buffers to 4*WrittenTermMaxSize to
	// avoid reallocation on the insert/remove hot path.
	WrittenTermMaxSize = EncodedTermSize
)

// EncodedTerm is the byte-level form of a term: a type tag followed by
// either inline payload or a 128-bit hash.
type EncodedTerm [EncodedTermSize]byte

// Type extracts the term's type tag.
func (e EncodedTerm) Type() rdf.TermType { return rdf.TermType(e[0]) }

// IsDefaultGraph reports whether e is the default-graph marker.
func (e EncodedTerm) IsDefaultGraph() bool { return e.Type() == rdf.TermTypeDefaultGraph }

// NeedsStringLookup reports whether decoding e may require a round trip
// through the interner. Blank nodes and plain string literals use one tag
// for both their inline and hashed forms, so they always report true; the
// decoder falls back to the inline payload when no interned string is
// found.
func (e EncodedTerm) NeedsStringLookup() bool {
	switch e.Type() {
	case rdf.TermTypeNamedNode, rdf.TermTypeBlankNode, rdf.TermTypeStringLiteral,
		rdf.TermTypeLangStringLiteral, rdf.TermTypeTypedLiteral, rdf.TermTypeQuotedTriple:
		return true
	default:
		return false
	}
}

// Hash128 computes a 128-bit xxh3 hash of s, big-endian encoded so that
// lexicographic byte comparison matches the hash's own (semantically
// meaningless) ordering.
func Hash128(s string) [16]byte {
	h := xxh3.Hash128([]byte(s))
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], h.Hi)
	binary.BigEndian.PutUint64(out[8:16], h.Lo)
	return out
}

// Encode encodes a term into its fixed-width byte form. When the returned
// string pointer is non-nil, the caller must ensure it is present in the
// interner under the hash carried in the encoded term's payload.
func Encode(term rdf.Term) (EncodedTerm, *string, error) {
	switch t := term.(type) {
	case *rdf.NamedNode:
		return encodeNamedNode(t)
	case *rdf.BlankNode:
		return encodeBlankNode(t)
	case *rdf.Literal:
		return encodeLiteral(t)
	case *rdf.DefaultGraphTerm:
		return encodeDefaultGraph()
	case *rdf.QuotedTriple:
		return encodeQuotedTriple(t)
	default:
		var zero EncodedTerm
		return zero, nil, fmt.Errorf("encoding: unsupported term type %T", term)
	}
}

func encodeNamedNode(n *rdf.NamedNode) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeNamedNode)
	hash := Hash128(n.IRI)
	copy(e[1:], hash[:])
	return e, &n.IRI, nil
}

func encodeBlankNode(b *rdf.BlankNode) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeBlankNode)

	if num, err := strconv.ParseUint(b.ID, 10, 64); err == nil {
		binary.BigEndian.PutUint64(e[1:9], num)
		return e, nil, nil
	}

	hash := Hash128(b.ID)
	copy(e[1:], hash[:])
	return e, &b.ID, nil
}

func encodeLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	if lit.Datatype != nil {
		switch lit.Datatype.IRI {
		case rdf.XSDInteger.IRI:
			return encodeIntegerLiteral(lit)
		case rdf.XSDDecimal.IRI:
			return encodeFixedLiteral(lit, rdf.TermTypeDecimalLiteral)
		case rdf.XSDDouble.IRI:
			return encodeFixedLiteral(lit, rdf.TermTypeDoubleLiteral)
		case rdf.XSDBoolean.IRI:
			return encodeBooleanLiteral(lit)
		case rdf.XSDDateTime.IRI:
			return encodeDateTimeLiteral(lit)
		case rdf.XSDDate.IRI:
			return encodeDateLiteral(lit)
		default:
			return encodeTypedLiteral(lit)
		}
	}
	if lit.Language != "" {
		return encodeLangStringLiteral(lit)
	}
	return encodeStringLiteral(lit)
}

func encodeStringLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeStringLiteral)

	if len(lit.Value) <= MaxInlineStringSize {
		copy(e[1:], lit.Value)
		return e, nil, nil
	}

	hash := Hash128(lit.Value)
	copy(e[1:], hash[:])
	return e, &lit.Value, nil
}

func encodeLangStringLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeLangStringLiteral)

	combined := lit.Value + "@" + lit.Language
	if lit.Direction != "" {
		combined += "--" + lit.Direction
	}
	hash := Hash128(combined)
	copy(e[1:], hash[:])
	return e, &combined, nil
}

func encodeTypedLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeTypedLiteral)

	combined := lit.Value + "^^" + lit.Datatype.IRI
	hash := Hash128(combined)
	copy(e[1:], hash[:])
	return e, &combined, nil
}

func encodeIntegerLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeIntegerLiteral)

	value, err := strconv.ParseInt(lit.Value, 10, 64)
	if err != nil {
		return e, nil, fmt.Errorf("encoding: invalid integer literal %q: %w", lit.Value, err)
	}
	binary.BigEndian.PutUint64(e[1:9], uint64(value))
	return e, nil, nil
}

func encodeFixedLiteral(lit *rdf.Literal, tag rdf.TermType) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(tag)

	value, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		return e, nil, fmt.Errorf("encoding: invalid numeric literal %q: %w", lit.Value, err)
	}
	binary.BigEndian.PutUint64(e[1:9], math.Float64bits(value))
	return e, nil, nil
}

func encodeBooleanLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeBooleanLiteral)

	value, err := strconv.ParseBool(lit.Value)
	if err != nil {
		return e, nil, fmt.Errorf("encoding: invalid boolean literal %q: %w", lit.Value, err)
	}
	if value {
		e[1] = 1
	}
	return e, nil, nil
}

func encodeDateTimeLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeDateTimeLiteral)

	trimmed := strings.TrimSpace(lit.Value)
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", trimmed)
		if err != nil {
			return e, nil, fmt.Errorf("encoding: invalid dateTime literal %q: %w", lit.Value, err)
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	binary.BigEndian.PutUint64(e[1:9], uint64(t.UnixNano()))
	return e, nil, nil
}

func encodeDateLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeDateLiteral)

	t, err := time.Parse("2006-01-02", strings.TrimSpace(lit.Value))
	if err != nil {
		return e, nil, fmt.Errorf("encoding: invalid date literal %q: %w", lit.Value, err)
	}
	days := t.Unix() / 86400
	binary.BigEndian.PutUint64(e[1:9], uint64(days))
	return e, nil, nil
}

func encodeQuotedTriple(qt *rdf.QuotedTriple) (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeQuotedTriple)

	serialized := qt.String()
	hash := Hash128(serialized)
	copy(e[1:], hash[:])
	return e, &serialized, nil
}

func encodeDefaultGraph() (EncodedTerm, *string, error) {
	var e EncodedTerm
	e[0] = byte(rdf.TermTypeDefaultGraph)
	return e, nil, nil
}
