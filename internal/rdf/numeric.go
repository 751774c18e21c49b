package rdf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"
)

// XSD datatype IRIs used by the typed-literal constructors below and by the
// encoder's fixed-width fast paths for numeric, boolean, and temporal
// literals.
var (
	XSDString   = NewNamedNode("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger  = NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal  = NewNamedNode("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble   = NewNamedNode("http://www.w3.org/2001/XMLSchema#double")
	XSDBoolean  = NewNamedNode("http://www.w3.org/2001/XMLSchema#boolean")
	XSDDateTime = NewNamedNode("http://www.w3.org/2001/XMLSchema#dateTime")
	XSDDate     = NewNamedNode("http://www.w3.org/2001/XMLSchema#date")
)

func NewIntegerLiteral(value int64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%d", value), XSDInteger)
}

// NewDoubleLiteral formats value so the lexical form always carries a
// decimal point or exponent, matching xsd:double's lexical space.
func NewDoubleLiteral(value float64) *Literal {
	str := fmt.Sprintf("%g", value)
	if !strings.ContainsAny(str, ".eE") {
		str += ".0"
	}
	return NewLiteralWithDatatype(str, XSDDouble)
}

func NewBooleanLiteral(value bool) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%t", value), XSDBoolean)
}

func NewDateTimeLiteral(value time.Time) *Literal {
	return NewLiteralWithDatatype(value.Format(time.RFC3339), XSDDateTime)
}

// EncodeInt64BigEndian and its counterparts convert int64/float64 values to
// and from their 8-byte big-endian form. The encoder in internal/encoding
// writes its fixed-width payloads with encoding/binary directly and does not
// call these helpers.

func EncodeInt64BigEndian(value int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(value))
	return buf
}

func DecodeInt64BigEndian(buf []byte) int64 {
	return int64(binary.BigEndian.Uint64(buf))
}

func EncodeFloat64BigEndian(value float64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(value))
	return buf
}

func DecodeFloat64BigEndian(buf []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(buf))
}
