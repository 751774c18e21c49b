// Package rdf holds the RDF term/quad data model consumed by the storage
// engine. In a full deployment these values are produced by parsers and the
// SPARQL evaluator; those layers are out of scope here, so this package only
// carries the shapes the storage façade needs to accept and return.
package rdf

import "fmt"

// TermType identifies the kind of an RDF term and its literal subtype, if
// any. The numeric values double as the encoded term's type tag.
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeDefaultGraph
	TermTypeQuotedTriple

	// Literal subtypes: encoded distinctly so common datatypes avoid a
	// round trip through the string interner.
	TermTypeStringLiteral
	TermTypeLangStringLiteral
	TermTypeIntegerLiteral
	TermTypeDecimalLiteral
	TermTypeDoubleLiteral
	TermTypeBooleanLiteral
	TermTypeDateTimeLiteral
	TermTypeDateLiteral
	TermTypeTypedLiteral
)

// Term is an RDF term: a named node, blank node, literal, the default-graph
// marker, or a quoted triple.
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool
}

// NamedNode is an IRI.
type NamedNode struct {
	IRI string
}

func NewNamedNode(iri string) *NamedNode { return &NamedNode{IRI: iri} }

func (n *NamedNode) Type() TermType { return TermTypeNamedNode }
func (n *NamedNode) String() string { return fmt.Sprintf("<%s>", n.IRI) }

func (n *NamedNode) Equals(other Term) bool {
	on, ok := other.(*NamedNode)
	return ok && n.IRI == on.IRI
}

// BlankNode is an opaque, store-local identifier. A numeric-looking ID is
// carried inline by the encoder rather than hashed; see
// internal/encoding's blank-node encoding for the cutoff.
type BlankNode struct {
	ID string
}

func NewBlankNode(id string) *BlankNode { return &BlankNode{ID: id} }

func (b *BlankNode) Type() TermType { return TermTypeBlankNode }
func (b *BlankNode) String() string { return fmt.Sprintf("_:%s", b.ID) }

func (b *BlankNode) Equals(other Term) bool {
	ob, ok := other.(*BlankNode)
	return ok && b.ID == ob.ID
}
