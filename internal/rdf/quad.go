package rdf

import "fmt"

// DefaultGraphTerm is the marker term naming the unnamed default graph in
// the graph position of a Quad.
type DefaultGraphTerm struct{}

func NewDefaultGraph() *DefaultGraphTerm { return &DefaultGraphTerm{} }

func (d *DefaultGraphTerm) Type() TermType { return TermTypeDefaultGraph }
func (d *DefaultGraphTerm) String() string { return "DEFAULT" }

func (d *DefaultGraphTerm) Equals(other Term) bool {
	_, ok := other.(*DefaultGraphTerm)
	return ok
}

// QuotedTriple is an RDF-star/1.2 triple term: a triple nested inside
// another triple's subject or object position.
type QuotedTriple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewQuotedTriple builds a quoted triple, rejecting shapes that cannot occur
// as a triple's subject or predicate.
func NewQuotedTriple(subject, predicate, object Term) (*QuotedTriple, error) {
	switch subject.(type) {
	case *NamedNode, *BlankNode, *QuotedTriple:
	default:
		return nil, fmt.Errorf("rdf: quoted triple subject must be an IRI, blank node, or quoted triple, got %T", subject)
	}
	if _, ok := predicate.(*NamedNode); !ok {
		return nil, fmt.Errorf("rdf: quoted triple predicate must be an IRI, got %T", predicate)
	}
	return &QuotedTriple{Subject: subject, Predicate: predicate, Object: object}, nil
}

func (q *QuotedTriple) Type() TermType { return TermTypeQuotedTriple }

func (q *QuotedTriple) String() string {
	return fmt.Sprintf("<< %s %s %s >>", q.Subject, q.Predicate, q.Object)
}

func (q *QuotedTriple) Equals(other Term) bool {
	oq, ok := other.(*QuotedTriple)
	return ok && q.Subject.Equals(oq.Subject) && q.Predicate.Equals(oq.Predicate) && q.Object.Equals(oq.Object)
}

// Triple is a bare subject/predicate/object statement, with no graph
// position.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTriple(subject, predicate, object Term) *Triple {
	return &Triple{Subject: subject, Predicate: predicate, Object: object}
}

func (t *Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Quad is a statement placed in a graph: the default graph, identified by
// DefaultGraphTerm, or a named graph, identified by a NamedNode or
// BlankNode in the Graph position.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

func NewQuad(subject, predicate, object, graph Term) *Quad {
	return &Quad{Subject: subject, Predicate: predicate, Object: object, Graph: graph}
}

func (q *Quad) String() string {
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}
