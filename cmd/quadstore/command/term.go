package command

import (
	"fmt"
	"strings"

	"github.com/oxicore/quadstore/internal/rdf"
)

// parseTerm reads the small N-Quads-like surface this CLI accepts:
// <iri>, _:label, "value", "value"@lang, or "value"^^<datatype-iri>.
// A fuller grammar belongs to a parser layer, out of scope here.
func parseTerm(raw string) (rdf.Term, error) {
	switch {
	case strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">"):
		return rdf.NewNamedNode(raw[1 : len(raw)-1]), nil

	case strings.HasPrefix(raw, "_:"):
		return rdf.NewBlankNode(strings.TrimPrefix(raw, "_:")), nil

	case strings.HasPrefix(raw, `"`):
		return parseLiteral(raw)

	default:
		return nil, fmt.Errorf("command: unrecognized term %q (want <iri>, _:label, or \"literal\")", raw)
	}
}

func parseLiteral(raw string) (rdf.Term, error) {
	end := strings.LastIndexByte(raw, '"')
	if end <= 0 {
		return nil, fmt.Errorf("command: unterminated literal %q", raw)
	}
	value := raw[1:end]
	suffix := raw[end+1:]

	switch {
	case suffix == "":
		return rdf.NewLiteral(value), nil
	case strings.HasPrefix(suffix, "@"):
		return rdf.NewLiteralWithLanguage(value, suffix[1:]), nil
	case strings.HasPrefix(suffix, "^^<") && strings.HasSuffix(suffix, ">"):
		datatype := suffix[3 : len(suffix)-1]
		return rdf.NewLiteralWithDatatype(value, rdf.NewNamedNode(datatype)), nil
	default:
		return nil, fmt.Errorf("command: unrecognized literal suffix %q", suffix)
	}
}
