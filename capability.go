package quadstore

import "github.com/oxicore/quadstore/internal/rdf"

// StrLookup resolves interned strings by their content hash.
type StrLookup interface {
	GetStr(hash [16]byte) (string, bool, error)
	ContainsStr(hash [16]byte) (bool, error)
}

// StrContainer adds the ability to intern new strings.
type StrContainer interface {
	StrLookup
	InsertStr(hash [16]byte, value string) (bool, error)
}

// StorageLike is the capability set shared by the plain storage façade and
// the transactional façade: code that inserts or removes quads and interns
// strings can be written once against this interface and run in either
// mode.
type StorageLike interface {
	StrContainer
	Insert(q *rdf.Quad) (bool, error)
	Remove(q *rdf.Quad) (bool, error)
}
