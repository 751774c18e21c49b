// Package kv is the substrate contract the storage façade is built on: an
// embeddable ordered key-value store with named keyspaces, point get/put/
// delete, ordered prefix iteration, durable flush, and multi-keyspace
// transactions with optimistic-conflict semantics. The façade treats it as
// a black box with exactly these capabilities.
package kv

import "errors"

// ErrNotFound is returned by Txn.Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// ErrConflict is returned by Txn.Commit when a concurrent writer raced this
// transaction; the caller is expected to retry.
var ErrConflict = errors.New("kv: transaction conflict")

// ErrReadOnly is returned by mutating calls on a read-only transaction.
var ErrReadOnly = errors.New("kv: transaction is read-only")

// Keyspace names one of the store's eleven named keyspaces.
type Keyspace byte

const (
	KeyspaceID2Str Keyspace = iota
	KeyspaceSPOG
	KeyspacePOSG
	KeyspaceOSPG
	KeyspaceGSPO
	KeyspaceGPOS
	KeyspaceGOSP
	KeyspaceDSPO
	KeyspaceDPOS
	KeyspaceDOSP
	KeyspaceGraphs

	keyspaceCount
)

func (k Keyspace) String() string {
	switch k {
	case KeyspaceID2Str:
		return "id2str"
	case KeyspaceSPOG:
		return "spog"
	case KeyspacePOSG:
		return "posg"
	case KeyspaceOSPG:
		return "ospg"
	case KeyspaceGSPO:
		return "gspo"
	case KeyspaceGPOS:
		return "gpos"
	case KeyspaceGOSP:
		return "gosp"
	case KeyspaceDSPO:
		return "dspo"
	case KeyspaceDPOS:
		return "dpos"
	case KeyspaceDOSP:
		return "dosp"
	case KeyspaceGraphs:
		return "graphs"
	default:
		return "unknown"
	}
}

// Store opens transactions against the eleven keyspaces plus the reserved
// default-keyspace version key.
type Store interface {
	// View runs fn in a read-only transaction.
	View(fn func(Txn) error) error
	// Update runs fn in a read-write transaction. If fn returns nil, Update
	// attempts to commit; ErrConflict from the commit is returned to the
	// caller unchanged so it can retry.
	Update(fn func(Txn) error) error

	// Begin opens a transaction the caller must Commit or Rollback
	// explicitly. Use this (rather than View/Update) when a transaction
	// must outlive a single call, e.g. to back a pattern-scan iterator
	// that the caller drains at its own pace.
	Begin(writable bool) (Txn, error)

	// Flush durably persists all committed writes.
	Flush() error
	// FlushAsync requests a durable flush. BadgerStore performs it
	// synchronously, exactly as Flush does, and returns once it completes.
	FlushAsync() error

	Close() error
}

// Txn is a transaction spanning all eleven keyspaces plus the reserved
// version key, with snapshot-isolated reads.
type Txn interface {
	Get(ks Keyspace, key []byte) ([]byte, error)
	Set(ks Keyspace, key, value []byte) error
	Delete(ks Keyspace, key []byte) error
	Contains(ks Keyspace, key []byte) (bool, error)

	// Scan returns an ordered iterator over all keys in ks with the given
	// prefix. A nil prefix scans the whole keyspace.
	Scan(ks Keyspace, prefix []byte) Iterator

	// Clear removes every key in ks.
	Clear(ks Keyspace) error

	// GetVersion/SetVersion access the reserved version key that lives
	// outside the eleven named keyspaces.
	GetVersion() ([]byte, error)
	SetVersion([]byte) error

	// Commit/Rollback are only used on transactions opened with Begin;
	// View/Update call them internally.
	Commit() error
	Rollback() error
}

// Iterator walks an ordered range of key-value pairs. Iteration is a
// snapshot of the keyspace as of when Scan was called.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Close() error
}
