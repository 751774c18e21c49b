// Package quadstore is the storage façade of an indexed RDF quad engine:
// nine permutation keyspaces plus a graph-name registry and a
// content-addressed string interner, backed by an embeddable ordered
// key-value substrate (BadgerDB). It exposes membership checks, pattern
// scans, insert/remove, graph management, and a transactional mirror of
// the same operations.
package quadstore

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
)

// LatestStorageVersion is the on-disk layout version this build writes and
// expects to read. A stored version 0 is migrated; any other version that
// differs from LatestStorageVersion is rejected rather than upgraded.
const LatestStorageVersion uint64 = 1

// Store is the non-transactional storage façade. It is safe to share
// across goroutines; the substrate supplies its own synchronization.
type Store struct {
	kv     kv.Store
	logger *log.Logger
}

type openConfig struct {
	metrics bool
	logger  *log.Logger
}

// Option configures Open.
type Option func(*openConfig)

// WithMetrics wraps the substrate with Prometheus instrumentation.
func WithMetrics() Option {
	return func(c *openConfig) { c.metrics = true }
}

// WithLogger overrides the default stderr logger used for open-time and
// migration diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *openConfig) { c.logger = l }
}

// Open opens (creating if absent) a store rooted at path, running the
// version handshake described in the on-disk layout contract: a fresh
// store is stamped with LatestStorageVersion, a v0 store is migrated in
// place, and any other mismatch is rejected.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := openConfig{logger: log.New(os.Stderr, "quadstore: ", log.LstdFlags)}
	for _, opt := range opts {
		opt(&cfg)
	}

	backing, err := kv.OpenBadger(path)
	if err != nil {
		return nil, ioError(err)
	}

	var substrate kv.Store = backing
	if cfg.metrics {
		substrate = kv.Instrument(substrate)
	}

	s := &Store{kv: substrate, logger: cfg.logger}
	if err := s.ensureVersion(); err != nil {
		_ = backing.Close()
		return nil, err
	}
	return s, nil
}

// New opens a temporary store under the OS temp directory. The caller is
// responsible for removing the directory; Close alone does not.
func New(opts ...Option) (*Store, error) {
	dir, err := os.MkdirTemp("", "quadstore-")
	if err != nil {
		return nil, ioError(err)
	}
	return Open(dir, opts...)
}

func (s *Store) ensureVersion() error {
	var version uint64
	var fresh bool

	err := s.kv.Update(func(txn kv.Txn) error {
		raw, err := txn.GetVersion()
		if err == kv.ErrNotFound {
			fresh = true
			version = LatestStorageVersion
			return txn.SetVersion(encodeVersion(version))
		}
		if err != nil {
			return err
		}
		if len(raw) != 8 {
			return invalidDataError(fmt.Errorf("corrupt oxversion key: %d bytes", len(raw)))
		}
		version = binary.BigEndian.Uint64(raw)
		return nil
	})
	if err != nil {
		return ioError(err)
	}
	if fresh {
		return nil
	}

	switch {
	case version == 0:
		return s.migrateV0ToV1()
	case version < LatestStorageVersion:
		return invalidDataError(fmt.Errorf(
			"store uses outdated encoding version %d (want %d): automated migration is not supported past v0; dump the dataset with a compatible build and reload it",
			version, LatestStorageVersion))
	case version == LatestStorageVersion:
		return nil
	default:
		return invalidDataError(fmt.Errorf(
			"store uses encoding version %d, newer than this build's %d: upgrade the engine to open this store",
			version, LatestStorageVersion))
	}
}

// migrateV0ToV1 scans every quad and registers the graph of each
// named-graph quad, then stamps the store at version 1. This is the only
// migration step the engine performs automatically.
func (s *Store) migrateV0ToV1() error {
	s.logger.Printf("migrating store from version 0 to version 1")

	err := s.kv.Update(func(txn kv.Txn) error {
		// Every named-graph quad (and only those) lives in GSPO, so
		// registering that keyspace's graph terms covers the full
		// "for each quad with a non-default graph" migration step.
		gspoIt := txn.Scan(kv.KeyspaceGSPO, nil)
		defer gspoIt.Close()
		for gspoIt.Next() {
			eq, err := encoding.EncodingGSPO.Decode(gspoIt.Key())
			if err != nil {
				return invalidDataError(err)
			}
			if _, err := insertNamedGraphTxn(txn, eq.Graph); err != nil {
				return err
			}
		}
		return txn.SetVersion(encodeVersion(1))
	})
	if err != nil {
		return ioError(err)
	}
	return s.kv.Flush()
}

func encodeVersion(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// Close releases the underlying substrate handle.
func (s *Store) Close() error {
	return ioError(s.kv.Close())
}

// Flush durably persists all committed writes.
func (s *Store) Flush() error {
	return ioError(s.kv.Flush())
}

// FlushAsync forwards to the substrate's FlushAsync. With the Badger
// substrate it blocks until the flush completes, like Flush.
func (s *Store) FlushAsync() error {
	return ioError(s.kv.FlushAsync())
}
