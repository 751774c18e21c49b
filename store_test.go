package quadstore

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/oxicore/quadstore/internal/encoding"
	"github.com/oxicore/quadstore/internal/kv"
	"github.com/oxicore/quadstore/internal/rdf"
)

func TestOpenFreshStoreStampsLatestVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	var raw []byte
	err = s.kv.View(func(txn kv.Txn) error {
		var err error
		raw, err = txn.GetVersion()
		return err
	})
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if binary.BigEndian.Uint64(raw) != LatestStorageVersion {
		t.Errorf("stamped version = %d, want %d", binary.BigEndian.Uint64(raw), LatestStorageVersion)
	}
}

func TestOpenReopenPreservesVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
}

func TestOpenRejectsFutureVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	err = s.kv.Update(func(txn kv.Txn) error {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, LatestStorageVersion+1)
		return txn.SetVersion(buf)
	})
	if err != nil {
		t.Fatalf("SetVersion: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err = Open(dir)
	if err == nil {
		t.Fatal("expected Open to reject a store stamped with a future version")
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Kind != KindInvalidData {
		t.Errorf("expected KindInvalidData, got %v", err)
	}
}

func TestMigrateV0RegistersNamedGraphs(t *testing.T) {
	dir := t.TempDir()
	backing, err := kv.OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}

	q := rdf.NewQuad(
		rdf.NewNamedNode("http://example.org/s"),
		rdf.NewNamedNode("http://example.org/p"),
		rdf.NewNamedNode("http://example.org/o"),
		rdf.NewNamedNode("http://example.org/g1"),
	)
	eq, _, err := encoding.EncodeQuad(q)
	if err != nil {
		t.Fatalf("EncodeQuad: %v", err)
	}
	gspoKey := encoding.WriteGSPO(nil, eq)

	err = backing.Update(func(txn kv.Txn) error {
		if err := txn.Set(kv.KeyspaceGSPO, gspoKey, nil); err != nil {
			return err
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, 0)
		return txn.SetVersion(buf)
	})
	if err != nil {
		t.Fatalf("seed v0 store: %v", err)
	}
	if err := backing.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open (migrate): %v", err)
	}
	defer s.Close()

	registered, err := s.ContainsNamedGraph(rdf.NewNamedNode("http://example.org/g1"))
	if err != nil {
		t.Fatalf("ContainsNamedGraph: %v", err)
	}
	if !registered {
		t.Error("migrating from v0 should register every graph found in GSPO")
	}

	var raw []byte
	err = s.kv.View(func(txn kv.Txn) error {
		var err error
		raw, err = txn.GetVersion()
		return err
	})
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if binary.BigEndian.Uint64(raw) != 1 {
		t.Errorf("version after migration = %d, want 1", binary.BigEndian.Uint64(raw))
	}
}
