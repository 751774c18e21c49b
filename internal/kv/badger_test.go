package kv

import (
	"bytes"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetDelete(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(func(txn Txn) error {
		return txn.Set(KeyspaceDSPO, []byte("k1"), []byte("v1"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.View(func(txn Txn) error {
		v, err := txn.Get(KeyspaceDSPO, []byte("k1"))
		if err != nil {
			return err
		}
		if !bytes.Equal(v, []byte("v1")) {
			t.Errorf("got %q, want %q", v, "v1")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	err = store.Update(func(txn Txn) error {
		return txn.Delete(KeyspaceDSPO, []byte("k1"))
	})
	if err != nil {
		t.Fatalf("Update delete: %v", err)
	}

	err = store.View(func(txn Txn) error {
		_, err := txn.Get(KeyspaceDSPO, []byte("k1"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View after delete: %v", err)
	}
}

func TestKeyspacesAreIsolated(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(func(txn Txn) error {
		if err := txn.Set(KeyspaceDSPO, []byte("k"), []byte("dspo")); err != nil {
			return err
		}
		return txn.Set(KeyspaceSPOG, []byte("k"), []byte("spog"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.View(func(txn Txn) error {
		v, err := txn.Get(KeyspaceDSPO, []byte("k"))
		if err != nil {
			return err
		}
		if string(v) != "dspo" {
			t.Errorf("dspo: got %q", v)
		}
		v, err = txn.Get(KeyspaceSPOG, []byte("k"))
		if err != nil {
			return err
		}
		if string(v) != "spog" {
			t.Errorf("spog: got %q", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestScanOrderedPrefix(t *testing.T) {
	store := openTestStore(t)

	keys := [][]byte{
		[]byte("a/1"), []byte("a/2"), []byte("a/3"), []byte("b/1"),
	}
	err := store.Update(func(txn Txn) error {
		for _, k := range keys {
			if err := txn.Set(KeyspaceGraphs, k, []byte("v")); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	var got []string
	err = store.View(func(txn Txn) error {
		it := txn.Scan(KeyspaceGraphs, []byte("a/"))
		defer it.Close()
		for it.Next() {
			got = append(got, string(it.Key()))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	want := []string{"a/1", "a/2", "a/3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClearKeyspace(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(func(txn Txn) error {
		txn.Set(KeyspaceDSPO, []byte("k1"), []byte("v"))
		txn.Set(KeyspaceDSPO, []byte("k2"), []byte("v"))
		return txn.Set(KeyspaceDPOS, []byte("other"), []byte("v"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.Update(func(txn Txn) error {
		return txn.Clear(KeyspaceDSPO)
	})
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}

	err = store.View(func(txn Txn) error {
		it := txn.Scan(KeyspaceDSPO, nil)
		defer it.Close()
		if it.Next() {
			t.Error("expected no keys left in cleared keyspace")
		}
		if _, err := txn.Get(KeyspaceDPOS, []byte("other")); err != nil {
			t.Errorf("other keyspace should be untouched: %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestVersionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	err := store.View(func(txn Txn) error {
		_, err := txn.GetVersion()
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound on fresh store, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	err = store.Update(func(txn Txn) error {
		return txn.SetVersion([]byte{0, 0, 0, 0, 0, 0, 0, 1})
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.View(func(txn Txn) error {
		v, err := txn.GetVersion()
		if err != nil {
			return err
		}
		if !bytes.Equal(v, []byte{0, 0, 0, 0, 0, 0, 0, 1}) {
			t.Errorf("got %v", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestReadOnlyTxnRejectsWrites(t *testing.T) {
	store := openTestStore(t)

	err := store.View(func(txn Txn) error {
		return txn.Set(KeyspaceDSPO, []byte("k"), []byte("v"))
	})
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestBeginRollbackOutlivesCall(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(func(txn Txn) error {
		return txn.Set(KeyspaceDSPO, []byte("k"), []byte("v"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	txn, err := store.Begin(false)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	it := txn.Scan(KeyspaceDSPO, nil)
	if !it.Next() {
		t.Fatal("expected at least one key")
	}
	if string(it.Key()) != "k" {
		t.Errorf("got %q", it.Key())
	}
	it.Close()
	if err := txn.Rollback(); err != nil {
		t.Errorf("Rollback: %v", err)
	}
}

func TestBeginWritableCommit(t *testing.T) {
	store := openTestStore(t)

	txn, err := store.Begin(true)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := txn.Set(KeyspaceDSPO, []byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	err = store.View(func(txn Txn) error {
		v, err := txn.Get(KeyspaceDSPO, []byte("k"))
		if err != nil {
			return err
		}
		if string(v) != "v" {
			t.Errorf("got %q", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestInstrumentPassesThrough(t *testing.T) {
	store := Instrument(openTestStore(t))

	err := store.Update(func(txn Txn) error {
		return txn.Set(KeyspaceDSPO, []byte("k"), []byte("v"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.View(func(txn Txn) error {
		v, err := txn.Get(KeyspaceDSPO, []byte("k"))
		if err != nil {
			return err
		}
		if string(v) != "v" {
			t.Errorf("got %q", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}
