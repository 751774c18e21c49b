package kv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mGet = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadstore_kv_get_count",
		Help: "Number of get calls against the substrate.",
	})
	mGetMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadstore_kv_get_miss",
		Help: "Number of get calls that found no value.",
	})
	mGetSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "quadstore_kv_get_size_bytes",
		Help: "Size of values returned by get.",
	})
	mPut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadstore_kv_put_count",
		Help: "Number of put calls against the substrate.",
	})
	mPutSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "quadstore_kv_put_size_bytes",
		Help: "Size of values written by put.",
	})
	mDel = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadstore_kv_del_count",
		Help: "Number of delete calls against the substrate.",
	})
	mScan = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadstore_kv_scan_count",
		Help: "Number of prefix scans started, by keyspace.",
	}, []string{"keyspace"})
	mCommit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadstore_kv_commit_count",
		Help: "Number of committed transactions.",
	})
	mCommitConflict = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadstore_kv_commit_conflict_count",
		Help: "Number of commits that failed with a conflict.",
	})
	mCommitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "quadstore_kv_commit_seconds",
		Help: "Time spent committing a transaction.",
	})
)

// instrumentedStore wraps a Store, recording Prometheus metrics around the
// get, put, delete, scan and commit calls it forwards; the other calls pass
// through unobserved.
type instrumentedStore struct {
	inner Store
}

// Instrument wraps inner with Prometheus counters/histograms matching the
// shape of a cayley kv.DB metrics wrapper: gets, puts, deletes, scans,
// commits and conflicts are all observed.
func Instrument(inner Store) Store {
	return &instrumentedStore{inner: inner}
}

func (s *instrumentedStore) View(fn func(Txn) error) error {
	return s.inner.View(func(txn Txn) error {
		return fn(&instrumentedTxn{inner: txn})
	})
}

func (s *instrumentedStore) Update(fn func(Txn) error) error {
	timer := prometheus.NewTimer(mCommitSeconds)
	err := s.inner.Update(func(txn Txn) error {
		return fn(&instrumentedTxn{inner: txn})
	})
	timer.ObserveDuration()
	if err == nil {
		mCommit.Inc()
	} else if err == ErrConflict {
		mCommitConflict.Inc()
	}
	return err
}

func (s *instrumentedStore) Begin(writable bool) (Txn, error) {
	txn, err := s.inner.Begin(writable)
	if err != nil {
		return nil, err
	}
	return &instrumentedTxn{inner: txn}, nil
}

func (s *instrumentedStore) Flush() error      { return s.inner.Flush() }
func (s *instrumentedStore) FlushAsync() error { return s.inner.FlushAsync() }
func (s *instrumentedStore) Close() error      { return s.inner.Close() }

type instrumentedTxn struct {
	inner Txn
}

func (t *instrumentedTxn) Commit() error {
	timer := prometheus.NewTimer(mCommitSeconds)
	err := t.inner.Commit()
	timer.ObserveDuration()
	if err == nil {
		mCommit.Inc()
	} else if err == ErrConflict {
		mCommitConflict.Inc()
	}
	return err
}

func (t *instrumentedTxn) Rollback() error { return t.inner.Rollback() }

func (t *instrumentedTxn) Get(ks Keyspace, key []byte) ([]byte, error) {
	mGet.Inc()
	val, err := t.inner.Get(ks, key)
	if err == ErrNotFound {
		mGetMiss.Inc()
	} else if err == nil {
		mGetSize.Observe(float64(len(val)))
	}
	return val, err
}

func (t *instrumentedTxn) Contains(ks Keyspace, key []byte) (bool, error) {
	return t.inner.Contains(ks, key)
}

func (t *instrumentedTxn) Set(ks Keyspace, key, value []byte) error {
	mPut.Inc()
	mPutSize.Observe(float64(len(value)))
	return t.inner.Set(ks, key, value)
}

func (t *instrumentedTxn) Delete(ks Keyspace, key []byte) error {
	mDel.Inc()
	return t.inner.Delete(ks, key)
}

func (t *instrumentedTxn) Scan(ks Keyspace, prefix []byte) Iterator {
	mScan.WithLabelValues(ks.String()).Inc()
	return t.inner.Scan(ks, prefix)
}

func (t *instrumentedTxn) Clear(ks Keyspace) error { return t.inner.Clear(ks) }

func (t *instrumentedTxn) GetVersion() ([]byte, error) { return t.inner.GetVersion() }
func (t *instrumentedTxn) SetVersion(v []byte) error   { return t.inner.SetVersion(v) }
