package ledger

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// MaxEntries bounds how many notified keys the ledger retains.
// When a record would exceed the bound, the oldest key is evicted (FIFO).
const MaxEntries = 100

// Ledger is a bounded, insertion-ordered set of notification keys.
// It is safe for concurrent use; the request path relies on Record being
// an atomic check-and-append so two racing requests for the same key
// cannot both insert it.
type Ledger struct {
	mu    sync.Mutex
	store Store
	keys  []string
	index map[string]struct{}
}

// New creates a Ledger backed by store, loading any previously persisted
// keys. A missing or corrupt store yields an empty ledger, never an error:
// losing dedup history is recoverable, refusing to start is not.
func New(store Store) *Ledger {
	l := &Ledger{
		store: store,
		index: make(map[string]struct{}),
	}

	keys, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("Failed to load notification ledger, starting empty")
		return l
	}
	for _, key := range keys {
		if _, dup := l.index[key]; dup {
			continue
		}
		l.keys = append(l.keys, key)
		l.index[key] = struct{}{}
	}
	l.trimLocked()
	return l
}

// Contains reports whether key was already notified. No side effects.
func (l *Ledger) Contains(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.index[key]
	return ok
}

// Record appends key to the ledger, evicting the oldest entry if the bound
// would be exceeded. Recording an existing key is a no-op. It returns true
// when the key was newly added.
func (l *Ledger) Record(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[key]; ok {
		return false
	}
	l.keys = append(l.keys, key)
	l.index[key] = struct{}{}
	l.trimLocked()
	return true
}

// Persist writes the full current key set to the backing store
func (l *Ledger) Persist() error {
	l.mu.Lock()
	snapshot := make([]string, len(l.keys))
	copy(snapshot, l.keys)
	l.mu.Unlock()

	return l.store.Save(snapshot)
}

// Len returns the number of keys currently held
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

// Keys returns a copy of the keys in insertion order, oldest first
func (l *Ledger) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, len(l.keys))
	copy(keys, l.keys)
	return keys
}

// trimLocked evicts oldest entries until the bound holds. Callers hold l.mu.
func (l *Ledger) trimLocked() {
	for len(l.keys) > MaxEntries {
		evicted := l.keys[0]
		l.keys = l.keys[1:]
		delete(l.index, evicted)
		log.WithField("key", evicted).Debug("Evicted oldest ledger entry")
	}
}
