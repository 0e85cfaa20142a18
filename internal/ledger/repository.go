package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// Repository is the single owner of the ledger snapshot. All reads go
// through View and all mutations through Update; Update runs the whole
// transition atomically, so no caller ever observes a partial state.
type Repository interface {
	// View calls fn with the live snapshot under a read lock. fn must
	// not mutate it or retain references past the call.
	View(fn func(*Snapshot))
	// Update calls fn with the live snapshot under the write lock and
	// persists the result when fn succeeds. A failing fn must leave the
	// snapshot untouched; the store then stays byte-for-byte unchanged.
	Update(fn func(*Snapshot) error) error
}

// FileRepository keeps the snapshot in memory and mirrors every
// successful mutation to a JSON file. Persistence is fire-and-forget:
// a failed write is logged and the in-memory state stays authoritative
// for the lifetime of the process (it just won't survive a restart).
type FileRepository struct {
	mu   sync.RWMutex
	path string
	snap *Snapshot
	log  *logrus.Logger
}

// OpenFileRepository loads the snapshot at path, seeding the default
// state when the file is missing, empty, or unreadable. A malformed
// file is logged and replaced by the seed rather than aborting startup.
func OpenFileRepository(path string, log *logrus.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	r := &FileRepository{path: path, log: log}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepository) load() error {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(raw) == 0) {
		r.snap = DefaultSnapshot()
		r.flushLocked()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		r.log.WithError(err).WithField("path", r.path).
			Warn("snapshot unreadable, falling back to seeded state")
		r.snap = DefaultSnapshot()
		r.flushLocked()
		return nil
	}
	r.snap = &snap
	return nil
}

func (r *FileRepository) flushLocked() {
	raw, err := json.MarshalIndent(r.snap, "", "  ")
	if err != nil {
		r.log.WithError(err).Warn("snapshot marshal failed, state not persisted")
		return
	}
	if err := os.WriteFile(r.path, raw, 0o600); err != nil {
		r.log.WithError(err).WithField("path", r.path).
			Warn("snapshot write failed, state not persisted")
	}
}

func (r *FileRepository) View(fn func(*Snapshot)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.snap)
}

func (r *FileRepository) Update(fn func(*Snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := fn(r.snap); err != nil {
		return err
	}
	r.flushLocked()
	return nil
}
