package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"moviemeta/internal/services"
)

// Lock is an exclusive advisory lock on one dataset path.
type Lock struct {
	lock *flock.Flock
}

// LockPath returns the lock file used for datasetPath under stateDir. The
// name is derived from the absolute dataset path so that different relative
// spellings of the same file share one lock.
func LockPath(stateDir, datasetPath string) (string, error) {
	abs, err := filepath.Abs(datasetPath)
	if err != nil {
		return "", fmt.Errorf("resolve dataset path: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	name := fmt.Sprintf("%s-%s.lock", filepath.Base(abs), hex.EncodeToString(sum[:])[:12])
	return filepath.Join(stateDir, name), nil
}

// AcquireLock takes the lock without blocking. A lock held by another
// process yields an error wrapping services.ErrDatasetLocked.
func AcquireLock(stateDir, datasetPath string) (*Lock, error) {
	lockPath, err := LockPath(stateDir, datasetPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire dataset lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrDatasetLocked, "dataset", "lock",
			fmt.Sprintf("another moviemeta run is updating %s", datasetPath), nil)
	}
	return &Lock{lock: fl}, nil
}

// Release unlocks the dataset.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
