package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// pathLocks serializes writers on the same settings file within a process,
// across every FileStore opened on it.
var pathLocks sync.Map // map[string]*sync.Mutex

func pathLock(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	mu, _ := pathLocks.LoadOrStore(path, new(sync.Mutex))
	return mu.(*sync.Mutex)
}

// lockPath returns the lock file guarding the settings file at path.
func lockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+Namespace+".lock")
}

// acquire takes the exclusive write lock of the settings file at path:
// the in-process mutex first, then the advisory file lock shared with
// other processes. The returned func releases both.
func acquire(path string) (release func(), err error) {
	mu := pathLock(path)
	mu.Lock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("settings: create %s: %w", dir, err)
	}
	lp := lockPath(path)
	f, err := os.OpenFile(lp, os.O_RDWR|os.O_CREATE, 0o644) //nolint:gosec // lock file next to the store
	if err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("settings: open lock %s: %w", lp, err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		mu.Unlock()
		return nil, fmt.Errorf("settings: lock %s: %w", lp, err)
	}

	return func() {
		_ = unlockFile(f)
		_ = f.Close()
		mu.Unlock()
	}, nil
}
