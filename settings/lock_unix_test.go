//go:build unix

package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/gogpu/invcolors"
)

// TestFileStore_WaitsForForeignLock holds the lock file through its own
// descriptor, as another process would, and checks a save blocks until it
// is released.
func TestFileStore_WaitsForForeignLock(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	f, err := os.OpenFile(filepath.Join(dir, "."+Namespace+".lock"), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.Save("com.example", invcolors.Red, invcolors.Blue)
	}()

	select {
	case err := <-done:
		t.Fatalf("Save() finished while the lock was held: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Save() still blocked after the lock was released")
	}
	if e := s.Load("com.example"); e.Source != invcolors.Red {
		t.Errorf("Load() = %+v", e)
	}
}
