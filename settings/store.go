package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/gogpu/invcolors"
)

const (
	// Namespace is the name of the shared settings store.
	Namespace = "invcolors_settings"

	// HookedAppsKey names the string set of packages that were bound.
	HookedAppsKey = "hooked_apps"

	sourceSuffix = "_source"
	targetSuffix = "_target"
)

// SourceKey returns the key holding pkg's source color.
func SourceKey(pkg string) string { return pkg + sourceSuffix }

// TargetKey returns the key holding pkg's target color.
func TargetKey(pkg string) string { return pkg + targetSuffix }

// Store is the persistent per-package color store.
type Store interface {
	invcolors.SettingsLoader
	Save(pkg string, source, target invcolors.Color) error
	Remove(pkg string) error
	Entries() []invcolors.Entry
}

// FileStore keeps settings in <dir>/invcolors_settings.xml. Reads never
// fail: a missing or unreadable file yields defaults. Each write replaces
// the file atomically, so readers in other processes see either the old
// or the new document.
//
// Writes are read-modify-write cycles under an exclusive lock: a mutex
// shared by every FileStore on the same path, plus an advisory lock file
// (flock on Unix) shared with other processes. The settings UI saving
// colors and target processes recording themselves as hooked therefore
// never overwrite each other.
type FileStore struct {
	path    string
	channel *invcolors.Channel

	reported atomic.Bool
}

var _ Store = (*FileStore)(nil)
var _ invcolors.HookRecorder = (*FileStore)(nil)

// Open returns the store rooted at dir. The directory is created on the
// first write.
func Open(dir string, opts ...Option) *FileStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FileStore{
		path:    filepath.Join(dir, Namespace+".xml"),
		channel: o.channel,
	}
}

// Path returns the location of the settings file.
func (s *FileStore) Path() string {
	return s.path
}

// Defaults returns the default (source, target) pair.
func (s *FileStore) Defaults() (source, target invcolors.Color) {
	return invcolors.Defaults()
}

// Load returns the stored colors of pkg. Absent keys and read failures
// yield the defaults.
func (s *FileStore) Load(pkg string) invcolors.Entry {
	entry := invcolors.DefaultEntry(pkg)

	p, err := s.read()
	if err != nil {
		s.channel.For(pkg).Log(slog.LevelDebug, "settings read failed, using defaults", "error", err)
		return entry
	}
	if v, ok := p.int32Value(SourceKey(pkg)); ok {
		entry.Source = invcolors.ColorFromInt32(v)
	}
	if v, ok := p.int32Value(TargetKey(pkg)); ok {
		entry.Target = invcolors.ColorFromInt32(v)
	}
	return entry
}

// Save stores the colors of pkg. The first failed write of the store is
// reported to the diagnostic channel; failures are not retried.
func (s *FileStore) Save(pkg string, source, target invcolors.Color) error {
	err := s.update(func(p *prefsFile) bool {
		p.setInt32(SourceKey(pkg), source.Int32())
		p.setInt32(TargetKey(pkg), target.Int32())
		return true
	})
	return s.report(pkg, "save", err)
}

// Remove deletes the colors of pkg, restoring the defaults.
func (s *FileStore) Remove(pkg string) error {
	err := s.update(func(p *prefsFile) bool {
		a := p.removeInt(SourceKey(pkg))
		b := p.removeInt(TargetKey(pkg))
		return a || b
	})
	return s.report(pkg, "remove", err)
}

// MarkHooked adds pkg to the set of bound packages.
func (s *FileStore) MarkHooked(pkg string) error {
	err := s.update(func(p *prefsFile) bool {
		return p.addToSet(HookedAppsKey, pkg)
	})
	return s.report(pkg, "mark hooked", err)
}

// HookedPackages returns the sorted set of packages that were bound.
func (s *FileStore) HookedPackages() []string {
	p, err := s.read()
	if err != nil {
		return nil
	}
	pkgs := p.stringSet(HookedAppsKey)
	sort.Strings(pkgs)
	return pkgs
}

// Entries returns every package with stored colors, sorted by package.
// A package with only one of its two keys reports the default for the other.
func (s *FileStore) Entries() []invcolors.Entry {
	p, err := s.read()
	if err != nil {
		return nil
	}
	return entriesFrom(p)
}

func entriesFrom(p *prefsFile) []invcolors.Entry {
	byPkg := make(map[string]*invcolors.Entry)
	get := func(pkg string) *invcolors.Entry {
		e, ok := byPkg[pkg]
		if !ok {
			d := invcolors.DefaultEntry(pkg)
			e = &d
			byPkg[pkg] = e
		}
		return e
	}

	for _, in := range p.Ints {
		switch {
		case strings.HasSuffix(in.Name, sourceSuffix):
			if v, ok := p.int32Value(in.Name); ok {
				get(strings.TrimSuffix(in.Name, sourceSuffix)).Source = invcolors.ColorFromInt32(v)
			}
		case strings.HasSuffix(in.Name, targetSuffix):
			if v, ok := p.int32Value(in.Name); ok {
				get(strings.TrimSuffix(in.Name, targetSuffix)).Target = invcolors.ColorFromInt32(v)
			}
		}
	}

	out := make([]invcolors.Entry, 0, len(byPkg))
	for _, e := range byPkg {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Package < out[j].Package })
	return out
}

func (s *FileStore) read() (*prefsFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &prefsFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", s.path, err)
	}
	return parsePrefs(data)
}

// update applies fn to the current document and writes it back if fn
// reports a change.
func (s *FileStore) update(fn func(*prefsFile) bool) error {
	release, err := acquire(s.path)
	if err != nil {
		return err
	}
	defer release()

	p, err := s.read()
	if err != nil {
		return err
	}
	if !fn(p) {
		return nil
	}
	data, err := p.marshal()
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}

func (s *FileStore) report(pkg, op string, err error) error {
	if err == nil {
		return nil
	}
	if s.reported.CompareAndSwap(false, true) {
		s.channel.For(pkg).Log(slog.LevelWarn, "settings write failed", "op", op, "error", err)
	}
	return err
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: create %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("settings: create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("settings: write %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("settings: sync %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("settings: close %s: %w", tmp, err)
	}
	// World readable so target processes can load it.
	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("settings: chmod %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("settings: rename %s: %w", tmp, err)
	}
	return nil
}
