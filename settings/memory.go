package settings

import (
	"sort"
	"sync"

	"github.com/gogpu/invcolors"
)

// Memory is an in-process Store. It is safe for concurrent use and is
// mainly useful for hosts without a shared filesystem and for tests.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]invcolors.Entry
	hooked  map[string]struct{}
	loads   int
}

var _ Store = (*Memory)(nil)
var _ invcolors.HookRecorder = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]invcolors.Entry),
		hooked:  make(map[string]struct{}),
	}
}

// Load returns the stored colors of pkg, or the defaults.
func (m *Memory) Load(pkg string) invcolors.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if e, ok := m.entries[pkg]; ok {
		return e
	}
	return invcolors.DefaultEntry(pkg)
}

// Loads returns how many times Load was called.
func (m *Memory) Loads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}

// Save stores the colors of pkg.
func (m *Memory) Save(pkg string, source, target invcolors.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[pkg] = invcolors.Entry{Package: pkg, Source: source, Target: target}
	return nil
}

// Remove deletes the colors of pkg.
func (m *Memory) Remove(pkg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, pkg)
	return nil
}

// Entries returns every stored entry sorted by package.
func (m *Memory) Entries() []invcolors.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]invcolors.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Package < out[j].Package })
	return out
}

// MarkHooked records pkg as bound.
func (m *Memory) MarkHooked(pkg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooked[pkg] = struct{}{}
	return nil
}

// HookedPackages returns the sorted set of bound packages.
func (m *Memory) HookedPackages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.hooked))
	for pkg := range m.hooked {
		out = append(out, pkg)
	}
	sort.Strings(out)
	return out
}
