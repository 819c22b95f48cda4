package softhost

import (
	"fmt"
	"sync"

	"github.com/gogpu/invcolors"
)

// Class and method names of the simulated view system.
const (
	ViewClass      = invcolors.LeafClass
	ViewGroupClass = invcolors.ContainerClass
	DrawMethod     = invcolors.LeafMethod
	DispatchMethod = invcolors.ContainerMethod
)

// methodKey identifies a hookable method.
type methodKey struct {
	class  string
	method string
}

// hookEntry is a registered hook with its registration id.
type hookEntry struct {
	id   uint64
	hook invcolors.DrawHook
}

// Host is an in-process injection host for the simulated view system.
// It implements invcolors.ClassResolver and dispatches the hooks of
// View#draw and ViewGroup#dispatchDraw.
type Host struct {
	mu      sync.RWMutex
	methods map[methodKey]struct{}
	hooks   map[methodKey][]hookEntry
	nextID  uint64
}

var _ invcolors.ClassResolver = (*Host)(nil)

// NewHost returns a host exposing View#draw and ViewGroup#dispatchDraw.
func NewHost() *Host {
	return &Host{
		methods: map[methodKey]struct{}{
			{ViewClass, DrawMethod}:          {},
			{ViewGroupClass, DispatchMethod}: {},
		},
		hooks: make(map[methodKey][]hookEntry),
	}
}

// HookMethod installs h around className#method(Canvas).
func (h *Host) HookMethod(className, method string, hook invcolors.DrawHook) (func(), error) {
	key := methodKey{className, method}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.methods[key]; !ok {
		return nil, fmt.Errorf("softhost: no such method %s#%s(Canvas)", className, method)
	}
	h.nextID++
	id := h.nextID
	h.hooks[key] = append(h.hooks[key], hookEntry{id: id, hook: hook})

	var once sync.Once
	return func() {
		once.Do(func() { h.unhook(key, id) })
	}, nil
}

// HookCount returns the number of hooks installed on className#method.
func (h *Host) HookCount(className, method string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.hooks[methodKey{className, method}])
}

// TotalHooks returns the number of hooks installed on all methods.
func (h *Host) TotalHooks() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, hs := range h.hooks {
		n += len(hs)
	}
	return n
}

func (h *Host) unhook(key methodKey, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hs := h.hooks[key]
	for i, e := range hs {
		if e.id == id {
			h.hooks[key] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// Invoke runs the original method body between the hooks of
// className#method. Befores run in registration order and afters in
// reverse; every after whose before ran is called even if body panics,
// and the panic is then propagated.
func (h *Host) Invoke(className, method string, c invcolors.Canvas, n invcolors.Node, body func()) {
	h.mu.RLock()
	hs := append([]hookEntry(nil), h.hooks[methodKey{className, method}]...)
	h.mu.RUnlock()

	for i := range hs {
		if before := hs[i].hook.Before; before != nil {
			before(c, n)
		}
		if after := hs[i].hook.After; after != nil {
			defer after(c, n)
		}
	}
	body()
}
