package invcolors

import (
	"log/slog"
)

// DrawHook is a pair of interceptors placed around a host draw method.
// The host guarantees After runs if and only if Before ran, even when the
// original method fails.
type DrawHook struct {
	Before func(Canvas, Node)
	After  func(Canvas, Node)
}

// ClassResolver is the injection host's view of a loaded target. It resolves
// className#method(Canvas) and installs h around it, returning a function
// that removes the hook again.
type ClassResolver interface {
	HookMethod(className, method string, h DrawHook) (unhook func(), err error)
}

// Binding is the per-target state created when a package is accepted:
// the loaded settings, the derived matrix and the installed filter.
type Binding struct {
	Entry  Entry
	Matrix ColorMatrix
	Filter *FrameFilter
}

// Package returns the bound package identifier.
func (b *Binding) Package() string {
	return b.Entry.Package
}

// Installer wires a FrameFilter into each loaded target package.
// It is the module's entry point for the injection host.
type Installer struct {
	store    SettingsLoader
	opts     options
	excluded map[string]struct{}
}

// NewInstaller returns an installer reading colors from store.
func NewInstaller(store SettingsLoader, opts ...Option) *Installer {
	o := buildOptions(opts)

	excluded := map[string]struct{}{
		PlatformPackage: {},
		SystemUIPackage: {},
	}
	if o.selfPackage != "" {
		excluded[o.selfPackage] = struct{}{}
	}
	for _, pkg := range o.excluded {
		excluded[pkg] = struct{}{}
	}

	return &Installer{store: store, opts: o, excluded: excluded}
}

// Excluded reports whether pkg is never hooked.
func (i *Installer) Excluded(pkg string) bool {
	_, ok := i.excluded[pkg]
	return ok
}

// OnPackageLoaded binds pkg: it loads the package's colors, builds the
// matrix and installs one FrameFilter on every configured draw method.
//
// Excluded packages return ErrExcluded without touching the store. If any
// hook cannot be installed, hooks placed so far are removed and an
// *InstallError is returned; the target then runs unfiltered.
func (i *Installer) OnPackageLoaded(pkg string, r ClassResolver) (*Binding, error) {
	if i.Excluded(pkg) {
		i.opts.channel.For(pkg).Log(slog.LevelDebug, "skipping excluded package")
		return nil, ErrExcluded
	}

	diag := i.opts.channel.For(pkg)
	if isNil(r) {
		diag.Log(slog.LevelWarn, "install failed", "error", ErrNilResolver)
		return nil, ErrNilResolver
	}

	entry := i.load(pkg, diag)
	diag.Log(slog.LevelInfo, "loading for package",
		"source", entry.Source.Hex(), "target", entry.Target.Hex())

	if rec, ok := i.store.(HookRecorder); ok && !isNil(rec) {
		if err := rec.MarkHooked(pkg); err != nil {
			diag.Once(CategorySettings, slog.LevelWarn, "recording hooked package failed", "error", err)
		}
	}

	matrix := entry.Matrix()
	filter := newFrameFilter(pkg, matrix, i.opts, diag)

	unhooks := make([]func(), 0, len(i.opts.targets))
	for _, t := range i.opts.targets {
		unhook, err := hookMethod(r, t, filter.Hook())
		if err != nil {
			for j := len(unhooks) - 1; j >= 0; j-- {
				unhooks[j]()
			}
			ierr := &InstallError{Package: pkg, Class: t.Class, Method: t.Method, Err: err}
			diag.Once(CategoryInstall, slog.LevelWarn, "install failed", "error", ierr)
			return nil, ierr
		}
		if unhook != nil {
			unhooks = append(unhooks, unhook)
		}
	}

	diag.Log(slog.LevelInfo, "custom color mapping applied", "hooks", len(unhooks))
	return &Binding{Entry: entry, Matrix: matrix, Filter: filter}, nil
}

// load reads the package's entry once; any failure yields the defaults.
func (i *Installer) load(pkg string, diag *Diagnostics) (entry Entry) {
	entry = DefaultEntry(pkg)
	if isNil(i.store) {
		return entry
	}
	defer func() {
		if p := recover(); p != nil {
			entry = DefaultEntry(pkg)
			diag.Once(CategorySettings, slog.LevelDebug, "settings read failed, using defaults", "error", panicError{p})
		}
	}()
	entry = i.store.Load(pkg)
	entry.Package = pkg
	return entry
}

// hookMethod calls the resolver, converting a panic into an error.
func hookMethod(r ClassResolver, t HookTarget, h DrawHook) (unhook func(), err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicError{p}
		}
	}()
	return r.HookMethod(t.Class, t.Method, h)
}
