package invcolors

import (
	"errors"
	"fmt"
)

var (
	// ErrExcluded is returned by OnPackageLoaded for packages that are never
	// hooked (the module itself, the platform, the system UI).
	ErrExcluded = errors.New("invcolors: package is excluded")

	// ErrNilResolver is returned when the host passes no class resolver.
	ErrNilResolver = errors.New("invcolors: nil class resolver")

	// ErrNoPaint is returned when a paint factory yields no paint.
	ErrNoPaint = errors.New("invcolors: paint factory returned nil paint")
)

// InstallError describes a failed interceptor installation.
// The target is left unhooked.
type InstallError struct {
	Package string
	Class   string
	Method  string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("invcolors: hook %s#%s for %s: %v", e.Class, e.Method, e.Package, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// panicError carries a value recovered from a host callback.
type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("invcolors: host panic: %v", e.value)
}
