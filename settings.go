package invcolors

// Default colors for targets without stored settings: white is remapped
// to black, which is plain RGB inversion.
const (
	DefaultSource = White
	DefaultTarget = Black
)

// Entry is the stored color pair of one target package.
type Entry struct {
	Package string
	Source  Color
	Target  Color
}

// Defaults returns the default (source, target) pair.
func Defaults() (source, target Color) {
	return DefaultSource, DefaultTarget
}

// DefaultEntry returns the entry used for a package with no settings.
func DefaultEntry(pkg string) Entry {
	return Entry{Package: pkg, Source: DefaultSource, Target: DefaultTarget}
}

// Matrix returns the color matrix derived from the entry.
func (e Entry) Matrix() ColorMatrix {
	return Build(e.Source, e.Target)
}

// IsDefault reports whether the entry holds the default colors.
func (e Entry) IsDefault() bool {
	return e.Source == DefaultSource && e.Target == DefaultTarget
}

// SettingsLoader reads the per-package color settings. Load never fails:
// missing or unreadable settings yield DefaultEntry.
type SettingsLoader interface {
	Load(pkg string) Entry
}

// HookRecorder is implemented by stores that keep the set of packages a
// binding was created for.
type HookRecorder interface {
	MarkHooked(pkg string) error
}
