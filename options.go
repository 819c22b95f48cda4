package invcolors

// Well-known package identifiers that are never hooked.
const (
	SelfPackage     = "com.invcolors"
	PlatformPackage = "android"
	SystemUIPackage = "com.android.systemui"
)

// Default hook targets in the host view system.
const (
	ContainerClass  = "android.view.ViewGroup"
	ContainerMethod = "dispatchDraw"
	LeafClass       = "android.view.View"
	LeafMethod      = "draw"
)

// Option configures an Installer or a FrameFilter.
// Use functional options to customize behavior.
//
// Example:
//
//	inst := invcolors.NewInstaller(store,
//	    invcolors.WithChannel(invcolors.NewChannel(logger)),
//	    invcolors.WithExcluded("com.example.launcher"),
//	)
type Option func(*options)

// HookTarget names a method to intercept.
type HookTarget struct {
	Class  string
	Method string
}

// options holds optional configuration.
type options struct {
	channel      *Channel
	isRoot       RootPredicate
	paintFactory PaintFactory
	selfPackage  string
	excluded     []string
	targets      []HookTarget
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		isRoot:       IsRoot,
		paintFactory: defaultPaintFactory,
		selfPackage:  SelfPackage,
		targets: []HookTarget{
			{Class: ContainerClass, Method: ContainerMethod},
			{Class: LeafClass, Method: LeafMethod},
		},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.channel == nil {
		o.channel = NewChannel(nil)
	}
	return o
}

// WithChannel sets the diagnostic channel. The default channel writes to
// the package logger.
func WithChannel(ch *Channel) Option {
	return func(o *options) {
		o.channel = ch
	}
}

// WithRootPredicate replaces IsRoot for deciding which nodes get a layer.
// A nil predicate keeps the default.
func WithRootPredicate(p RootPredicate) Option {
	return func(o *options) {
		if p != nil {
			o.isRoot = p
		}
	}
}

// WithPaintFactory sets how the per-binding paint is built.
// A nil factory keeps the default.
func WithPaintFactory(f PaintFactory) Option {
	return func(o *options) {
		if f != nil {
			o.paintFactory = f
		}
	}
}

// WithSelfPackage sets the module's own package identifier, which is
// excluded from hooking.
func WithSelfPackage(pkg string) Option {
	return func(o *options) {
		o.selfPackage = pkg
	}
}

// WithExcluded adds packages that are never hooked.
func WithExcluded(pkgs ...string) Option {
	return func(o *options) {
		o.excluded = append(o.excluded, pkgs...)
	}
}

// WithHookTargets replaces the intercepted draw methods.
//
// Example:
//
//	invcolors.WithHookTargets(
//	    invcolors.HookTarget{Class: "android.view.ViewGroup", Method: "dispatchDraw"},
//	)
func WithHookTargets(targets ...HookTarget) Option {
	return func(o *options) {
		o.targets = append([]HookTarget(nil), targets...)
	}
}
