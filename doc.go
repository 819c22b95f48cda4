// Package invcolors remaps the colors of an application's window at draw
// time, per application.
//
// # Overview
//
// An injection host announces each loaded target package through
// [Installer.OnPackageLoaded]. The installer reads the package's
// (source, target) color pair once, derives a 4x5 [ColorMatrix] with
// [Build] and installs a [FrameFilter] around the view system's
// dispatchDraw and draw methods. When the window root draws, the filter
// pushes one full-canvas compositing layer whose paint carries the matrix,
// so every descendant draw is recolored exactly once when the layer is
// restored.
//
// # Quick Start
//
//	store := settings.Open(dir)
//	inst := invcolors.NewInstaller(store,
//	    invcolors.WithChannel(invcolors.NewChannel(logger)))
//
//	// Called by the host for every target process.
//	binding, err := inst.OnPackageLoaded("com.example", resolver)
//
// # Color Matrix
//
// For each RGB channel the matrix fits the line through (src, dst) and
// (255-src, 255-dst). The default pair white to black yields the classic
// inversion matrix:
//
//	[-1  0  0  0  255]
//	[ 0 -1  0  0  255]
//	[ 0  0 -1  0  255]
//	[ 0  0  0  1    0]
//
// Alpha is always preserved.
//
// # Failure Model
//
// Nothing raised inside the interceptors reaches the host's draw path:
// errors and panics are logged once per binding and the frame is drawn
// unfiltered. Install failures leave the target unhooked.
//
// # Logging
//
// invcolors logs through log/slog and is silent by default; see [SetLogger]
// and [Channel].
package invcolors
