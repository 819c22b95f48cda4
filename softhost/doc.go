// Package softhost is an in-process injection host with a software view
// system, for driving invcolors bindings without a device.
//
// It provides the pieces a real host supplies:
//
//   - Canvas: a CPU canvas with save, save-layer and restore. Restoring a
//     layer filters it through the layer paint's color matrix and blends it
//     source-over onto its parent.
//   - Host: a ClassResolver over View#draw and ViewGroup#dispatchDraw whose
//     Invoke guarantees that an after hook runs whenever its before ran.
//   - View: a node tree whose Draw and DispatchDraw pass through those
//     hook points.
//
// Example:
//
//	host := softhost.NewHost()
//	binding, _ := installer.OnPackageLoaded("com.example", host)
//
//	window := softhost.NewWindow(host, 100, 100)
//	window.SetBackground(0xFF808080)
//
//	canvas := softhost.NewCanvas(100, 100)
//	window.Draw(canvas)
//	_ = canvas.Surface().Pixel(50, 50) // 0xFF7F7F7F with the default colors
package softhost
