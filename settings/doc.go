// Package settings persists the per-package color pairs read by
// invcolors bindings.
//
// The store lives under the "invcolors_settings" namespace as a
// shared-preferences XML file. Each package has two signed 32-bit int
// keys, "<package>_source" and "<package>_target"; absent keys mean the
// defaults (white remapped to black). The "hooked_apps" string set lists
// packages that have been bound at least once.
//
// The settings UI writes colors and every target process adds itself to
// "hooked_apps" when it binds. Writers take an exclusive lock on
// ".invcolors_settings.lock" next to the file, so concurrent writers in
// different processes do not lose each other's updates. Readers need no
// lock: the file is replaced atomically.
package settings
