// Package launcher starts a registered entry's target with "open" semantics:
// executables run directly, shortcuts and web links go through the
// platform opener. It reports only the immediate launch outcome and never
// supervises the spawned process afterwards.
package launcher
