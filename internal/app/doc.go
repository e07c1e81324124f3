// Package app wires the pieces of the helix capability tool together: it
// builds an isolated logger, registers the compiled-in subsystem modules,
// loads the feature manifest (or falls back to the compiled-in definitions),
// runs the resolution pass, and renders the capability report. An optional
// status server exposes the resolved snapshot over HTTP and accepts explicit
// re-resolution requests.
package app
