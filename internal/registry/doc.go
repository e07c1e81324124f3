// Package registry is the bridge between manifest declarations and compiled
// Go code. Subsystem provider modules (modules/audio, modules/speech,
// modules/network) register probe handlers by name; a loaded manifest
// references those names from its condition blocks. Validate performs a
// strict parity check between the two sides before any condition is built,
// so a typo in a manifest or a missing Go handler fails startup loudly
// instead of resolving a feature from half-wired conditions.
package registry
