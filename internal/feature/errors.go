package feature

import "errors"

// Sentinel errors for registration and resolution failures, intended for
// comparison with errors.Is. All of them are configuration-time errors that
// surface synchronously to the initializing caller; capability queries never
// return errors.
var (
	// ErrEmptyFeatureID is returned when a definition carries no ID.
	ErrEmptyFeatureID = errors.New("empty feature id")
	// ErrDuplicateFeature is returned when an ID is registered twice within
	// one registry instance.
	ErrDuplicateFeature = errors.New("duplicate feature")
	// ErrRegistryFrozen is returned when registration is attempted after the
	// first successful resolution pass.
	ErrRegistryFrozen = errors.New("registry frozen after resolution")
	// ErrCyclicDependency is returned by Resolve when the dependency relation
	// contains a cycle. The wrapped message names the cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrUnknownDependency is returned by Resolve when a node requires an ID
	// that was never registered.
	ErrUnknownDependency = errors.New("unknown dependency")
)
