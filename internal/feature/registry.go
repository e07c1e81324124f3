package feature

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/helix/internal/ctxlog"
	"github.com/vk/helix/internal/dag"
)

// Definition describes one feature node to register.
type Definition struct {
	// ID is the unique symbolic name of the capability ("audio").
	ID string
	// Description is free-form text for reports and logs.
	Description string
	// Conditions are evaluated in declaration order with short-circuit on
	// the first false. All must hold for the node to be eligible.
	Conditions []Condition
	// Requires lists feature IDs that must resolve Enabled before this node
	// can be Enabled. Forward references are allowed at registration time;
	// every referenced ID must exist by the time Resolve runs.
	Requires []string
}

// Registry owns the full set of feature nodes and the published result
// snapshot. Construct one per process (or per test) with NewRegistry; there
// is no hidden global instance.
type Registry struct {
	// mu serializes Register and Resolve. Queries never take it: they read
	// the atomically published snapshot.
	mu     sync.Mutex
	nodes  map[string]Definition
	frozen bool

	snapshot atomic.Pointer[Snapshot]
}

// NewRegistry creates an empty registry. Every node is conceptually
// Unresolved until the first Resolve pass completes.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[string]Definition),
	}
}

// Register stores a feature definition. It is pure bookkeeping: no condition
// is evaluated and dependency IDs are not checked yet, so providers may
// register in any order. Registration fails once the registry is frozen by a
// successful Resolve — the feature set is fixed at compile time, only the
// environment may change between passes.
func (r *Registry) Register(def Definition) error {
	if def.ID == "" {
		return ErrEmptyFeatureID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %q: %w", def.ID, ErrRegistryFrozen)
	}
	if _, exists := r.nodes[def.ID]; exists {
		return fmt.Errorf("register %q: %w", def.ID, ErrDuplicateFeature)
	}

	r.nodes[def.ID] = def
	return nil
}

// Resolve runs one full resolution pass: it orders all nodes so dependencies
// come strictly before dependents, evaluates each node's conditions, and
// publishes the complete result set as a fresh snapshot in a single atomic
// swap. Concurrent queries see either the previous snapshot or the new one,
// never a half-written pass.
//
// A dependency cycle or a reference to an unregistered ID aborts the pass
// with ErrCyclicDependency or ErrUnknownDependency; nothing is published and
// a previously published snapshot remains authoritative.
func (r *Registry) Resolve(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := ctxlog.FromContext(ctx)

	order, err := r.evaluationOrder()
	if err != nil {
		logger.Error("Feature resolution aborted.", "error", err)
		return err
	}

	states := make(map[string]Status, len(order))
	for _, id := range order {
		st := r.evaluateNode(id, states)
		states[id] = st
		logger.Debug("Feature resolved.", "feature", id, "state", st.State.String(), "reason", st.Reason)
	}

	r.snapshot.Store(newSnapshot(states))
	r.frozen = true

	logger.Info("Feature resolution pass complete.", "features", len(states))
	return nil
}

// evaluationOrder builds the dependency graph and returns a deterministic
// topological order. Callers must hold r.mu.
func (r *Registry) evaluationOrder() ([]string, error) {
	g := dag.New()
	for id := range r.nodes {
		g.AddNode(id)
	}
	for id, def := range r.nodes {
		for _, dep := range def.Requires {
			if _, ok := r.nodes[dep]; !ok {
				return nil, fmt.Errorf("feature %q requires %q: %w", id, dep, ErrUnknownDependency)
			}
			if err := g.AddEdge(dep, id); err != nil {
				return nil, fmt.Errorf("feature %q requires %q: %w", id, dep, err)
			}
		}
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		var cyc *dag.CycleError
		if errors.As(err, &cyc) {
			return nil, fmt.Errorf("%w: %s", ErrCyclicDependency, cyc.Error())
		}
		return nil, err
	}
	return order, nil
}

// evaluateNode computes the terminal state of one node given the states of
// everything ordered before it. Own conditions run first, in declaration
// order, short-circuiting on the first false; only then are dependencies
// checked, so a Disabled answer always names a condition and a Blocked
// answer always names a dependency.
func (r *Registry) evaluateNode(id string, resolved map[string]Status) Status {
	def := r.nodes[id]

	for _, cond := range def.Conditions {
		if !cond.Evaluate() {
			return Status{
				State:  StateDisabled,
				Reason: fmt.Sprintf("condition %s not met", cond.Describe()),
			}
		}
	}

	for _, dep := range def.Requires {
		if resolved[dep].State != StateEnabled {
			return Status{
				State:  StateBlocked,
				Reason: fmt.Sprintf("dependency %s unavailable", dep),
			}
		}
	}

	return Status{State: StateEnabled}
}

// IsEnabled reports whether the feature resolved to Enabled in the currently
// published snapshot. It is total and side-effect free: before the first
// successful Resolve, and for IDs never registered, it returns false. Safe
// for concurrent use from any number of goroutines.
func (r *Registry) IsEnabled(id string) bool {
	snap := r.snapshot.Load()
	if snap == nil {
		return false
	}
	return snap.Enabled(id)
}

// Snapshot returns the currently published snapshot, or an empty one when no
// pass has completed yet. The returned value is immutable.
func (r *Registry) Snapshot() *Snapshot {
	if snap := r.snapshot.Load(); snap != nil {
		return snap
	}
	return newSnapshot(nil)
}

// Definitions returns the registered definitions keyed by ID, for reporting.
func (r *Registry) Definitions() map[string]Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	defs := make(map[string]Definition, len(r.nodes))
	for id, def := range r.nodes {
		defs[id] = def
	}
	return defs
}
