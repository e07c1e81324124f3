package feature

// Condition answers one yes/no question about the environment: hardware
// present, backend installed, endpoint reachable. Implementations are
// supplied by subsystem providers and must be pure for the duration of a
// resolution pass; across passes they may be re-queried and change their
// answer (hot-plugged hardware).
type Condition interface {
	// Describe names the condition for diagnostics ("output_device").
	Describe() string
	// Evaluate reports whether the condition currently holds. It may block
	// (e.g. a network probe) but must not panic.
	Evaluate() bool
}

type condFunc struct {
	name string
	fn   func() bool
}

func (c condFunc) Describe() string { return c.name }
func (c condFunc) Evaluate() bool   { return c.fn() }

// Cond wraps a plain predicate into a named Condition.
func Cond(name string, fn func() bool) Condition {
	return condFunc{name: name, fn: fn}
}
