// Package dag models the dependency relation between feature nodes as a
// directed acyclic graph. The capability registry uses it to obtain a
// deterministic evaluation order (dependencies strictly before dependents)
// and to detect dependency cycles before any feature state is published.
package dag
