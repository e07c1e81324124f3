package dag

import "sync"

// Graph is a set of nodes and directed dependency edges. All operations are
// concurrency-safe, although the registry only mutates it single-threaded
// during a resolution pass.
type Graph struct {
	mutex sync.RWMutex
	// nodes stores every vertex, keyed by its unique ID.
	nodes map[string]*node
}

// node is un-exported: callers interact with the graph through string IDs,
// never by touching vertices directly.
type node struct {
	id string
	// deps are the nodes this node depends on (must resolve first).
	deps map[string]*node
	// dependents are the nodes that depend on this node.
	dependents map[string]*node
}
