package dag

import (
	"fmt"
	"sort"
	"strings"
)

// New creates an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an ID that already exists is
// a no-op, so callers can register vertices idempotently.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge records that `toID` depends on `fromID`. An error is returned if
// either endpoint is missing or if the edge would be a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// Dependencies returns the IDs the given node depends on, sorted.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the IDs that depend on the given node, sorted.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// CycleError reports a dependency cycle found during ordering. Path holds the
// node IDs along the cycle, with the entry node repeated at the end, e.g.
// ["a", "b", "a"].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

// TopologicalOrder returns every node ID ordered so that each node appears
// strictly after all of its dependencies. The order is deterministic: sibling
// nodes are visited lexicographically. If the graph contains a cycle, a
// *CycleError naming the cycle is returned and no order is produced.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with three node colors:
	// done: fully visited, already placed in the order.
	// inProgress: on the current recursion stack; revisiting one is a cycle.
	// Everything else is unvisited.
	done := make(map[string]bool, len(g.nodes))
	inProgress := make(map[string]bool)
	stack := make([]string, 0, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	var visit func(n *node) error
	visit = func(n *node) error {
		if done[n.id] {
			return nil
		}
		if inProgress[n.id] {
			return &CycleError{Path: cyclePath(stack, n.id)}
		}

		inProgress[n.id] = true
		stack = append(stack, n.id)

		for _, depID := range sortedKeys(n.deps) {
			if err := visit(n.deps[depID]); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(inProgress, n.id)
		done[n.id] = true
		order = append(order, n.id)

		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if !done[id] {
			if err := visit(g.nodes[id]); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// cyclePath trims the recursion stack down to the looping segment and closes
// it by repeating the entry node.
func cyclePath(stack []string, entry string) []string {
	start := 0
	for i, id := range stack {
		if id == entry {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	return append(path, entry)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
