package component

// ActiveNodes tracks which animation nodes a character is currently
// inside (entered but not yet exited). It has a single writer, the
// trigger scheduler's event handlers, so no locking is needed; timed
// tasks only read it at their own poll points.
type ActiveNodes struct {
	nodes map[NodeID]struct{}
}

func NewActiveNodes() *ActiveNodes {
	return &ActiveNodes{nodes: make(map[NodeID]struct{})}
}

// Enter marks the node as active. Entering an already-active node is a
// no-op.
func (a *ActiveNodes) Enter(id NodeID) {
	a.nodes[id] = struct{}{}
}

// Exit marks the node as inactive. Exiting an absent node is a no-op.
func (a *ActiveNodes) Exit(id NodeID) {
	delete(a.nodes, id)
}

// IsActive reports whether the node is currently entered.
func (a *ActiveNodes) IsActive(id NodeID) bool {
	_, ok := a.nodes[id]
	return ok
}

// Len returns the number of currently active nodes.
func (a *ActiveNodes) Len() int {
	return len(a.nodes)
}
