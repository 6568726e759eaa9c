package component

import "hash/fnv"

// NodeID identifies a node of an animation state machine. It is the
// 32-bit FNV-1a hash of the node's human-readable name, so configs and
// live events that refer to the same name always produce the same id.
// Names are resolved to ids when a config is compiled, never at event
// dispatch time.
type NodeID uint32

// HashNodeName resolves a node name to its NodeID.
func HashNodeName(name string) NodeID {
	h := fnv.New32a()
	h.Write([]byte(name))
	return NodeID(h.Sum32())
}
