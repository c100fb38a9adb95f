// Package payload provides concrete list members: small structs that embed
// list.Node as their first field and a value, plus the value-aware search
// helpers that package list deliberately leaves out to stay payload-agnostic.
package payload

import (
	"unsafe"

	"github.com/concurrent-ds/lockfreelist/list"
)

// IntNode is a list member carrying a single int. It is the direct
// counterpart of a bare data node: no bookkeeping beyond the linkage
// and the value itself.
type IntNode struct {
	list.Node
	Value int
}

// NewIntNode returns a fresh, unlinked IntNode.
func NewIntNode(v int) *IntNode {
	return &IntNode{Value: v}
}

// AsIntNode recovers the IntNode that owns n. n must have been obtained
// from a list that only ever stored *IntNode values via &node.Node; this
// is the intrusive container_of cast, valid because Node is IntNode's
// first field.
func AsIntNode(n *list.Node) *IntNode {
	return (*IntNode)(unsafe.Pointer(n))
}

// ValueOf satisfies Payload.
func (n *IntNode) ValueOf() int {
	return n.Value
}

// Find returns the first IntNode in l (in forward traversal order) whose
// Value equals v, or nil if none matches. It is IntNode-specific sugar
// over the generic FindValue.
func Find(l *list.List, v int) *IntNode {
	n := FindValue(l, AsIntNode, v)
	if n == nil {
		return nil
	}
	return AsIntNode(n)
}
