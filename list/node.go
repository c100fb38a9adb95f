package list

// Node is the intrusive linkage header every list member embeds. It
// carries two linkage words, next and prev, and exposes no other
// semantics: the list reads and writes these two fields and nothing
// else, and payload types embed Node as their first field so that
// higher-level packages (payload, lru, freelist, subscriber) can recover
// the owning struct from a *Node. See payload.IntNode for the pattern.
//
// The zero value of Node is the canonical null-linkage state and is
// ready to hand to a mutator.
type Node struct {
	next, prev linkage
}

// Reset returns n to the canonical null-linkage state. PushFront,
// PushBack and InsertAfter already reset the node they insert, so a
// previously removed node can be reinserted with or without calling it.
func (n *Node) Reset() {
	n.next.init()
	n.prev.init()
}
