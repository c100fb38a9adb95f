package list

// List is a lock-free intrusive doubly linked list. The zero value is an
// empty list ready to use; New is provided for symmetry with the rest of
// the package's constructors.
type List struct {
	head, tail linkage
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// PushFront inserts node at the front of the list. node must not be nil
// and must not currently belong to any list.
func (l *List) PushFront(node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	node.next.init()
	node.prev.init()

	for {
		h, hBox := l.head.load()
		node.next.store(h) // relaxed: node is not yet reachable

		if _, ok := l.head.cas(hBox, node); ok {
			if h != nil {
				h.prev.store(node)
			} else {
				l.tail.store(node)
			}
			return nil
		}
	}
}

// PushBack inserts node at the back of the list. node must not be nil
// and must not currently belong to any list.
func (l *List) PushBack(node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	node.next.init()
	node.prev.init()

	for {
		t, tBox := l.tail.load()
		if t == nil {
			// Possibly empty list: try to install node as both head and tail.
			h, hBox := l.head.load()
			if h != nil {
				// head is non-nil but tail looked nil: another mutator is
				// mid-flight; retry.
				continue
			}
			if _, ok := l.head.cas(hBox, node); ok {
				l.tail.store(node)
				return nil
			}
			continue
		}

		tn, tnBox := t.next.load()
		if tn != nil {
			// tail is stale: someone has already appended past t.
			continue
		}

		if _, ok := t.next.cas(tnBox, node); ok {
			node.prev.store(t)
			l.tail.cas(tBox, node) // best-effort; failure tolerated
			return nil
		}
	}
}

// InsertAfter inserts newNode immediately after target. Both must be
// non-nil and newNode must not currently belong to any list. Returns
// false if target is no longer a member of the list at the moment of a
// pre-validation check (target.prev.next == target, or head == target
// when target has no prev).
func (l *List) InsertAfter(target, newNode *Node) (bool, error) {
	if target == nil || newNode == nil {
		return false, ErrNilNode
	}
	newNode.next.init()
	newNode.prev.init()

	for {
		if !l.targetStillLinked(target) {
			return false, nil
		}

		n, nBox := target.next.load()
		newNode.prev.store(target)
		newNode.next.store(n)

		if _, ok := target.next.cas(nBox, newNode); ok {
			if n != nil {
				n.prev.store(newNode)
			} else {
				_, tBox := l.tail.load()
				l.tail.cas(tBox, newNode) // best-effort; failure tolerated
			}
			return true, nil
		}
	}
}

// targetStillLinked is the optional pre-validation insert_after may
// perform: target.prev.next == target, or head == target when target has
// no prev.
func (l *List) targetStillLinked(target *Node) bool {
	if p := target.prev.node(); p != nil {
		return p.next.node() == target
	}
	return l.head.node() == target
}

// Remove detaches node from the list, returning ErrNotMember if node is
// not currently linked. Removing the same node concurrently from two
// callers is safe: exactly one linearizes the structural change and
// returns nil, the other observes that node's own neighbors no longer
// agree it is there and returns ErrNotMember. remove never rewrites the
// fields of the node it detaches, so that check stays valid no matter
// how long ago the node was actually unlinked.
func (l *List) Remove(node *Node) error {
	if node == nil {
		return ErrNilNode
	}

	for {
		if !l.verifyLive(node) {
			return ErrNotMember
		}

		p := node.prev.node()
		n := node.next.node()

		if p != nil {
			expected, expectedBox := p.next.load()
			if expected != node {
				continue // neighborhood changed underneath us; retry
			}
			if _, ok := p.next.cas(expectedBox, n); !ok {
				continue
			}
			if n != nil {
				_, nPrevBox := n.prev.load()
				n.prev.cas(nPrevBox, p) // best-effort
			}
		} else {
			expected, expectedBox := l.head.load()
			if expected != node {
				continue
			}
			if _, ok := l.head.cas(expectedBox, n); !ok {
				continue
			}
			if n != nil {
				_, nPrevBox := n.prev.load()
				n.prev.cas(nPrevBox, nil) // best-effort
			}
		}

		if n == nil {
			_, tBox := l.tail.load()
			l.tail.cas(tBox, p) // best-effort
		}
		return nil
	}
}

// FindIf returns the first node (in forward traversal order) for which
// pred holds and which verifiably still belongs to the list at the
// moment of the check, or nil if no such node is found. A node that
// matched pred but failed the liveness re-check causes the search to
// restart from head rather than being skipped, matching the source's
// search contract of returning "a node that matched at some point during
// the search."
func (l *List) FindIf(pred func(*Node) bool) *Node {
restart:
	for {
		cur := l.head.node()
		for cur != nil {
			if pred(cur) {
				if l.verifyLive(cur) {
					return cur
				}
				continue restart
			}
			cur = cur.next.node()
		}
		return nil
	}
}

func (l *List) verifyLive(cur *Node) bool {
	if n := cur.next.node(); n != nil {
		if n.prev.node() != cur {
			return false
		}
	} else if l.tail.node() != cur {
		return false
	}

	if p := cur.prev.node(); p != nil {
		if p.next.node() != cur {
			return false
		}
	} else if l.head.node() != cur {
		return false
	}
	return true
}

// Clear resets the list to empty without touching member nodes. It is
// not safe to call concurrently with any other operation on l.
func (l *List) Clear() {
	l.head.init()
	l.tail.init()
}

// Begin returns an iterator positioned at the current head.
func (l *List) Begin() Iterator {
	return Iterator{cur: l.head.node()}
}

// End returns an iterator positioned one past the current tail.
func (l *List) End() Iterator {
	return Iterator{prev: l.tail.node()}
}
