package list

// Iterator is a bidirectional iterator over a List. It carries the node
// it currently denotes (cur) and the node that preceded cur at the
// moment it was positioned (prev). end() is cur == nil with prev holding
// the tail as of that moment.
//
// Traversal is lock-free, and wait-free unless a concurrent mutation
// lands directly adjacent to the iterator's position.
type Iterator struct {
	cur, prev *Node
}

// Value returns the node the iterator currently denotes, or
// ErrNullIterator if the iterator is at end().
func (it Iterator) Value() (*Node, error) {
	if it.cur == nil {
		return nil, ErrNullIterator
	}
	return it.cur, nil
}

// Next returns the iterator advanced by one position. Calling Next on an
// iterator already at end() returns it unchanged.
//
// remove never touches the fields of the node it removes (it only
// repairs the removed node's former neighbors), so a cur that is itself
// removed concurrently keeps pointing at whatever came after it, and
// plain forward-chasing already delivers every node that was present at
// begin() and not yet removed. A cur.prev/it.prev mismatch only arises
// when it.prev itself was the node that got removed, or something was
// inserted directly ahead of cur — cur is still perfectly valid in that
// case. On a mismatch the forward walk below looks past cur for a node
// whose prev is it.prev and, if it finds one, moves onto that node
// (keeping it.prev as the iterator's prev); when it finds nothing it
// falls back to the plain advance rather than end(), since cur itself
// was never invalidated.
func (it Iterator) Next() Iterator {
	cur := it.cur
	if cur == nil {
		return it
	}

	next := cur.next.node()
	if cur.prev.node() != it.prev {
		for n := next; n != nil; n = n.next.node() {
			if n.prev.node() == it.prev {
				return Iterator{cur: n, prev: it.prev}
			}
		}
	}

	return Iterator{cur: next, prev: cur}
}

// Prev returns the iterator moved back by one position, or
// ErrNullIterator if it is already positioned at begin() (prev == nil).
// Symmetric to Next, it moves onto the node it already holds a reference
// to (it.prev) rather than re-deriving it, for the same reason plain
// forward-chasing is correct in Next: that node was a genuine list member
// when this iterator was positioned there, and remove never mutates the
// fields of the node it detaches, so the reference stays good to follow
// regardless of what has happened to it or its neighbors since.
func (it Iterator) Prev() (Iterator, error) {
	if it.prev == nil {
		return Iterator{}, ErrNullIterator
	}
	return Iterator{cur: it.prev, prev: it.prev.prev.node()}, nil
}

// Equal reports whether it and other denote the same node. Iterators
// have no total order and should only be compared for equality.
func (it Iterator) Equal(other Iterator) bool {
	return it.cur == other.cur
}
