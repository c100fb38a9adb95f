package list

import "errors"

// ErrNullIterator is returned by Iterator.Value on a null cur, and by
// Iterator.Prev when decrementing an iterator whose prev is null (i.e.
// begin()).
var ErrNullIterator = errors.New("list: dereference or decrement of a null iterator")

// ErrNilNode is a precondition violation: a mutator was handed a nil node.
var ErrNilNode = errors.New("list: node must not be nil")

// ErrNotMember is returned by Remove when node is not, at the moment of
// the call, a live member of the list: either it was never inserted, or
// it has already been removed (by this caller's own retry loop losing a
// race, or by a concurrent caller). It is not a precondition violation:
// exactly one concurrent Remove(node) call on a given node linearizes
// the structural change and returns nil; every other concurrent call on
// the same node observes this and returns ErrNotMember.
var ErrNotMember = errors.New("list: node is not a live member of the list")
