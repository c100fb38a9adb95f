package payload

import "github.com/concurrent-ds/lockfreelist/list"

// Payload is implemented by node types that carry a single comparable
// int value. It lets search helpers stay generic over payload types
// instead of the core list package having to know about any of them.
type Payload interface {
	*IntNode | *TimestampNode
	ValueOf() int
}

// FindValue returns the first node in l (in forward traversal order)
// whose payload, recovered via recover, has ValueOf() == value, or nil
// if none matches. recover is the type's container_of helper, e.g.
// AsIntNode or AsTimestampNode: list.List never imports this package,
// so the cast back to a concrete payload type has to come from the
// caller's side.
func FindValue[P Payload](l *list.List, recover func(*list.Node) P, value int) *list.Node {
	return l.FindIf(func(n *list.Node) bool {
		return recover(n).ValueOf() == value
	})
}
