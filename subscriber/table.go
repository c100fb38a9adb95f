// Package subscriber is a channel fan-out table: callers subscribe to a
// named channel and Publish delivers a message to every subscriber
// currently on it. The channel index is a concurrent map, the same way
// a pub/sub hub indexes channels to their subscriber lists, but each
// channel's subscriber list is the lock-free list instead of a
// mutex-guarded one, so Publish never blocks a concurrent
// Subscribe/Unsubscribe on another goroutine and vice versa.
package subscriber

import (
	"unsafe"

	cmap "github.com/orcaman/concurrent-map"
	"go.uber.org/zap"

	"github.com/concurrent-ds/lockfreelist/internal/logging"
	"github.com/concurrent-ds/lockfreelist/list"
)

// Subscriber is anything that can receive a published message. ID must
// be stable and unique for the lifetime of the subscription; it is the
// key used to find and remove this subscriber's node again.
type Subscriber interface {
	ID() string
	Receive(channel string, message []byte)
}

// subscriberNode is the list member for one (channel, subscriber) pair.
type subscriberNode struct {
	list.Node
	sub Subscriber
}

func asSubscriberNode(n *list.Node) *subscriberNode {
	return (*subscriberNode)(unsafe.Pointer(n))
}

// channel holds one topic's subscriber list plus an index from
// subscriber ID to that subscriber's node, so Unsubscribe does not have
// to scan.
type channel struct {
	members *list.List
	byID    cmap.ConcurrentMap
}

func newChannel() *channel {
	return &channel{members: list.New(), byID: cmap.New()}
}

// Table is a set of channels, each with its own subscriber list.
type Table struct {
	channels cmap.ConcurrentMap
}

// NewTable returns an empty subscriber table.
func NewTable() *Table {
	return &Table{channels: cmap.New()}
}

// Subscribe adds sub to channelName, reporting whether sub was not
// already subscribed to it.
func (t *Table) Subscribe(channelName string, sub Subscriber) bool {
	raw := t.channels.Upsert(channelName, nil, func(exists bool, valueInMap, _ interface{}) interface{} {
		if exists {
			return valueInMap
		}
		return newChannel()
	})
	ch := raw.(*channel)

	if _, exists := ch.byID.Get(sub.ID()); exists {
		return false
	}

	node := &subscriberNode{sub: sub}
	if err := ch.members.PushBack(&node.Node); err != nil {
		panic(err)
	}
	ch.byID.Set(sub.ID(), node)
	logging.L().Debug("subscriber: subscribed", zap.String("channel", channelName), zap.String("id", sub.ID()))
	return true
}

// Unsubscribe removes sub from channelName, reporting whether it had
// been subscribed.
func (t *Table) Unsubscribe(channelName string, sub Subscriber) bool {
	raw, ok := t.channels.Get(channelName)
	if !ok {
		return false
	}
	ch := raw.(*channel)

	rawNode, ok := ch.byID.Get(sub.ID())
	if !ok {
		return false
	}
	node := rawNode.(*subscriberNode)
	ch.byID.Remove(sub.ID())
	_ = ch.members.Remove(&node.Node)

	if ch.byID.Count() == 0 {
		t.channels.RemoveCb(channelName, func(key string, v interface{}, exists bool) bool {
			return exists && v.(*channel) == ch && ch.byID.Count() == 0
		})
	}
	logging.L().Debug("subscriber: unsubscribed", zap.String("channel", channelName), zap.String("id", sub.ID()))
	return true
}

// UnsubscribeAll removes sub from every channel it currently belongs to.
func (t *Table) UnsubscribeAll(sub Subscriber) {
	for tuple := range t.channels.IterBuffered() {
		t.Unsubscribe(tuple.Key, sub)
	}
}

// Publish delivers message to every subscriber currently on channelName
// and returns how many subscribers were reached. Subscribers are
// delivered to synchronously, in forward list order; a slow Receive
// implementation should hand off to its own goroutine.
func (t *Table) Publish(channelName string, message []byte) int {
	raw, ok := t.channels.Get(channelName)
	if !ok {
		return 0
	}
	ch := raw.(*channel)

	count := 0
	for it := ch.members.Begin(); ; it = it.Next() {
		n, err := it.Value()
		if err != nil {
			break
		}
		asSubscriberNode(n).sub.Receive(channelName, message)
		count++
	}
	return count
}

// Channels returns the names of channels that currently have at least
// one subscriber.
func (t *Table) Channels() []string {
	names := make([]string, 0, t.channels.Count())
	for tuple := range t.channels.IterBuffered() {
		names = append(names, tuple.Key)
	}
	return names
}

// SubscriberCount returns how many subscribers channelName currently has.
func (t *Table) SubscriberCount(channelName string) int {
	raw, ok := t.channels.Get(channelName)
	if !ok {
		return 0
	}
	return raw.(*channel).byID.Count()
}
