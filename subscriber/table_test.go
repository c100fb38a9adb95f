package subscriber

import (
	"fmt"
	"sync"
	"testing"
)

type recordingSubscriber struct {
	id string
	mu sync.Mutex
	got []string
}

func (r *recordingSubscriber) ID() string { return r.id }

func (r *recordingSubscriber) Receive(channel string, message []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, channel+":"+string(message))
}

func (r *recordingSubscriber) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.got))
	copy(out, r.got)
	return out
}

func TestSubscribePublishDelivers(t *testing.T) {
	tbl := NewTable()
	a := &recordingSubscriber{id: "a"}
	b := &recordingSubscriber{id: "b"}

	if !tbl.Subscribe("news", a) {
		t.Fatalf("Subscribe(a) returned false on first subscription")
	}
	if !tbl.Subscribe("news", b) {
		t.Fatalf("Subscribe(b) returned false on first subscription")
	}
	if tbl.Subscribe("news", a) {
		t.Fatalf("Subscribe(a) twice returned true")
	}

	n := tbl.Publish("news", []byte("hello"))
	if n != 2 {
		t.Fatalf("Publish reached %d subscribers, want 2", n)
	}
	if got := a.messages(); len(got) != 1 || got[0] != "news:hello" {
		t.Fatalf("a.messages() = %v", got)
	}
	if got := b.messages(); len(got) != 1 || got[0] != "news:hello" {
		t.Fatalf("b.messages() = %v", got)
	}
}

func TestUnsubscribeRemovesFromChannel(t *testing.T) {
	tbl := NewTable()
	a := &recordingSubscriber{id: "a"}
	tbl.Subscribe("news", a)

	if !tbl.Unsubscribe("news", a) {
		t.Fatalf("Unsubscribe(a) returned false")
	}
	if tbl.Unsubscribe("news", a) {
		t.Fatalf("Unsubscribe(a) twice returned true")
	}
	if n := tbl.Publish("news", []byte("x")); n != 0 {
		t.Fatalf("Publish after unsubscribe reached %d subscribers", n)
	}
	if len(tbl.Channels()) != 0 {
		t.Fatalf("empty channel was not cleaned up: %v", tbl.Channels())
	}
}

func TestUnsubscribeAllAcrossChannels(t *testing.T) {
	tbl := NewTable()
	a := &recordingSubscriber{id: "a"}
	tbl.Subscribe("news", a)
	tbl.Subscribe("sports", a)

	tbl.UnsubscribeAll(a)

	if tbl.SubscriberCount("news") != 0 || tbl.SubscriberCount("sports") != 0 {
		t.Fatalf("UnsubscribeAll left subscriptions behind")
	}
}

func TestConcurrentSubscribePublish(t *testing.T) {
	tbl := NewTable()
	const subs = 20

	var wg sync.WaitGroup
	subscribers := make([]*recordingSubscriber, subs)
	wg.Add(subs)
	for i := 0; i < subs; i++ {
		go func(i int) {
			defer wg.Done()
			s := &recordingSubscriber{id: fmt.Sprintf("sub-%d", i)}
			subscribers[i] = s
			tbl.Subscribe("room", s)
		}(i)
	}
	wg.Wait()

	if n := tbl.Publish("room", []byte("hi")); n != subs {
		t.Fatalf("Publish reached %d subscribers, want %d", n, subs)
	}
}
