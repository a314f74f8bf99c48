package eventbus

import "testing"

func TestPublishSubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Publish("hello")
	select {
	case e := <-sub:
		if e != "hello" {
			t.Fatalf("got %v", e)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	b := NewWithBuffer(1)
	sub := b.Subscribe()
	b.Publish(1)
	b.Publish(2) // dropped, buffer full
	if e := <-sub; e != 1 {
		t.Fatalf("got %v", e)
	}
	select {
	case e := <-sub:
		t.Fatalf("unexpected second event %v", e)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
	b.Publish("ignored")
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()
	b.Close()
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
	if got := b.Subscribe(); got == nil {
		t.Fatal("subscribe after close should return a closed channel, not nil")
	}
}
