package eventbus

import (
	"context"
	"testing"
)

type pingEvent struct{ n int }

type otherEvent struct{ s string }

func TestPublishReachesSubscriber(t *testing.T) {
	Use(New())
	t.Cleanup(func() { Use(nil) })

	var got []int
	unsubscribe := Subscribe(func(_ context.Context, e pingEvent) {
		got = append(got, e.n)
	})
	defer unsubscribe()

	Publish(context.Background(), pingEvent{n: 1})
	Publish(context.Background(), pingEvent{n: 2})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2], got %v", got)
	}
}

func TestEventsRouteByType(t *testing.T) {
	Use(New())
	t.Cleanup(func() { Use(nil) })

	var pings, others int
	defer Subscribe(func(context.Context, pingEvent) { pings++ })()
	defer Subscribe(func(context.Context, otherEvent) { others++ })()

	Publish(context.Background(), pingEvent{})
	Publish(context.Background(), otherEvent{})
	Publish(context.Background(), otherEvent{})
	if pings != 1 || others != 2 {
		t.Fatalf("expected 1 ping and 2 others, got %d and %d", pings, others)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	t.Cleanup(func() { Use(nil) })

	var calls int
	unsubscribe := Subscribe(func(context.Context, pingEvent) { calls++ })
	Publish(context.Background(), pingEvent{})
	unsubscribe()
	Publish(context.Background(), pingEvent{})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestPublishWithoutBusIsNoop(t *testing.T) {
	Use(nil)
	Publish(context.Background(), pingEvent{n: 7})
}
