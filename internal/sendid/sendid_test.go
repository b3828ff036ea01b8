package sendid

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %d from context, got %d ok=%v", id, got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestNestedSendsGetDistinctIDs(t *testing.T) {
	ctx, outer := NewContext(context.Background())
	inner := ctx
	for i := 0; i < 8; i++ {
		var id int64
		inner, id = NewContext(inner)
		if id == outer {
			t.Fatalf("nested send reused id %d", id)
		}
	}
}
