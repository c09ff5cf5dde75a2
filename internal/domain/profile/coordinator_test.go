package profile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplyMergesReturnedSubObject(t *testing.T) {
	coord := NewCoordinator(discardLogger())
	local := Snapshot{
		"passportDetails": json.RawMessage(`{"number":"OLD"}`),
		"bankDetails":     json.RawMessage(`{"bankName":"First Bank"}`),
	}
	response := Snapshot{"passportDetails": json.RawMessage(`{"number":"NEW"}`)}

	refetched := false
	out := coord.Apply(context.Background(), response, "passportDetails", local, func(ctx context.Context) (Snapshot, error) {
		refetched = true
		return nil, nil
	})

	if refetched {
		t.Fatal("merge path must not refetch")
	}
	if string(out["passportDetails"]) != `{"number":"NEW"}` {
		t.Fatalf("got %s", out["passportDetails"])
	}
	if string(out["bankDetails"]) != `{"bankName":"First Bank"}` {
		t.Fatal("untouched sub-objects must survive")
	}
}

func TestApplyRefetchesWhenSubObjectMissing(t *testing.T) {
	coord := NewCoordinator(discardLogger())
	local := Snapshot{"passportDetails": json.RawMessage(`{"number":"OLD"}`)}
	fresh := Snapshot{"passportDetails": json.RawMessage(`{"number":"FRESH"}`)}

	out := coord.Apply(context.Background(), Snapshot{}, "passportDetails", local, func(ctx context.Context) (Snapshot, error) {
		return fresh, nil
	})
	if string(out["passportDetails"]) != `{"number":"FRESH"}` {
		t.Fatalf("got %s", out["passportDetails"])
	}
}

func TestApplyRefetchesWhenSubObjectNull(t *testing.T) {
	coord := NewCoordinator(discardLogger())
	response := Snapshot{"passportDetails": json.RawMessage(`null`)}

	called := false
	coord.Apply(context.Background(), response, "passportDetails", Snapshot{}, func(ctx context.Context) (Snapshot, error) {
		called = true
		return Snapshot{}, nil
	})
	if !called {
		t.Fatal("null sub-object must fall back to refetch")
	}
}

func TestApplyFailedRefetchKeepsLocal(t *testing.T) {
	coord := NewCoordinator(discardLogger())
	local := Snapshot{"passportDetails": json.RawMessage(`{"number":"OLD"}`)}

	out := coord.Apply(context.Background(), Snapshot{}, "passportDetails", local, func(ctx context.Context) (Snapshot, error) {
		return nil, errors.New("network down")
	})
	if string(out["passportDetails"]) != `{"number":"OLD"}` {
		t.Fatalf("failed refetch must leave local state, got %s", out["passportDetails"])
	}
}

func TestApplyNilRefetch(t *testing.T) {
	coord := NewCoordinator(nil)
	local := Snapshot{"bankDetails": json.RawMessage(`{}`)}
	out := coord.Apply(context.Background(), Snapshot{}, "bankDetails", local, nil)
	if string(out["bankDetails"]) != `{}` {
		t.Fatalf("got %s", out["bankDetails"])
	}
}
