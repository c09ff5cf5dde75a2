package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
)

// Snapshot is a local copy of an employee profile keyed by sub-object name
// (passportDetails, salaryDetails, ...). Values are raw JSON so the
// coordinator stays agnostic of every record shape.
type Snapshot map[string]json.RawMessage

type RefetchFunc func(ctx context.Context) (Snapshot, error)

// Coordinator applies a save response to local state. Some endpoints return
// the updated sub-object and some do not; the coordinator assumes neither.
type Coordinator struct {
	log *slog.Logger
}

func NewCoordinator(log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{log: log}
}

// Apply merges the freshly edited sub-object from the server response into
// the local snapshot when the response carries it, avoiding a round trip.
// Otherwise it falls back to a full refetch. A failed refetch is logged and
// leaves the snapshot as it was; it never blocks the caller. Last write wins;
// concurrent edits by other sessions are not detected.
func (c *Coordinator) Apply(ctx context.Context, response Snapshot, key string, local Snapshot, refetch RefetchFunc) Snapshot {
	if local == nil {
		local = Snapshot{}
	}
	if sub, ok := response[key]; ok && !isNull(sub) {
		local[key] = sub
		return local
	}

	if refetch == nil {
		return local
	}
	fresh, err := refetch(ctx)
	if err != nil {
		c.log.Warn("profile refetch after save failed", "key", key, "err", err)
		return local
	}
	return fresh
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
