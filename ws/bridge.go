package ws

import (
	"context"
	"log/slog"

	"github.com/powercity/simulator/telemetry"
)

// Bridge forwards completed tick records from the controller onto the
// WebSocket hub.
type Bridge struct {
	Records chan telemetry.TickRecord

	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{
		Records: make(chan telemetry.TickRecord, 25),
		hub:     hub,
	}
}

// Run loops until the context is cancelled, broadcasting each tick record to
// all connected clients.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case record := <-b.Records:
			msg, err := NewEnvelope(TypeTickRecord, TickRecordFromRecord(record))
			if err != nil {
				slog.Error("Failed to marshal tick record", "error", err)
				continue
			}
			b.hub.Broadcast(msg)
		}
	}
}
