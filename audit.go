package cookieAuth

import (
	"context"
	"io"
	"time"

	"github.com/MrEthical07/cookieAuth/internal/audit"
)

// AuditEvent is the record emitted for every security-relevant operation.
type AuditEvent = audit.Event

// AuditSink receives emitted audit events.
type AuditSink = audit.Sink

// NoOpSink discards every event.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers events on a channel for test and pipeline consumers.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON line per event.
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink describes the newchannelsink operation and its observable behavior.
//
// NewChannelSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
//
// NewJSONWriterSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

type auditDispatcher struct {
	inner *audit.Dispatcher
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	return &auditDispatcher{
		inner: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Enabled,
			BufferSize: cfg.BufferSize,
			DropIfFull: cfg.DropIfFull,
		}, sink),
	}
}

func (d *auditDispatcher) emit(ctx context.Context, event AuditEvent) {
	if d == nil || d.inner == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	d.inner.Emit(ctx, event)
}

// Close describes the close operation and its observable behavior.
func (d *auditDispatcher) Close() {
	if d == nil || d.inner == nil {
		return
	}
	d.inner.Close()
}

// Dropped describes the dropped operation and its observable behavior.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil || d.inner == nil {
		return 0
	}
	return d.inner.Dropped()
}
