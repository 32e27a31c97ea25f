// Package progress keeps the ordered per-session progress log, mirrors it to
// durable storage and forwards new events to live subscribers.
package progress

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Options configures a Channel
type Options struct {
	// MaxEvents bounds each session log, dropping the oldest events. Zero means unbounded.
	MaxEvents int
	// Now overrides the event clock.
	Now func() time.Time
}

type sessionLog struct {
	events []domain.ProgressEvent
	seq    uint64

	// hydrated is false while the mirrored history could not be read. The
	// mirror is not written until it is, so a read error never truncates it.
	hydrated bool

	// writeMu orders mirror writes; written is the seq of the last stored snapshot
	writeMu sync.Mutex
	written uint64
}

// Channel is the per-session progress event log. It is safe for concurrent use.
//
// The log and the subscription registry share one mutex so that a new
// subscriber's backlog snapshot and the live forwarding of later events are
// cut at the same point: every event is delivered exactly once, in order.
type Channel struct {
	mirror    domain.ProgressMirror
	maxEvents int
	now       func() time.Time

	mu   sync.Mutex
	logs map[string]*sessionLog
	subs map[string]*subscription
}

// NewChannel creates a progress channel. A nil mirror disables durable mirroring.
func NewChannel(mirror domain.ProgressMirror, opts Options) *Channel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Channel{
		mirror:    mirror,
		maxEvents: opts.MaxEvents,
		now:       now,
		logs:      make(map[string]*sessionLog),
		subs:      make(map[string]*subscription),
	}
}

// Emit appends an event to the session log, mirrors the whole log and pushes
// the event to the live subscriber if there is one. Mirror and transport
// failures are logged, never returned.
func (c *Channel) Emit(ctx context.Context, sessionID, step, message string, index, total int) {
	l := c.sessionLog(ctx, sessionID)

	c.mu.Lock()
	ts := c.now()
	if n := len(l.events); n > 0 && ts.Before(l.events[n-1].Timestamp) {
		ts = l.events[n-1].Timestamp
	}
	event := domain.ProgressEvent{
		SessionID:  sessionID,
		Step:       step,
		Message:    message,
		StepNumber: index,
		TotalSteps: total,
		Timestamp:  ts,
	}
	l.events = append(l.events, event)
	c.trim(l)
	l.seq++
	seq := l.seq
	hydrated := l.hydrated
	snapshot := slices.Clone(l.events)
	if sub, ok := c.subs[sessionID]; ok {
		sub.push(event)
	}
	c.mu.Unlock()

	metrics.RecordProgressEvent()
	log.Debug().
		Str("session_id", sessionID).
		Str("step", step).
		Int("step_number", index).
		Int("total_steps", total).
		Msg("progress event")

	if !hydrated {
		log.Warn().Str("session_id", sessionID).Msg("progress history unavailable, skipping mirror write")
		return
	}
	c.writeMirror(ctx, sessionID, l, seq, snapshot)
}

// Read returns the session log in emission order. Memory is authoritative once
// it holds the session; otherwise the log is recovered from the mirror.
func (c *Channel) Read(ctx context.Context, sessionID string) []domain.ProgressEvent {
	c.mu.Lock()
	l, ok := c.logs[sessionID]
	c.mu.Unlock()
	if ok {
		c.hydrate(ctx, sessionID, l)

		c.mu.Lock()
		defer c.mu.Unlock()
		return slices.Clone(l.events)
	}

	events, found, err := c.readMirror(ctx, sessionID)
	if err != nil || !found {
		return []domain.ProgressEvent{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok = c.logs[sessionID]
	if !ok {
		l = &sessionLog{events: events, hydrated: true}
		c.logs[sessionID] = l
	}
	return slices.Clone(l.events)
}

// Subscribe registers transport as the live endpoint of the session, replacing
// any previous one, and replays the current log to it before live events.
// Transports are compared by identity, so implementations must be comparable.
func (c *Channel) Subscribe(ctx context.Context, sessionID string, transport domain.LiveTransport) {
	l := c.sessionLog(ctx, sessionID)

	sub := newSubscription(sessionID, transport, c.dropFailed)

	c.mu.Lock()
	sub.push(l.events...)
	old, replaced := c.subs[sessionID]
	c.subs[sessionID] = sub
	c.mu.Unlock()

	if replaced {
		old.close()
	} else {
		metrics.AddLiveSubscribers(1)
	}
	log.Info().Str("session_id", sessionID).Bool("replaced", replaced).Msg("live subscriber attached")

	go sub.run()
}

// Unsubscribe removes the live endpoint of the session. It is idempotent.
func (c *Channel) Unsubscribe(sessionID string) {
	c.mu.Lock()
	sub, ok := c.subs[sessionID]
	delete(c.subs, sessionID)
	c.mu.Unlock()

	if ok {
		sub.close()
		metrics.AddLiveSubscribers(-1)
	}
}

// Release removes the live endpoint only if it is still transport, so a
// disconnecting client never detaches the subscriber that replaced it.
func (c *Channel) Release(sessionID string, transport domain.LiveTransport) {
	c.mu.Lock()
	sub, ok := c.subs[sessionID]
	if ok && sub.transport == transport {
		delete(c.subs, sessionID)
	} else {
		ok = false
	}
	c.mu.Unlock()

	if ok {
		sub.close()
		metrics.AddLiveSubscribers(-1)
	}
}

// Subscribed reports whether the session has a live endpoint
func (c *Channel) Subscribed(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subs[sessionID]
	return ok
}

// Close detaches every live subscriber
func (c *Channel) Close() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]*subscription)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	metrics.AddLiveSubscribers(-len(subs))
}

func (c *Channel) dropFailed(sub *subscription, err error) {
	metrics.RecordLiveSendFailure()
	log.Warn().Err(err).Str("session_id", sub.sessionID).Msg("live send failed, dropping subscriber")

	c.mu.Lock()
	current, ok := c.subs[sub.sessionID]
	if ok && current == sub {
		delete(c.subs, sub.sessionID)
	} else {
		ok = false
	}
	c.mu.Unlock()

	sub.close()
	if ok {
		metrics.AddLiveSubscribers(-1)
	}
}

// sessionLog returns the in-memory log of the session, hydrating it from the
// mirror outside the lock on first use.
func (c *Channel) sessionLog(ctx context.Context, sessionID string) *sessionLog {
	c.mu.Lock()
	l, ok := c.logs[sessionID]
	c.mu.Unlock()
	if ok {
		c.hydrate(ctx, sessionID, l)
		return l
	}

	events, _, err := c.readMirror(ctx, sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.logs[sessionID]; ok {
		if err == nil {
			c.merge(existing, events)
		}
		return existing
	}
	l = &sessionLog{events: events, hydrated: err == nil}
	c.logs[sessionID] = l
	return l
}

// hydrate retries the mirror read for a log created while the mirror was
// unreadable and puts the mirrored history in front of the events since.
func (c *Channel) hydrate(ctx context.Context, sessionID string, l *sessionLog) {
	c.mu.Lock()
	done := l.hydrated
	c.mu.Unlock()
	if done {
		return
	}

	events, _, err := c.readMirror(ctx, sessionID)
	if err != nil {
		return
	}

	c.mu.Lock()
	c.merge(l, events)
	c.mu.Unlock()
}

// merge must be called with c.mu held
func (c *Channel) merge(l *sessionLog, mirrored []domain.ProgressEvent) {
	if l.hydrated {
		return
	}
	l.events = append(slices.Clone(mirrored), l.events...)
	l.hydrated = true
	c.trim(l)
}

// trim applies MaxEvents retention; must be called with c.mu held
func (c *Channel) trim(l *sessionLog) {
	if c.maxEvents > 0 && len(l.events) > c.maxEvents {
		l.events = slices.Clone(l.events[len(l.events)-c.maxEvents:])
	}
}

func (c *Channel) readMirror(ctx context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	if c.mirror == nil {
		return nil, false, nil
	}

	events, ok, err := c.mirror.ReadAll(ctx, sessionID)
	if err != nil {
		metrics.RecordMirrorFailure("read")
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to read progress mirror")
		return nil, false, err
	}
	return events, ok, nil
}

func (c *Channel) writeMirror(ctx context.Context, sessionID string, l *sessionLog, seq uint64, snapshot []domain.ProgressEvent) {
	if c.mirror == nil {
		return
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	// a newer snapshot already landed
	if seq <= l.written {
		return
	}

	if err := c.mirror.WriteAll(ctx, sessionID, snapshot); err != nil {
		metrics.RecordMirrorFailure("write")
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to write progress mirror")
		return
	}
	l.written = seq
}
