package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// AutomatonInfo identifies the automaton an observer callback refers to.
type AutomatonInfo struct {
	// Automaton is the definition name (the type, not the instance).
	Automaton string

	// InstanceID is the opaque per-instance ID, unique per in-memory
	// construction. It is never persisted.
	InstanceID string
}

// Observer receives callbacks from the automaton for logging and metrics.
//
// Execution is synchronous: callbacks run inline on the goroutine driving
// the automaton. Implementations should be fast and non-blocking; heavy work
// should be done asynchronously so as not to delay execution.
type Observer interface {
	// OnStart is called when StartFrom sets the position. No behavior has
	// run: entering the start state is not a move.
	OnStart(info AutomatonInfo, id StateID)

	// OnTransition is called after a successful move, behavior included.
	// duration covers the behavior invocation only.
	OnTransition(info AutomatonInfo, from, to StateID, duration time.Duration)

	// OnBlocked is called when Step found candidates but every guard
	// evaluated false. The position is unchanged.
	OnBlocked(info AutomatonInfo, from StateID)

	// OnFailure is called when a guard evaluation or a behavior routine
	// returns an error. to is NoState when the failure happened before a
	// target was committed.
	OnFailure(info AutomatonInfo, from, to StateID, err error)

	// OnSnapshotSaved is called after Snapshot captured the document.
	OnSnapshotSaved(info AutomatonInfo, current StateID)

	// OnSnapshotLoaded is called after a document was loaded and rebound.
	OnSnapshotLoaded(info AutomatonInfo, current StateID)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnStart(info AutomatonInfo, id StateID)                             {}
func (NoopObserver) OnTransition(info AutomatonInfo, from, to StateID, d time.Duration) {}
func (NoopObserver) OnBlocked(info AutomatonInfo, from StateID)                         {}
func (NoopObserver) OnFailure(info AutomatonInfo, from, to StateID, err error)          {}
func (NoopObserver) OnSnapshotSaved(info AutomatonInfo, current StateID)                {}
func (NoopObserver) OnSnapshotLoaded(info AutomatonInfo, current StateID)               {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnStart(info AutomatonInfo, id StateID) {
	for _, o := range c.observers {
		o.OnStart(info, id)
	}
}

func (c *CompositeObserver) OnTransition(info AutomatonInfo, from, to StateID, d time.Duration) {
	for _, o := range c.observers {
		o.OnTransition(info, from, to, d)
	}
}

func (c *CompositeObserver) OnBlocked(info AutomatonInfo, from StateID) {
	for _, o := range c.observers {
		o.OnBlocked(info, from)
	}
}

func (c *CompositeObserver) OnFailure(info AutomatonInfo, from, to StateID, err error) {
	for _, o := range c.observers {
		o.OnFailure(info, from, to, err)
	}
}

func (c *CompositeObserver) OnSnapshotSaved(info AutomatonInfo, current StateID) {
	for _, o := range c.observers {
		o.OnSnapshotSaved(info, current)
	}
}

func (c *CompositeObserver) OnSnapshotLoaded(info AutomatonInfo, current StateID) {
	for _, o := range c.observers {
		o.OnSnapshotLoaded(info, current)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs automaton lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnStart(info AutomatonInfo, id StateID) {
	o.Logger.Info("automaton_start",
		slog.String("automaton", info.Automaton),
		slog.String("instance_id", info.InstanceID),
		slog.Int("state", int(id)),
	)
}

func (o *LoggingObserver) OnTransition(info AutomatonInfo, from, to StateID, d time.Duration) {
	o.Logger.Debug("transition",
		slog.String("automaton", info.Automaton),
		slog.String("instance_id", info.InstanceID),
		slog.Int("from", int(from)),
		slog.Int("to", int(to)),
		slog.Duration("duration", d),
	)
}

func (o *LoggingObserver) OnBlocked(info AutomatonInfo, from StateID) {
	o.Logger.Debug("blocked",
		slog.String("automaton", info.Automaton),
		slog.String("instance_id", info.InstanceID),
		slog.Int("from", int(from)),
	)
}

func (o *LoggingObserver) OnFailure(info AutomatonInfo, from, to StateID, err error) {
	o.Logger.Error("automaton_failed",
		slog.String("automaton", info.Automaton),
		slog.String("instance_id", info.InstanceID),
		slog.Int("from", int(from)),
		slog.Int("to", int(to)),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnSnapshotSaved(info AutomatonInfo, current StateID) {
	o.Logger.Info("snapshot_saved",
		slog.String("automaton", info.Automaton),
		slog.String("instance_id", info.InstanceID),
		slog.Int("current", int(current)),
	)
}

func (o *LoggingObserver) OnSnapshotLoaded(info AutomatonInfo, current StateID) {
	o.Logger.Info("snapshot_loaded",
		slog.String("automaton", info.Automaton),
		slog.String("instance_id", info.InstanceID),
		slog.Int("current", int(current)),
	)
}

// BasicMetrics collects simple counters and aggregate behavior durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	starts                atomic.Int64
	transitions           atomic.Int64
	blocked               atomic.Int64
	failures              atomic.Int64
	totalBehaviorDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Starts      int64
	Transitions int64
	Blocked     int64
	Failures    int64

	AvgBehaviorDuration time.Duration
}

func (m *BasicMetrics) OnStart(info AutomatonInfo, id StateID) {
	m.starts.Add(1)
}

func (m *BasicMetrics) OnTransition(info AutomatonInfo, from, to StateID, d time.Duration) {
	m.transitions.Add(1)
	m.totalBehaviorDuration.Add(d.Nanoseconds())
}

func (m *BasicMetrics) OnBlocked(info AutomatonInfo, from StateID) {
	m.blocked.Add(1)
}

func (m *BasicMetrics) OnFailure(info AutomatonInfo, from, to StateID, err error) {
	m.failures.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	transitions := m.transitions.Load()
	totalNs := m.totalBehaviorDuration.Load()

	var avg time.Duration
	if transitions > 0 {
		avg = time.Duration(totalNs / transitions)
	}

	return BasicMetricsSnapshot{
		Starts:              m.starts.Load(),
		Transitions:         transitions,
		Blocked:             m.blocked.Load(),
		Failures:            m.failures.Load(),
		AvgBehaviorDuration: avg,
	}
}

// JournalObserver bridges observer callbacks to a Journal, turning each
// callback into an appended Event. Append failures do not interrupt
// execution; they are logged via the configured logger.
type JournalObserver struct {
	NoopObserver

	journal Journal
	logger  *slog.Logger
}

// NewJournalObserver creates an Observer that records lifecycle events in
// the given journal. If logger is nil, slog.Default() is used for reporting
// append failures.
func NewJournalObserver(journal Journal, logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalObserver{journal: journal, logger: logger}
}

func (o *JournalObserver) append(ev Event) {
	if err := o.journal.Append(context.Background(), ev); err != nil {
		o.logger.Error("journal_append_failed",
			slog.String("instance_id", ev.InstanceID),
			slog.String("type", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}

func (o *JournalObserver) OnStart(info AutomatonInfo, id StateID) {
	o.append(Event{
		InstanceID: info.InstanceID,
		At:         time.Now(),
		Type:       EventStarted,
		Automaton:  info.Automaton,
		From:       NoState,
		To:         id,
	})
}

func (o *JournalObserver) OnTransition(info AutomatonInfo, from, to StateID, d time.Duration) {
	o.append(Event{
		InstanceID: info.InstanceID,
		At:         time.Now(),
		Type:       EventTransition,
		Automaton:  info.Automaton,
		From:       from,
		To:         to,
	})
}

func (o *JournalObserver) OnBlocked(info AutomatonInfo, from StateID) {
	o.append(Event{
		InstanceID: info.InstanceID,
		At:         time.Now(),
		Type:       EventBlocked,
		Automaton:  info.Automaton,
		From:       from,
		To:         NoState,
	})
}

func (o *JournalObserver) OnFailure(info AutomatonInfo, from, to StateID, err error) {
	o.append(Event{
		InstanceID: info.InstanceID,
		At:         time.Now(),
		Type:       EventFailed,
		Automaton:  info.Automaton,
		From:       from,
		To:         to,
		Detail:     err.Error(),
	})
}

func (o *JournalObserver) OnSnapshotSaved(info AutomatonInfo, current StateID) {
	o.append(Event{
		InstanceID: info.InstanceID,
		At:         time.Now(),
		Type:       EventSnapshotSaved,
		Automaton:  info.Automaton,
		From:       NoState,
		To:         current,
	})
}

func (o *JournalObserver) OnSnapshotLoaded(info AutomatonInfo, current StateID) {
	o.append(Event{
		InstanceID: info.InstanceID,
		At:         time.Now(),
		Type:       EventSnapshotLoaded,
		Automaton:  info.Automaton,
		From:       NoState,
		To:         current,
	})
}
