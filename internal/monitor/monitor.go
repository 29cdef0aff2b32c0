package monitor

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adlrocha/agent-notifications/internal/detect"
	"github.com/adlrocha/agent-notifications/internal/errors"
	"github.com/adlrocha/agent-notifications/internal/event"
	"github.com/adlrocha/agent-notifications/internal/logging"
	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// DefaultInterval is how often the monitor sweeps its watched tasks when
// no interval is configured.
const DefaultInterval = 2 * time.Second

// entry holds the per-task state the monitor carries between polls.
// Detectors are stateless; everything they need to compare against the
// previous poll lives here.
type entry struct {
	task *task.Task

	lastCheck    time.Time
	lastCPU      *uint64
	lastState    byte
	lastActivity time.Time

	reason   *detect.AttentionReason
	detector string
}

// Snapshot is a read-only view of one watched task, safe to hand to the
// TUI or CLI while the monitor keeps polling.
type Snapshot struct {
	Task     task.Task
	Reason   *detect.AttentionReason
	Detector string
	IdleFor  time.Duration
}

// Monitor polls the kernel state of watched tasks and applies attention
// verdicts from its detector registry. It is safe for concurrent use.
type Monitor struct {
	fs       procfs.Reader
	registry *detect.Registry
	bus      *event.Bus
	log      *logging.Logger
	interval time.Duration

	mu      sync.RWMutex
	tasks   map[string]*entry
	stopped bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logging.Logger) Option {
	return func(m *Monitor) {
		if log != nil {
			m.log = log.WithComponent("monitor")
		}
	}
}

// WithBus sets the event bus attention and lifecycle events are
// published on. Without a bus, events are dropped.
func WithBus(bus *event.Bus) Option {
	return func(m *Monitor) { m.bus = bus }
}

// New creates a Monitor that inspects processes through fs and judges
// them with registry.
func New(fs procfs.Reader, registry *detect.Registry, opts ...Option) *Monitor {
	m := &Monitor{
		fs:       fs,
		registry: registry,
		log:      logging.NopLogger(),
		interval: DefaultInterval,
		tasks:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Interval returns the configured polling interval.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// SetRegistry swaps the detector registry. The next sweep uses the new
// detectors; per-task poll state is unaffected.
func (m *Monitor) SetRegistry(r *detect.Registry) {
	if r == nil {
		return
	}
	m.mu.Lock()
	m.registry = r
	m.mu.Unlock()
}

// Watch adds a task to the polling set. The task is validated and must
// not already be watched.
func (m *Monitor) Watch(t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return errors.NewMonitorError("cannot watch task", errors.ErrMonitorStopped).WithTaskID(t.ID)
	}
	if _, ok := m.tasks[t.ID]; ok {
		return errors.NewMonitorError("cannot watch task", errors.ErrAlreadyWatched).WithTaskID(t.ID)
	}

	m.tasks[t.ID] = &entry{
		task:         t,
		lastActivity: time.Now(),
	}

	m.log.WithTask(t.ID).WithPID(t.PID).Info("task watched", "label", t.Label)
	m.publish(event.NewTaskWatchedEvent(t.ID, t.PID, t.Label))
	return nil
}

// Unwatch removes a task from the polling set.
func (m *Monitor) Unwatch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return errors.NewNotFoundError("task", id).WithCause(errors.ErrTaskNotFound)
	}
	delete(m.tasks, id)

	m.log.WithTask(id).Info("task unwatched")
	return nil
}

// Tasks returns a snapshot of every watched task, sorted by task ID for
// stable display.
func (m *Monitor) Tasks() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	out := make([]Snapshot, 0, len(m.tasks))
	for _, e := range m.tasks {
		out = append(out, m.snapshotLocked(e, now))
	}
	sortSnapshots(out)
	return out
}

// Task returns a snapshot of a single watched task.
func (m *Monitor) Task(id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.tasks[id]
	if !ok {
		return Snapshot{}, errors.NewNotFoundError("task", id).WithCause(errors.ErrTaskNotFound)
	}
	return m.snapshotLocked(e, time.Now()), nil
}

// snapshotLocked builds a Snapshot for one entry. Callers hold m.mu.
func (m *Monitor) snapshotLocked(e *entry, now time.Time) Snapshot {
	var idle time.Duration
	if !e.task.Status.IsTerminal() && !e.lastActivity.IsZero() {
		idle = now.Sub(e.lastActivity)
	}
	return Snapshot{
		Task:     *e.task,
		Reason:   e.reason,
		Detector: e.detector,
		IdleFor:  idle,
	}
}

// Poll sweeps every watched task once: it samples kernel state, updates
// idle accounting, runs the detector registry, and applies any status
// transition. now is injected so tests control the clock.
func (m *Monitor) Poll(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.tasks {
		if e.task.Status.IsTerminal() {
			continue
		}
		m.pollOne(e, now)
	}
}

// pollOne inspects a single task. Callers hold m.mu.
func (m *Monitor) pollOne(e *entry, now time.Time) {
	t := e.task
	log := m.log.WithTask(t.ID).WithPID(t.PID)

	snap, err := m.fs.Stat(t.PID)
	if err != nil {
		if errors.IsProcessGone(err) {
			last := t.Status
			log.Info("process exited", "last_status", last.String())
			m.transition(e, task.StatusExited)
			m.publish(event.NewTaskExitedEvent(t.ID, t.PID, last))
			return
		}
		// Transient read failure: keep previous state, try again next sweep.
		log.Warn("stat read failed", "error", err.Error(), "retryable", errors.IsRetryable(err))
		return
	}

	// Activity accounting: CPU progress or a state-code change resets the
	// idle clock. The first successful sample always counts as activity.
	cpuNow := snap.CPUTime()
	if e.lastCPU == nil || *e.lastCPU != cpuNow || e.lastState != snap.State {
		e.lastActivity = now
	}
	idle := now.Sub(e.lastActivity)

	var reason *detect.AttentionReason
	var detector string
	for _, v := range m.registry.CheckAll(t, detect.PollContext{
		PID:          t.PID,
		LastCheck:    e.lastCheck,
		LastCPUTime:  e.lastCPU,
		IdleDuration: idle,
	}) {
		if v.Reason != nil {
			reason, detector = v.Reason, v.Detector
			break
		}
	}

	m.applyVerdict(e, reason, detector, log)

	// Carry this sample into the next poll.
	cpu := cpuNow
	e.lastCPU = &cpu
	e.lastState = snap.State
	e.lastCheck = now
}

// applyVerdict reconciles a detector verdict with the task's current
// attention state, publishing attention and status events on edges.
func (m *Monitor) applyVerdict(e *entry, reason *detect.AttentionReason, detector string, log *logging.Logger) {
	t := e.task

	if reason == nil {
		if e.reason != nil {
			log.Info("attention cleared")
			m.publish(event.NewAttentionClearedEvent(t.ID, t.PID))
		}
		e.reason = nil
		e.detector = ""
		m.transition(e, task.StatusRunning)
		return
	}

	newEdge := e.reason == nil || e.reason.Kind() != reason.Kind()
	e.reason = reason
	e.detector = detector

	m.transition(e, statusFor(reason))

	if newEdge {
		log.Info("attention needed", "reason", reason.String(), "detector", detector)
		m.publish(event.NewAttentionEvent(t.ID, t.PID, detector, reason))
	}
}

// transition applies a status change and publishes the edge.
func (m *Monitor) transition(e *entry, to task.Status) {
	from := e.task.Status
	if from == to {
		return
	}
	e.task.Status = to
	m.publish(event.NewStatusChangeEvent(e.task.ID, from, to))
}

// statusFor maps an attention verdict onto a task status. Custom reasons
// surface as waiting: something asked for a human.
func statusFor(reason *detect.AttentionReason) task.Status {
	if reason.Kind() == detect.KindProcessStalled {
		return task.StatusStalled
	}
	return task.StatusWaiting
}

// Run polls on a ticker until ctx is cancelled. It performs one sweep
// immediately so freshly watched tasks are inspected without waiting a
// full interval.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info("monitor started", "interval", m.interval.String())
	m.publish(event.NewMonitorStartedEvent(m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Poll(time.Now())

	for {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.stopped = true
			m.mu.Unlock()

			m.log.Info("monitor stopped", "reason", ctx.Err().Error())
			m.publish(event.NewMonitorStoppedEvent(ctx.Err().Error()))
			return ctx.Err()
		case now := <-ticker.C:
			m.Poll(now)
		}
	}
}

// publish sends an event if a bus is attached.
func (m *Monitor) publish(ev event.Event) {
	if m.bus != nil {
		m.bus.Publish(ev)
	}
}

// sortSnapshots orders snapshots by task ID for stable output.
func sortSnapshots(snaps []Snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Task.ID < snaps[j].Task.ID
	})
}
