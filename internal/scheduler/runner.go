// Package scheduler drives reminder delivery: a periodic timer
// re-evaluates the latest task snapshot against the recurrence matcher,
// consults the deduplicator and hands matches to the notification
// surface.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/remindd/internal/dedup"
	"github.com/sandeepkv93/remindd/internal/match"
	"github.com/sandeepkv93/remindd/internal/metrics"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/sessionstore"
)

// DefaultInterval is the fixed production poll period.
const DefaultInterval = 60 * time.Second

type Options struct {
	Interval time.Duration
	Now      func() time.Time
	Notifier notify.Notifier
	Dedup    *dedup.Deduplicator
	Logger   *slog.Logger
}

// Runner is a two-state machine: Idle (no timer) until the task
// snapshot first becomes non-empty, then Armed (periodic timer) until
// Stop releases the timer. Stop is terminal.
type Runner struct {
	mu      sync.Mutex
	tasks   []model.Task
	armed   bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	interval time.Duration
	now      func() time.Time
	notifier notify.Notifier
	dedup    *dedup.Deduplicator
	log      *slog.Logger

	permissionOnce sync.Once
	silent         bool
}

func NewRunner(opts Options) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Dedup == nil {
		opts.Dedup = dedup.New(sessionstore.NewMemory(), opts.Now, dedup.DefaultTTL)
	}
	return &Runner{
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: opts.Interval,
		now:      opts.Now,
		notifier: opts.Notifier,
		dedup:    opts.Dedup,
		log:      opts.Logger.With("component", "scheduler"),
	}
}

// SetTasks replaces the snapshot the next tick will observe; ticks
// never read a stale closure. The first non-empty snapshot arms the
// timer.
func (r *Runner) SetTasks(tasks []model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = tasks
	if !r.armed && !r.stopped && len(tasks) > 0 {
		r.armed = true
		go r.loop()
	}
}

// Stop releases the timer. It is safe to call more than once and on a
// runner that never armed.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	wasArmed := r.armed
	r.armed = false
	close(r.stopCh)
	r.mu.Unlock()

	if wasArmed {
		<-r.doneCh
	}
}

func (r *Runner) Armed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.armed
}

func (r *Runner) loop() {
	defer close(r.doneCh)

	r.requestPermission()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			r.RunOnce(ctx)
			cancel()
		case <-r.stopCh:
			return
		}
	}
}

// requestPermission asks the platform once. Denial or an unsupported
// surface leaves the scheduler running with no visible side effect;
// that is success, not failure.
func (r *Runner) requestPermission() {
	r.permissionOnce.Do(func() {
		if !r.notifier.Supported() {
			r.silent = true
			r.log.Info("notification surface unsupported, running silently")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.notifier.RequestPermission(ctx); err != nil {
			r.silent = true
			r.log.Info("notification permission not granted, running silently", "reason", err)
		}
	})
}

// RunOnce evaluates a single poll cycle against the latest snapshot.
func (r *Runner) RunOnce(ctx context.Context) {
	metrics.SchedulerTicks.Inc()
	r.requestPermission()
	if r.silent {
		return
	}

	now := r.now()
	for _, task := range r.snapshot() {
		if task.Completed || task.Recurring == nil {
			continue
		}
		if !match.Matches(task.Recurring, now) {
			continue
		}
		metrics.RemindersMatched.Inc()

		if !r.dedup.ShouldFire(ctx, task.ID) {
			metrics.RemindersDeduped.Inc()
			continue
		}
		if err := r.notifier.Show(ctx, notify.ForTask(task)); err != nil {
			// Left unmarked so the next cycle inside the firing window
			// can retry delivery.
			metrics.NotifyErrors.Inc()
			r.log.Warn("notification delivery failed", "task_id", task.ID, "error", err)
			continue
		}
		metrics.RemindersFired.Inc()
		r.log.Info("reminder fired", "task_id", task.ID, "title", task.Title)

		if err := r.dedup.MarkFired(ctx, task.ID); err != nil {
			r.log.Warn("recording fired reminder failed", "task_id", task.ID, "error", err)
		}
	}
}

func (r *Runner) snapshot() []model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks
}
