package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/facetdb/facet/dialect"
)

// QueryStats holds query execution statistics.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of statement errors.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgDuration returns the average statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgDuration(),
		s.SlowQueries, s.Errors,
	)
}

// Event describes one executed statement, reported after it returned.
// ID is unique per execution so downstream sinks can correlate the
// success/failure of a statement across log lines.
type Event struct {
	ID        uuid.UUID
	Op        string // "query" or "exec"
	Statement string
	Args      []any
	Duration  time.Duration
	Err       error
}

// Hook receives an Event after every statement execution, successful
// or failed. Hooks run synchronously on the calling goroutine and
// must not retain Args past the call.
type Hook func(ctx context.Context, ev Event)

// SlowQueryHook is a function called when a slow statement is detected.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// ObserverDriver wraps a dialect.Driver with statistics collection and
// per-statement event hooks. It is the only observation surface of the
// execution boundary: the clause builders themselves never log.
type ObserverDriver struct {
	dialect.Driver
	stats         *QueryStats
	hooks         []Hook
	slowThreshold time.Duration
	slowHook      SlowQueryHook
	mu            sync.RWMutex
}

// ObserverOption configures the ObserverDriver.
type ObserverOption func(*ObserverDriver)

// WithHook registers a per-statement event hook.
func WithHook(h Hook) ObserverOption {
	return func(d *ObserverDriver) {
		d.hooks = append(d.hooks, h)
	}
}

// WithLogHook registers a hook that logs every statement to the
// default slog logger, at Info level on success and Error on failure.
func WithLogHook() ObserverOption {
	return WithHook(func(_ context.Context, ev Event) {
		if ev.Err != nil {
			slog.Error("statement failed",
				"id", ev.ID, "op", ev.Op, "statement", ev.Statement,
				"duration", ev.Duration, "err", ev.Err)
			return
		}
		slog.Info("statement executed",
			"id", ev.ID, "op", ev.Op, "statement", ev.Statement,
			"duration", ev.Duration)
	})
}

// WithSlowThreshold sets the threshold for slow statement detection.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) ObserverOption {
	return func(s *ObserverDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) ObserverOption {
	return func(s *ObserverDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to the default slog logger.
// This is a convenience wrapper around WithSlowQueryHook.
func WithSlowQueryLog() ObserverOption {
	return WithSlowQueryHook(func(_ context.Context, query string, args []any, duration time.Duration) {
		slog.Warn("slow query detected", "duration", duration, "query", query, "args", args)
	})
}

// NewObserverDriver wraps a driver with statistics and event hooks.
//
// Example:
//
//	drv, _ := sql.Open(dialect.MySQL, dsn)
//	obs := sql.NewObserverDriver(drv,
//	    sql.WithLogHook(),
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(),
//	)
//	client := facet.NewClient(obs)
//
//	// Later, check statistics:
//	fmt.Println(obs.QueryStats().Stats())
func NewObserverDriver(drv dialect.Driver, opts ...ObserverOption) *ObserverDriver {
	d := &ObserverDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *ObserverDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the current slow statement threshold.
func (d *ObserverDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *ObserverDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Query executes a query, then records statistics and fires hooks.
func (d *ObserverDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, "query", query, args, start, err)
	return err
}

// Exec executes a statement, then records statistics and fires hooks.
func (d *ObserverDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, "exec", query, args, start, err)
	return err
}

func (d *ObserverDriver) record(ctx context.Context, op, query string, args any, start time.Time, err error) {
	duration := time.Since(start)
	if op == "query" {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		d.stats.Errors.Add(1)
	}

	d.mu.RLock()
	threshold := d.slowThreshold
	slowHook := d.slowHook
	hooks := d.hooks
	d.mu.RUnlock()

	argsSlice, _ := args.([]any)
	if len(hooks) > 0 {
		ev := Event{
			ID:        uuid.New(),
			Op:        op,
			Statement: query,
			Args:      argsSlice,
			Duration:  duration,
			Err:       err,
		}
		for _, h := range hooks {
			h(ctx, ev)
		}
	}

	if duration > threshold {
		d.stats.SlowQueries.Add(1)
		if slowHook != nil {
			slowHook(ctx, query, argsSlice, duration)
		}
	}
}

// Tx starts a transaction that reports through the same observer.
func (d *ObserverDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &ObserverTx{Tx: tx, driver: d}, nil
}

// ObserverTx wraps a transaction with statistics and event hooks.
type ObserverTx struct {
	dialect.Tx
	driver *ObserverDriver
}

// Query executes a query within the transaction and reports it.
func (tx *ObserverTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(ctx, "query", query, args, start, err)
	return err
}

// Exec executes a statement within the transaction and reports it.
func (tx *ObserverTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(ctx, "exec", query, args, start, err)
	return err
}

// Ensure interfaces are implemented.
var (
	_ dialect.Driver = (*ObserverDriver)(nil)
	_ dialect.Tx     = (*ObserverTx)(nil)
)
