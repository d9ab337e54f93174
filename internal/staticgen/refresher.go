package staticgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

const refreshTimeout = 30 * time.Second

// Refresher rebuilds a PathSet from the backend, once at start-up and then
// on a fixed interval.
type Refresher struct {
	source    Source
	set       *PathSet
	logger    *slog.Logger
	scheduler *gocron.Scheduler
}

func NewRefresher(source Source, set *PathSet, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Refresher{
		source: source,
		set:    set,
		logger: logger,
	}
}

// Refresh replaces the set with the current published paths. On error the
// previous set is left untouched. Adds and removes made while the backend
// is being listed win over the listing.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.set.beginTracking()

	result, err := Paths(ctx, r.source)
	if err != nil {
		r.set.endTracking()
		return err
	}

	r.set.replaceTracked(result)
	if len(result.Rejected) > 0 {
		r.logger.Warn("skipped unroutable slugs", "slugs", result.Rejected)
	}
	r.logger.Info("static paths refreshed", "count", r.set.Len())
	return nil
}

// Start schedules Refresh every interval. The first scheduled run happens
// one interval from now; callers run Refresh themselves before serving.
func (r *Refresher) Start(interval time.Duration) error {
	if interval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	if r.scheduler != nil {
		return errors.New("refresher already started")
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(interval).WaitForSchedule().Do(r.scheduledRefresh)
	if err != nil {
		return fmt.Errorf("schedule static path refresh: %w", err)
	}

	scheduler.StartAsync()
	r.scheduler = scheduler
	return nil
}

func (r *Refresher) Stop() {
	if r.scheduler == nil {
		return
	}

	r.scheduler.Stop()
	r.scheduler = nil
}

func (r *Refresher) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("static path refresh failed, keeping previous set", "error", err, "count", r.set.Len())
	}
}
