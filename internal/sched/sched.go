// Package sched wires up the cron job that periodically re-scores stored
// opportunities as their deadlines approach.
package sched

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oppbot/oppbot/internal/analyzer"
	"github.com/oppbot/oppbot/internal/metrics"
	"github.com/oppbot/oppbot/internal/notify"
	"github.com/oppbot/oppbot/internal/store"
)

// deadlineAlertDays marks the window where a re-scored opportunity also
// triggers a deadline reminder.
const deadlineAlertDays = 3

// Rescorer re-runs the keyword analysis over stored opportunities so
// deadline-tier bonuses stay current, and alerts on newly-close deadlines.
type Rescorer struct {
	cron     *cron.Cron
	store    store.Store
	notifier *notify.Notifier
	spec     string
	now      func() time.Time
}

// New creates a Rescorer firing on the given cron spec, e.g. "0 6 * * *".
func New(st store.Store, notifier *notify.Notifier, spec string, now func() time.Time) *Rescorer {
	if now == nil {
		now = time.Now
	}
	return &Rescorer{
		cron:     cron.New(),
		store:    st,
		notifier: notifier,
		spec:     spec,
		now:      now,
	}
}

// Start registers the job and starts the scheduler.
func (r *Rescorer) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("sched: cron spec %q: %w", r.spec, err)
	}
	r.cron.Start()
	slog.Info("sched: rescore cron started", slog.String("spec", r.spec))
	return nil
}

// Stop shuts down the scheduler and waits for a running sweep to finish.
func (r *Rescorer) Stop() {
	<-r.cron.Stop().Done()
	slog.Info("sched: rescore cron stopped")
}

// Run executes one re-score sweep over all open opportunities. Completed
// and rejected records keep their score.
func (r *Rescorer) Run(ctx context.Context) {
	metrics.IncrRescoreRuns()
	now := r.now()
	updated := 0

	for _, status := range []store.Status{store.StatusNew, store.StatusApplied, store.StatusInProgress} {
		opps, err := r.store.List(ctx, store.ListFilter{Status: string(status), Limit: 200})
		if err != nil {
			slog.Error("sched: list failed", slog.String("status", string(status)), slog.Any("error", err))
			continue
		}
		for _, opp := range opps {
			fresh := analyzer.Analyze(opp.Content, now)
			if fresh.PriorityScore == opp.PriorityScore {
				continue
			}
			if err := r.store.UpdateScore(ctx, opp.ID, fresh.PriorityScore); err != nil {
				slog.Warn("sched: update score failed", slog.Int64("id", opp.ID), slog.Any("error", err))
				continue
			}
			updated++

			if fresh.PriorityScore > opp.PriorityScore && opp.Deadline != "" {
				if days, ok := daysLeft(opp.Deadline, now); ok && days <= deadlineAlertDays {
					_ = r.notifier.DeadlineSoon(opp, days)
				}
			}
		}
	}

	slog.Info("sched: rescore sweep complete", slog.Int("updated", updated))
}

func daysLeft(deadline string, now time.Time) (int, bool) {
	d, err := time.Parse(analyzer.DateLayout, deadline)
	if err != nil {
		return 0, false
	}
	days := int(d.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}
