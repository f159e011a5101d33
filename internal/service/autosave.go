package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ─────────────────────────────────────────────────────────────
// Autosaver: periodic SavePage on a cron schedule
// ─────────────────────────────────────────────────────────────

// Autosaver calls SavePage on a cron schedule. Clean trees are skipped by
// the gateway itself, so a tick with nothing to do costs a mutex.
type Autosaver struct {
	svc      *EditorService
	schedule string
	log      logrus.FieldLogger
	guard    saveGuard
	cron     *cron.Cron
	cancel   context.CancelFunc
}

// NewAutosaver creates an autosaver. An empty schedule disables it.
// Schedules use the standard five-field syntax or descriptors such as
// "@every 30s".
func NewAutosaver(svc *EditorService, schedule string, log logrus.FieldLogger) *Autosaver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Autosaver{svc: svc, schedule: schedule, log: log.WithField("component", "autosave")}
}

// Start schedules the job. It returns an error for an invalid schedule.
func (a *Autosaver) Start(ctx context.Context) error {
	if a.schedule == "" {
		a.log.Debug("autosave disabled")
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(a.schedule, func() { a.Tick(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("autosave: invalid schedule %q: %w", a.schedule, err)
	}
	c.Start()
	a.cron = c
	a.cancel = cancel
	a.log.Infof("autosave scheduled %q", a.schedule)
	return nil
}

// Tick runs one autosave. A tick is dropped while the previous save for the
// same page is still running.
func (a *Autosaver) Tick(ctx context.Context) {
	page := a.svc.State().SelectedPageID
	if page == "" {
		return
	}
	if !a.guard.TryLock(page) {
		a.log.WithField("page", page).Debug("previous autosave still running")
		return
	}
	defer a.guard.Unlock(page)

	res, err := a.svc.SavePage(ctx)
	if err != nil {
		a.log.WithError(err).Warn("autosave failed")
		return
	}
	if !res.Skipped {
		a.log.WithFields(logrus.Fields{"key": res.Key, "remote": res.Remote.Status}).Info("autosaved")
	}
}

// Stop unschedules the job and waits up to timeout for a running save. A
// save still running after that has its context cancelled.
func (a *Autosaver) Stop(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.cron != nil {
		select {
		case <-a.cron.Stop().Done():
		case <-ctx.Done():
			a.log.Warn("autosave still running at shutdown")
		}
		a.cron = nil
	}
	a.guard.WaitAll(ctx)
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
