// Package announce delivers configured announcements on cron schedules.
package announce

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/heraldkit/herald/internal/config"
	"github.com/heraldkit/herald/internal/logger"
	"github.com/heraldkit/herald/pkg/constants"
	"github.com/heraldkit/herald/pkg/feedback"
)

// Job is one announcement resolved against the feedback theme.
type Job struct {
	Name      string
	Schedule  string
	ChannelID string
	Message   string
	Color     int
}

// Announcer schedules announcements and delivers them through the feedback
// service.
type Announcer struct {
	feedback *feedback.Service
	cron     *cron.Cron
	jobs     map[string]Job
}

// New builds an Announcer from configuration. Schedules are standard
// five-field cron expressions.
func New(svc *feedback.Service, announcements []config.AnnouncementConfig) (*Announcer, error) {
	a := &Announcer{
		feedback: svc,
		cron:     cron.New(),
		jobs:     make(map[string]Job, len(announcements)),
	}

	theme := svc.Theme()
	for _, ac := range announcements {
		job := Job{
			Name:      ac.Name,
			Schedule:  ac.Schedule,
			ChannelID: ac.ChannelID,
			Message:   ac.Message,
			Color:     theme.Color(ac.Severity),
		}
		if _, err := a.cron.AddFunc(job.Schedule, func() { a.deliver(job) }); err != nil {
			return nil, fmt.Errorf("failed to schedule announcement '%s': %w", job.Name, err)
		}
		a.jobs[job.Name] = job

		logger.WithFields(logrus.Fields{
			"announcement": job.Name,
			"schedule":     job.Schedule,
			"channel":      job.ChannelID,
		}).Debug("announcement-scheduled")
	}

	return a, nil
}

// Start begins firing jobs on their schedules. A jobless announcer stays idle.
func (a *Announcer) Start() {
	if len(a.jobs) == 0 {
		return
	}
	a.cron.Start()
	logger.WithField("jobs", len(a.jobs)).Info("announcer-started")
}

// Stop halts scheduling and waits for any running delivery to finish.
func (a *Announcer) Stop() {
	<-a.cron.Stop().Done()
	logger.Info("announcer-stopped")
}

// Jobs returns the number of configured announcements.
func (a *Announcer) Jobs() int {
	return len(a.jobs)
}

// Trigger delivers the named announcement immediately, outside its schedule.
func (a *Announcer) Trigger(ctx context.Context, name string) error {
	job, ok := a.jobs[name]
	if !ok {
		return fmt.Errorf("no announcement named '%s'", name)
	}
	return a.send(ctx, job)
}

// deliver is the scheduled entry point. A cron run has no caller to report
// to, so failures end at the log.
func (a *Announcer) deliver(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultAnnounceTimeout)
	defer cancel()

	_ = a.send(ctx, job)
}

func (a *Announcer) send(ctx context.Context, job Job) error {
	if _, err := a.feedback.SendToChannel(ctx, job.ChannelID, feedback.Message{
		Content: job.Message,
		Color:   job.Color,
	}); err != nil {
		logger.WithFields(logrus.Fields{
			"announcement": job.Name,
			"channel":      job.ChannelID,
			"error":        err,
		}).Error("announcement-delivery-failed")
		return fmt.Errorf("deliver announcement '%s': %w", job.Name, err)
	}

	logger.WithFields(logrus.Fields{
		"announcement": job.Name,
		"channel":      job.ChannelID,
	}).Info("announcement-delivered")
	return nil
}
