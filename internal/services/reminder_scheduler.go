package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/candela/internal/models"
	"github.com/terraincognita07/candela/internal/security"
)

type SchedulerUserSource interface {
	ListNotifiable() ([]models.User, error)
}

type SchedulerContactSource interface {
	ListByUser(userID uint) ([]models.Contact, error)
}

// Notifier delivers one user's digest. Implementations own their transport
// and timeouts; the scheduler only logs and counts their failures.
type Notifier interface {
	SendDigest(ctx context.Context, user models.User, digest Digest) error
}

// RunReport is the aggregate outcome of one scheduled run, one counter per
// dispatch result so operators can spot silent failures in the logs.
type RunReport struct {
	RunID        string    `json:"run_id"`
	Today        time.Time `json:"today"`
	WeeklyRun    bool      `json:"weekly_run"`
	Users        int       `json:"users"`
	Sent         int       `json:"sent"`
	SkippedEmpty int       `json:"skipped_empty"`
	Failed       int       `json:"failed"`
}

// ReminderScheduler walks every notifiable user, selects their digests and
// hands non-empty ones to the notifier. Each run is stateless: it is driven
// entirely by today's date and the records themselves.
type ReminderScheduler struct {
	users    SchedulerUserSource
	contacts SchedulerContactSource
	notifier Notifier
	location *time.Location
	cron     *cron.Cron
}

func NewReminderScheduler(users SchedulerUserSource, contacts SchedulerContactSource, notifier Notifier, location *time.Location) *ReminderScheduler {
	if location == nil {
		location = time.UTC
	}
	return &ReminderScheduler{
		users:    users,
		contacts: contacts,
		notifier: notifier,
		location: location,
	}
}

// Run executes one scheduled pass. A failure for one user is logged and
// counted, never propagated: the remaining users still get their digests.
func (scheduler *ReminderScheduler) Run(ctx context.Context, today time.Time, isWeeklyRun bool) RunReport {
	report := RunReport{
		RunID:     security.RunToken(),
		Today:     dateOnly(today),
		WeeklyRun: isWeeklyRun,
	}

	users, err := scheduler.users.ListNotifiable()
	if err != nil {
		log.Printf("scheduler[%s]: fetch users failed: %v", report.RunID, err)
		return report
	}
	report.Users = len(users)

	for _, user := range users {
		if ctx.Err() != nil {
			log.Printf("scheduler[%s]: run abandoned: %v", report.RunID, ctx.Err())
			return report
		}

		contacts, err := scheduler.contacts.ListByUser(user.ID)
		if err != nil {
			log.Printf("scheduler[%s]: fetch contacts failed for user %d: %v", report.RunID, user.ID, err)
			report.Failed++
			continue
		}

		digest := Digest{
			UserID:   user.ID,
			DueToday: SelectDueToday(contacts, today),
		}
		if isWeeklyRun {
			digest.DueThisWeek = SelectUpcomingWithinWeek(contacts, today)
		}

		if digest.Empty() {
			report.SkippedEmpty++
			continue
		}

		if err := scheduler.notifier.SendDigest(ctx, user, digest); err != nil {
			log.Printf("scheduler[%s]: dispatch failed for user %d: %v", report.RunID, user.ID, err)
			report.Failed++
			continue
		}
		report.Sent++
	}

	log.Printf("scheduler[%s]: run complete: users=%d sent=%d empty=%d failed=%d weekly=%v",
		report.RunID, report.Users, report.Sent, report.SkippedEmpty, report.Failed, isWeeklyRun)
	return report
}

// Start registers the daily cron trigger. The weekly roundup piggybacks on
// the daily fire: the flag is true when the fire day matches weeklyWeekday.
// This is the single place the engine reads the real clock.
func (scheduler *ReminderScheduler) Start(ctx context.Context, digestHour int, weeklyWeekday time.Weekday) error {
	if digestHour < 0 || digestHour > 23 {
		return fmt.Errorf("digest hour %d out of range", digestHour)
	}

	runner := cron.New(cron.WithLocation(scheduler.location))
	spec := fmt.Sprintf("0 %d * * *", digestHour)
	if _, err := runner.AddFunc(spec, func() {
		now := time.Now().In(scheduler.location)
		scheduler.Run(ctx, now, now.Weekday() == weeklyWeekday)
	}); err != nil {
		return fmt.Errorf("register digest cron: %w", err)
	}

	runner.Start()
	scheduler.cron = runner
	log.Printf("scheduler: daily digest at %02d:00 %s, weekly roundup on %s", digestHour, scheduler.location, weeklyWeekday)
	return nil
}

// Stop halts the cron trigger and waits for an in-flight run to finish.
func (scheduler *ReminderScheduler) Stop() {
	if scheduler.cron == nil {
		return
	}
	<-scheduler.cron.Stop().Done()
}
