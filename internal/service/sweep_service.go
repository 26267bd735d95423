package service

import (
	"context"
	"time"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/mailer"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/robfig/cron/v3"
)

// ISweepService periodically scans for reminders that have come due and
// dispatches them: email first, then the notified flag, then a bus event.
// A reminder is only marked notified after its email went out, so a crashed
// sweep redelivers rather than drops (at-least-once).
type ISweepService interface {
	Start() error
	Stop()
	RunOnce(ctx context.Context) (int, error)
}

type sweepService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	schedule       string
	batchSize      int
	cron           *cron.Cron
	now            func() time.Time
}

func NewSweepService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	schedule string,
	batchSize int,
) ISweepService {
	if schedule == "" {
		schedule = "@every 1m"
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &sweepService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
		schedule:       schedule,
		batchSize:      batchSize,
		cron:           cron.New(),
		now:            time.Now,
	}
}

func (s *sweepService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		n, err := s.RunOnce(ctx)
		if err != nil {
			s.logger.Error("Sweep", "Sweep run failed", map[string]interface{}{"error": err.Error()})
			return
		}
		if n > 0 {
			s.logger.Info("Sweep", "Dispatched due reminders", map[string]interface{}{"count": n})
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *sweepService) Stop() {
	s.cron.Stop()
}

// RunOnce processes at most one batch of due reminders and returns how many
// were dispatched. Rows that fail to dispatch stay pending and are retried
// on the next tick, as is any remainder beyond the batch size; the per-tick
// bound keeps one sweep from doing unbounded work.
func (s *sweepService) RunOnce(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cutoff := s.now()

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ReminderDueBefore{Cutoff: cutoff},
		specification.ReminderPending{},
		specification.OrderBy{Field: "reminder_due_at", Desc: false},
		specification.Pagination{Limit: s.batchSize},
	)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, note := range notes {
		if note.Reminder == nil || !note.Reminder.Due(cutoff) {
			continue
		}

		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: note.UserId})
		if err != nil || user == nil {
			s.logger.Warn("Sweep", "Skipping reminder, owner lookup failed", map[string]interface{}{
				"note_id": note.Id.String(),
			})
			continue
		}

		if err := s.emailService.SendReminder(user.Email, note.Title, note.Reminder.DueAt); err != nil {
			s.logger.Error("Sweep", "Reminder email failed", map[string]interface{}{
				"note_id": note.Id.String(),
				"error":   err.Error(),
			})
			continue
		}

		if err := uow.NoteRepository().MarkReminderNotified(ctx, note.Id); err != nil {
			s.logger.Error("Sweep", "Failed to mark reminder notified", map[string]interface{}{
				"note_id": note.Id.String(),
				"error":   err.Error(),
			})
			continue
		}

		if s.eventPublisher != nil {
			evt := events.NewReminderDueEvent(note.Id, note.UserId, note.Title, note.Reminder.DueAt)
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.logger.Warn("Sweep", "Failed to publish REMINDER_DUE event", map[string]interface{}{
					"note_id": note.Id.String(),
					"error":   err.Error(),
				})
			}
		}

		dispatched++
	}

	return dispatched, nil
}
