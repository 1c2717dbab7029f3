package service

import (
	"context"
	"fmt"
	"time"

	"medivuno-api/config"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderService periodically scans for upcoming appointments and emits one
// reminder notification per appointment to the patient.
type ReminderService struct {
	log              *logrus.Logger
	cfg              config.ReminderConfig
	appointmentRepo  repository.AppointmentRepository
	notificationRepo repository.NotificationRepository
	notifier         *NotificationService
	cron             *cron.Cron
}

func NewReminderService(
	log *logrus.Logger,
	cfg config.ReminderConfig,
	appointmentRepo repository.AppointmentRepository,
	notificationRepo repository.NotificationRepository,
	notifier *NotificationService,
) *ReminderService {
	return &ReminderService{
		log:              log,
		cfg:              cfg,
		appointmentRepo:  appointmentRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		cron:             cron.New(),
	}
}

// Start schedules the reminder job. Call Stop during shutdown.
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.log.Warnf("Reminder run failed: %+v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Reminder job scheduled: %s", s.cfg.CronSpec)
	return nil
}

func (s *ReminderService) Stop() {
	s.cron.Stop()
}

// Run emits reminders for appointments starting within the configured
// window. Appointments that already have a reminder are skipped.
func (s *ReminderService) Run(ctx context.Context) error {
	now := time.Now().UTC()
	appointments, err := s.appointmentRepo.FindStartingBetween(ctx, now, now.Add(s.cfg.Window))
	if err != nil {
		return err
	}

	for _, appointment := range appointments {
		sent, err := s.notificationRepo.HasReminderFor(ctx, appointment.ID)
		if err != nil {
			s.log.Warnf("Failed to check reminder for appointment %s: %+v", appointment.ID, err)
			continue
		}
		if sent {
			continue
		}

		message := fmt.Sprintf(
			"Reminder: you have an appointment on %s.",
			appointment.StartTime.Format("Monday, 2 January at 15:04"),
		)
		_, err = s.notifier.Notify(ctx,
			appointment.PatientID,
			entity.NotificationKindReminder,
			entity.CategoryAppointment,
			"Appointment Reminder",
			message,
			entity.PriorityHigh,
			entity.JSON{
				"appointment_id": appointment.ID.String(),
				"reminder":       "true",
			},
		)
		if err != nil {
			s.log.Warnf("Failed to send reminder for appointment %s: %+v", appointment.ID, err)
		}
	}

	return nil
}
