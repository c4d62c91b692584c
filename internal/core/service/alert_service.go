package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

// AlertService matches active job alerts against published jobs and hands
// matching digests to the dispatcher for asynchronous delivery.
type AlertService struct {
	alerts     ports.AlertRepository
	jobs       ports.JobRepository
	dispatcher ports.AlertDispatcher
	logger     zerolog.Logger
}

func NewAlertService(alerts ports.AlertRepository, jobs ports.JobRepository, dispatcher ports.AlertDispatcher, logger zerolog.Logger) *AlertService {
	return &AlertService{alerts: alerts, jobs: jobs, dispatcher: dispatcher, logger: logger}
}

// CreateAlert saves a job seeker's alert.
func (s *AlertService) CreateAlert(ctx context.Context, actorID, actorRole, email string, criteria domain.AlertCriteria, frequency string) (*domain.Alert, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if actorRole != domain.RoleJobSeeker {
		return nil, domain.ErrPermissionDenied
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}
	if frequency != domain.AlertFrequencyDaily && frequency != domain.AlertFrequencyWeekly {
		return nil, fmt.Errorf("%w: frequency must be daily or weekly", domain.ErrInvalidArgument)
	}

	alert := &domain.Alert{
		UserID:    actorID,
		Email:     email,
		Criteria:  criteria,
		Frequency: frequency,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	s.logger.Info().Str("alert_id", alert.ID).Str("user_id", actorID).Msg("job alert created")
	return alert, nil
}

// SendDueAlerts walks active alerts, skips those inside their frequency
// window, and enqueues a digest email for each alert with matching jobs.
// LastSentAt is stamped only when something was actually enqueued, so quiet
// periods do not consume the window.
func (s *AlertService) SendDueAlerts(ctx context.Context, now time.Time) error {
	alerts, err := s.alerts.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	jobs, err := s.jobs.ListPublished(ctx)
	if err != nil {
		return err
	}

	sent := 0
	for _, alert := range alerts {
		if !alert.Due(now) {
			continue
		}

		var matches []*domain.Job
		for _, job := range jobs {
			if alert.Criteria.Matches(job) {
				matches = append(matches, job)
			}
		}
		if len(matches) == 0 {
			continue
		}

		s.dispatcher.Enqueue(ports.AlertDelivery{
			AccountID: alert.UserID,
			Email:     alert.Email,
			Subject:   fmt.Sprintf("%d new jobs matching your alert", len(matches)),
			Body:      alertBody(matches),
		})
		if err := s.alerts.StampSent(ctx, alert.ID, now); err != nil {
			s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("failed to stamp alert as sent")
		}
		sent++
	}

	s.logger.Info().Int("alerts", len(alerts)).Int("enqueued", sent).Msg("job alert run completed")
	return nil
}

func alertBody(jobs []*domain.Job) string {
	var b strings.Builder
	b.WriteString("Jobs matching your alert:\n\n")
	for _, j := range jobs {
		fmt.Fprintf(&b, "- %s at %s", j.Title, j.CompanyName)
		if j.Location != "" {
			fmt.Fprintf(&b, " (%s)", j.Location)
		}
		b.WriteString("\n")
	}
	return b.String()
}
