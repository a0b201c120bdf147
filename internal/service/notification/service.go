package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coiffly/salon-api/internal/email"
	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/pkg/logger"
)

// Service turns appointment lifecycle events into customer emails. It
// runs inside the notification worker, fed by the broker topics the
// outbox processor publishes to.
type Service struct {
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(emailSvc email.Service, l *logger.Logger) *Service {
	return &Service{emailSvc: emailSvc, logger: l}
}

// HandleEvent dispatches one broker message. Unknown event types and
// events without a customer email are logged and dropped; they must
// not wedge the queue.
func (s *Service) HandleEvent(ctx context.Context, eventType string, payload []byte) error {
	var event model.AppointmentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to unmarshal appointment event: %w", err)
	}
	if event.CustomerEmail == "" {
		s.logger.Warn("appointment event without customer email, skipping",
			"event_type", eventType, "appointment_id", event.AppointmentID)
		return nil
	}

	subject, body, ok := render(eventType, &event)
	if !ok {
		s.logger.Warn("unhandled event type, skipping", "event_type", eventType)
		return nil
	}

	if err := s.emailSvc.Send(ctx, event.CustomerEmail, subject, body); err != nil {
		return err
	}
	s.logger.Info("notification sent",
		"event_type", eventType, "appointment_id", event.AppointmentID)
	return nil
}

func render(eventType string, event *model.AppointmentEvent) (subject, body string, ok bool) {
	when := event.StartTime.Format("Monday, 2 January 2006 at 15:04")

	switch eventType {
	case model.EventAppointmentBooked:
		subject = "Your appointment request"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>We received your appointment request with %s on %s.</p>"+
				"<p>You will get a confirmation shortly.</p>",
			event.CustomerName, event.StaffName, when)
	case model.EventAppointmentConfirmed:
		subject = "Your appointment is confirmed"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your appointment with %s on %s is confirmed.</p>",
			event.CustomerName, event.StaffName, when)
	case model.EventAppointmentCancelled:
		subject = "Your appointment was cancelled"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your appointment on %s has been cancelled.</p>"+
				"<p>Feel free to book a new time online.</p>",
			event.CustomerName, when)
	default:
		return "", "", false
	}
	return subject, body, true
}
