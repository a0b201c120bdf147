package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/metrics"
)

// SlotFinder recomputes bookable slots; the availability service is
// the production implementation.
type SlotFinder interface {
	FindSlots(ctx context.Context, req *model.AvailabilityRequest) ([]model.DayAvailability, error)
}

type Service struct {
	repo            repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	staffRepo       repository.StaffRepository
	salonRepo       repository.SalonRepository
	serviceRepo     repository.ServiceRepository
	availabilitySvc SlotFinder
	metrics         *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	salonRepo repository.SalonRepository,
	serviceRepo repository.ServiceRepository,
	availabilitySvc SlotFinder,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:            repo,
		customerRepo:    customerRepo,
		staffRepo:       staffRepo,
		salonRepo:       salonRepo,
		serviceRepo:     serviceRepo,
		availabilitySvc: availabilitySvc,
		metrics:         m,
	}
}

// Commit books a previously displayed slot. The slot is recomputed
// against the live appointment book first, then inserted under a
// per-staff lock so two concurrent commits for the same slot cannot
// both win.
func (s *Service) Commit(ctx context.Context, req *model.CommitAppointmentRequest) (*model.Appointment, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.Validation("date must be formatted as 2006-01-02", err)
	}

	customer, err := s.customerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.SalonID != req.SalonID {
		return nil, apperrors.Validation("customer does not belong to this salon", nil)
	}

	salon, err := s.salonRepo.Get(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}

	slot, err := s.findSlot(ctx, req, day)
	if err != nil {
		if s.metrics != nil && apperrors.IsCode(err, apperrors.ErrConflict) {
			s.metrics.BookingConflicts.Inc()
			s.metrics.BookingCommits.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	snapshots, serviceNames, err := s.snapshotServices(ctx, req.StaffID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	channel := req.BookedVia
	if channel == "" {
		channel = model.ChannelOnline
	}

	apt := &model.Appointment{
		SalonID:       req.SalonID,
		CustomerID:    req.CustomerID,
		StaffID:       req.StaffID,
		StartTime:     slot.StartsAt(),
		EndTime:       slot.EndsAt(),
		Status:        initialStatus(channel, salon.AutoConfirm),
		CustomerNotes: req.CustomerNotes,
		BookedVia:     channel,
		Services:      snapshots,
	}

	event, err := s.buildEvent(model.EventAppointmentBooked, apt, customer, slot.StaffName, serviceNames)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateIfFree(ctx, apt, salon.BufferBeforeMinutes, salon.BufferAfterMinutes, event); err != nil {
		if s.metrics != nil {
			if apperrors.IsCode(err, apperrors.ErrConflict) {
				s.metrics.BookingConflicts.Inc()
				s.metrics.BookingCommits.WithLabelValues("conflict").Inc()
			} else {
				s.metrics.BookingCommits.WithLabelValues("error").Inc()
			}
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingCommits.WithLabelValues("ok").Inc()
	}
	return apt, nil
}

// findSlot recomputes the staff member's slots for the requested day
// and locates the one being committed.
func (s *Service) findSlot(ctx context.Context, req *model.CommitAppointmentRequest, day time.Time) (*model.TimeSlot, error) {
	days, err := s.availabilitySvc.FindSlots(ctx, &model.AvailabilityRequest{
		SalonID:    req.SalonID,
		ServiceIDs: req.ServiceIDs,
		StaffID:    &req.StaffID,
		DateFrom:   day,
		DateTo:     day,
	})
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		for i := range d.Slots {
			if d.Slots[i].StartMinutes == req.StartMinutes {
				return &d.Slots[i], nil
			}
		}
	}
	return nil, apperrors.Conflict("requested slot is not available", nil)
}

// snapshotServices freezes name, price, duration and tax of the booked
// services. Later catalog edits never change past bookings. The
// snapshot duration is the booked staff member's effective duration,
// skill overrides included, so the appointment window always equals
// the sum of its service snapshots.
func (s *Service) snapshotServices(ctx context.Context, staffID uuid.UUID, ids []uuid.UUID) ([]*model.AppointmentService, []string, error) {
	services, err := s.serviceRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*model.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	skills, err := s.staffRepo.ListSkills(ctx, staffID)
	if err != nil {
		return nil, nil, err
	}
	override := make(map[uuid.UUID]*int, len(skills))
	for i := range skills {
		override[skills[i].ServiceID] = skills[i].CustomDurationMinutes
	}

	snapshots := make([]*model.AppointmentService, 0, len(ids))
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, nil, apperrors.NotFound("service", nil)
		}
		duration := svc.DurationMinutes
		if d, ok := override[svc.ID]; ok && d != nil {
			duration = *d
		}
		snapshots = append(snapshots, &model.AppointmentService{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			PriceCHF:        svc.PriceCHF,
			DurationMinutes: duration,
			TaxRatePercent:  svc.TaxRatePercent,
		})
		names = append(names, svc.Name)
	}
	return snapshots, names, nil
}

func initialStatus(channel string, autoConfirm bool) model.AppointmentStatus {
	if channel == model.ChannelOnline && !autoConfirm {
		return model.AppointmentStatusRequested
	}
	return model.AppointmentStatusConfirmed
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", filters.Status), nil)
	}
	return s.repo.List(ctx, filters)
}

// TransitionStatus moves an appointment through its lifecycle. Only
// the next forward step or a jump to cancelled/no_show is allowed;
// completed, cancelled and no_show admit no further changes.
func (s *Service) TransitionStatus(ctx context.Context, id uuid.UUID, req *model.TransitionStatusRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.Status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", req.Status), nil)
	}
	if !apt.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot transition from %s to %s", apt.Status, req.Status))
	}

	var reason *string
	if req.Status == model.AppointmentStatusCancelled || req.Status == model.AppointmentStatusNoShow {
		reason = req.Reason
	}

	event, err := s.transitionEvent(ctx, apt, req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, reason, event); err != nil {
		return nil, err
	}

	apt.Status = req.Status
	apt.CancelReason = reason
	return apt, nil
}

// Cancel is the common shortcut for a cancellation with a reason.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason *string) (*model.Appointment, error) {
	return s.TransitionStatus(ctx, id, &model.TransitionStatusRequest{
		Status: model.AppointmentStatusCancelled,
		Reason: reason,
	})
}

func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, customerNotes, staffNotes *string) error {
	return s.repo.UpdateNotes(ctx, id, customerNotes, staffNotes)
}

// Delete removes an appointment permanently. Only cancelled
// appointments may be deleted; everything else stays for the books.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.Conflict("only cancelled appointments can be deleted", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) transitionEvent(ctx context.Context, apt *model.Appointment, target model.AppointmentStatus) (*model.OutboxEvent, error) {
	customer, err := s.customerRepo.Get(ctx, apt.CustomerID)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.Get(ctx, apt.StaffID)
	if err != nil {
		return nil, err
	}

	eventType := model.EventAppointmentTransition
	switch target {
	case model.AppointmentStatusConfirmed:
		eventType = model.EventAppointmentConfirmed
	case model.AppointmentStatusCancelled:
		eventType = model.EventAppointmentCancelled
	}

	names := make([]string, 0, len(apt.Services))
	for _, svc := range apt.Services {
		names = append(names, svc.Name)
	}

	updated := *apt
	updated.Status = target
	return s.buildEvent(eventType, &updated, customer, staff.Name, names)
}

func (s *Service) buildEvent(eventType string, apt *model.Appointment, customer *model.Customer, staffName string, serviceNames []string) (*model.OutboxEvent, error) {
	payload, err := json.Marshal(&model.AppointmentEvent{
		AppointmentID: apt.ID,
		SalonID:       apt.SalonID,
		CustomerID:    apt.CustomerID,
		CustomerEmail: customer.Email,
		CustomerName:  customer.Name,
		StaffName:     staffName,
		StartTime:     apt.StartTime,
		EndTime:       apt.EndTime,
		Status:        apt.Status,
		ServiceNames:  serviceNames,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment event: %w", err)
	}
	return &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}, nil
}
