package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/config"
	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
	"github.com/coiffly/salon-api/internal/scheduling"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/metrics"
)

// Service computes bookable slots. Slots are derived data: every query
// recomputes them from opening hours, working hours, absences and the
// live appointment book.
type Service struct {
	salonRepo        repository.SalonRepository
	serviceRepo      repository.ServiceRepository
	staffRepo        repository.StaffRepository
	workingHoursRepo repository.WorkingHoursRepository
	absenceRepo      repository.AbsenceRepository
	appointmentRepo  repository.AppointmentRepository
	booking          config.BookingConfig
	metrics          *metrics.Metrics
	now              func() time.Time
}

func NewService(
	salonRepo repository.SalonRepository,
	serviceRepo repository.ServiceRepository,
	staffRepo repository.StaffRepository,
	workingHoursRepo repository.WorkingHoursRepository,
	absenceRepo repository.AbsenceRepository,
	appointmentRepo repository.AppointmentRepository,
	booking config.BookingConfig,
	m *metrics.Metrics,
) *Service {
	return &Service{
		salonRepo:        salonRepo,
		serviceRepo:      serviceRepo,
		staffRepo:        staffRepo,
		workingHoursRepo: workingHoursRepo,
		absenceRepo:      absenceRepo,
		appointmentRepo:  appointmentRepo,
		booking:          booking,
		metrics:          m,
		now:              time.Now,
	}
}

// staffContext bundles everything needed to compute one staff member's
// slots across the requested range, fetched once per staff member.
type staffContext struct {
	staff        *model.StaffMember
	duration     int
	workingHours []model.WorkingHours
	absences     []model.Absence
	appointments []*model.Appointment
}

// FindSlots returns bookable slots per day for the requested services.
// With no staff preference the qualified staff members are fanned out
// and their slots merged, sorted by start time then staff name.
func (s *Service) FindSlots(ctx context.Context, req *model.AvailabilityRequest) ([]model.DayAvailability, error) {
	started := s.now()
	days, err := s.findSlots(ctx, req)

	if s.metrics != nil {
		s.metrics.SlotQueryLatency.Observe(time.Since(started).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.SlotQueries.WithLabelValues(status).Inc()
		if err == nil {
			total := 0
			for _, d := range days {
				total += len(d.Slots)
			}
			s.metrics.SlotsReturned.Observe(float64(total))
		}
	}
	return days, err
}

func (s *Service) findSlots(ctx context.Context, req *model.AvailabilityRequest) ([]model.DayAvailability, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, apperrors.Validation("at least one service is required", nil)
	}

	from := truncateToDay(req.DateFrom)
	to := truncateToDay(req.DateTo)
	if to.Before(from) {
		return nil, apperrors.Validation("date_to must not be before date_from", nil)
	}
	// The clock and the requested days must share a location, or the
	// same-day cutoff and horizon land on the wrong calendar day when
	// the server does not run in the request's zone.
	now := s.now().In(req.DateFrom.Location())
	horizon := truncateToDay(now).AddDate(0, 0, s.booking.HorizonDays)
	if to.After(horizon) {
		to = horizon
	}

	salon, err := s.salonRepo.Get(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}
	opening, err := s.salonRepo.ListOpeningHours(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	services, err := s.loadServices(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidateStaff(ctx, req)
	if err != nil {
		return nil, err
	}

	buf := scheduling.BufferPolicy{
		BeforeMinutes: salon.BufferBeforeMinutes,
		AfterMinutes:  salon.BufferAfterMinutes,
	}

	// Pad the appointment window by a day on both sides so buffered
	// appointments spilling over midnight still count.
	var contexts []staffContext
	for _, staff := range candidates {
		sc, err := s.loadStaffContext(ctx, staff, services, from.AddDate(0, 0, -1), to.AddDate(0, 0, 2))
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, sc)
	}

	var days []model.DayAvailability
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		notBefore := 0
		if sameDay(day, now) {
			notBefore = now.Hour()*60 + now.Minute()
		} else if day.Before(truncateToDay(now)) {
			continue
		}

		var slots []model.TimeSlot
		for _, sc := range contexts {
			available := scheduling.ResolveDaySchedule(day, opening, sc.workingHours, sc.absences)
			if len(available) == 0 {
				continue
			}
			busy := scheduling.BusyIntervals(sc.appointments, day, buf)
			for _, start := range scheduling.EnumerateSlots(available, busy, sc.duration, s.booking.StepMinutes, notBefore) {
				slots = append(slots, model.TimeSlot{
					Date:         day,
					StartMinutes: start,
					EndMinutes:   start + sc.duration,
					StaffID:      sc.staff.ID,
					StaffName:    sc.staff.Name,
				})
			}
		}

		sort.Slice(slots, func(i, j int) bool {
			if slots[i].StartMinutes != slots[j].StartMinutes {
				return slots[i].StartMinutes < slots[j].StartMinutes
			}
			return slots[i].StaffName < slots[j].StaffName
		})

		days = append(days, model.DayAvailability{
			Date:  day.Format("2006-01-02"),
			Slots: slots,
		})
	}
	return days, nil
}

// loadServices resolves and validates the requested catalog entries.
func (s *Service) loadServices(ctx context.Context, salonID uuid.UUID, ids []uuid.UUID) ([]*model.Service, error) {
	services, err := s.serviceRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	ordered := make([]*model.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, apperrors.NotFound("service", nil)
		}
		if svc.SalonID != salonID {
			return nil, apperrors.Validation("service does not belong to this salon", nil)
		}
		if !svc.IsActive() {
			return nil, apperrors.Validation(fmt.Sprintf("service %q is not bookable", svc.Name), nil)
		}
		ordered = append(ordered, svc)
	}
	return ordered, nil
}

func (s *Service) candidateStaff(ctx context.Context, req *model.AvailabilityRequest) ([]*model.StaffMember, error) {
	if req.StaffID != nil {
		staff, err := s.staffRepo.Get(ctx, *req.StaffID)
		if err != nil {
			return nil, err
		}
		if staff.SalonID != req.SalonID {
			return nil, apperrors.Validation("staff member does not belong to this salon", nil)
		}
		if !staff.IsActive() {
			return nil, apperrors.Validation("staff member is not active", nil)
		}
		if err := s.checkQualified(ctx, staff.ID, req.ServiceIDs); err != nil {
			return nil, err
		}
		return []*model.StaffMember{staff}, nil
	}

	qualified, err := s.staffRepo.ListQualified(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	// No preference means the customer picks from the public pool.
	candidates := qualified[:0]
	for _, staff := range qualified {
		if staff.AcceptsOnlineBookings {
			candidates = append(candidates, staff)
		}
	}
	return candidates, nil
}

func (s *Service) checkQualified(ctx context.Context, staffID uuid.UUID, serviceIDs []uuid.UUID) error {
	skills, err := s.staffRepo.ListSkills(ctx, staffID)
	if err != nil {
		return err
	}
	have := make(map[uuid.UUID]bool, len(skills))
	for _, sk := range skills {
		have[sk.ServiceID] = true
	}
	for _, id := range serviceIDs {
		if !have[id] {
			return apperrors.Validation("staff member is not qualified for the selected services", nil)
		}
	}
	return nil
}

func (s *Service) loadStaffContext(ctx context.Context, staff *model.StaffMember, services []*model.Service, from, to time.Time) (staffContext, error) {
	skills, err := s.staffRepo.ListSkills(ctx, staff.ID)
	if err != nil {
		return staffContext{}, err
	}
	working, err := s.workingHoursRepo.ListForStaff(ctx, staff.ID)
	if err != nil {
		return staffContext{}, err
	}
	absences, err := s.absenceRepo.ListForStaff(ctx, staff.ID, from, to)
	if err != nil {
		return staffContext{}, err
	}
	appointments, err := s.appointmentRepo.ListForStaff(ctx, staff.ID, from, to)
	if err != nil {
		return staffContext{}, err
	}
	return staffContext{
		staff:        staff,
		duration:     totalDuration(services, skills),
		workingHours: working,
		absences:     absences,
		appointments: appointments,
	}, nil
}

// totalDuration sums the service durations, honoring the staff
// member's per-service overrides.
func totalDuration(services []*model.Service, skills []model.StaffSkill) int {
	override := make(map[uuid.UUID]*int, len(skills))
	for i := range skills {
		override[skills[i].ServiceID] = skills[i].CustomDurationMinutes
	}
	total := 0
	for _, svc := range services {
		if d, ok := override[svc.ID]; ok && d != nil {
			total += *d
			continue
		}
		total += svc.DurationMinutes
	}
	return total
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
