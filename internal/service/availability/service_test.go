package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiffly/salon-api/internal/config"
	"github.com/coiffly/salon-api/internal/model"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

// Monday 2 March 2026.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fakeSalonRepo struct {
	salon   *model.Salon
	opening []model.OpeningHours
}

func (f *fakeSalonRepo) Create(context.Context, *model.Salon) error { return nil }
func (f *fakeSalonRepo) Get(context.Context, uuid.UUID) (*model.Salon, error) {
	return f.salon, nil
}
func (f *fakeSalonRepo) Update(context.Context, *model.Salon) error { return nil }
func (f *fakeSalonRepo) ListOpeningHours(context.Context, uuid.UUID) ([]model.OpeningHours, error) {
	return f.opening, nil
}
func (f *fakeSalonRepo) UpsertOpeningHours(context.Context, *model.OpeningHours) error { return nil }
func (f *fakeSalonRepo) DeleteOpeningHours(context.Context, uuid.UUID, int) error      { return nil }

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (f *fakeServiceRepo) Create(context.Context, *model.Service) error { return nil }
func (f *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return svc, nil
}
func (f *fakeServiceRepo) GetMany(_ context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	var out []*model.Service
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}
func (f *fakeServiceRepo) Update(context.Context, *model.Service) error { return nil }
func (f *fakeServiceRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (f *fakeServiceRepo) List(context.Context, uuid.UUID, bool) ([]*model.Service, error) {
	return nil, nil
}

type fakeStaffRepo struct {
	members map[uuid.UUID]*model.StaffMember
	skills  map[uuid.UUID][]model.StaffSkill
}

func (f *fakeStaffRepo) Create(context.Context, *model.StaffMember) error { return nil }
func (f *fakeStaffRepo) Get(_ context.Context, id uuid.UUID) (*model.StaffMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, apperrors.NotFound("staff member", nil)
	}
	return m, nil
}
func (f *fakeStaffRepo) GetByEmail(context.Context, string) (*model.StaffMember, error) {
	return nil, apperrors.NotFound("staff member", nil)
}
func (f *fakeStaffRepo) Update(context.Context, *model.StaffMember) error { return nil }
func (f *fakeStaffRepo) Delete(context.Context, uuid.UUID) error          { return nil }
func (f *fakeStaffRepo) List(context.Context, uuid.UUID) ([]*model.StaffMember, error) {
	return nil, nil
}
func (f *fakeStaffRepo) ListSkills(_ context.Context, staffID uuid.UUID) ([]model.StaffSkill, error) {
	return f.skills[staffID], nil
}
func (f *fakeStaffRepo) UpsertSkill(context.Context, *model.StaffSkill) error    { return nil }
func (f *fakeStaffRepo) DeleteSkill(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakeStaffRepo) ListQualified(_ context.Context, salonID uuid.UUID, serviceIDs []uuid.UUID) ([]*model.StaffMember, error) {
	var out []*model.StaffMember
	for id, m := range f.members {
		if m.SalonID != salonID || !m.IsActive() {
			continue
		}
		have := make(map[uuid.UUID]bool)
		for _, sk := range f.skills[id] {
			have[sk.ServiceID] = true
		}
		qualified := true
		for _, sid := range serviceIDs {
			if !have[sid] {
				qualified = false
				break
			}
		}
		if qualified {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeWorkingHoursRepo struct {
	hours map[uuid.UUID][]model.WorkingHours
}

func (f *fakeWorkingHoursRepo) Create(context.Context, *model.WorkingHours) error { return nil }
func (f *fakeWorkingHoursRepo) Delete(context.Context, uuid.UUID) error           { return nil }
func (f *fakeWorkingHoursRepo) ListForStaff(_ context.Context, staffID uuid.UUID) ([]model.WorkingHours, error) {
	return f.hours[staffID], nil
}

type fakeAbsenceRepo struct {
	absences map[uuid.UUID][]model.Absence
}

func (f *fakeAbsenceRepo) Create(context.Context, *model.Absence) error { return nil }
func (f *fakeAbsenceRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (f *fakeAbsenceRepo) ListForStaff(_ context.Context, staffID uuid.UUID, _, _ time.Time) ([]model.Absence, error) {
	return f.absences[staffID], nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID][]*model.Appointment
}

func (f *fakeAppointmentRepo) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}
func (f *fakeAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListForStaff(_ context.Context, staffID uuid.UUID, _, _ time.Time) ([]*model.Appointment, error) {
	return f.appointments[staffID], nil
}
func (f *fakeAppointmentRepo) CreateIfFree(context.Context, *model.Appointment, int, int, *model.OutboxEvent) error {
	return nil
}
func (f *fakeAppointmentRepo) UpdateStatus(context.Context, uuid.UUID, model.AppointmentStatus, *string, *model.OutboxEvent) error {
	return nil
}
func (f *fakeAppointmentRepo) UpdateNotes(context.Context, uuid.UUID, *string, *string) error {
	return nil
}
func (f *fakeAppointmentRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fixture struct {
	salonID   uuid.UUID
	serviceID uuid.UUID
	staffID   uuid.UUID

	salons       *fakeSalonRepo
	services     *fakeServiceRepo
	staff        *fakeStaffRepo
	workingHours *fakeWorkingHoursRepo
	absences     *fakeAbsenceRepo
	appointments *fakeAppointmentRepo

	svc *Service
}

// newFixture sets up one salon open Mon-Sat 09:00-18:00, one stylist
// working Mondays 09:00-17:00 and a 45 minute haircut.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		salonID:   uuid.New(),
		serviceID: uuid.New(),
		staffID:   uuid.New(),
	}

	f.salons = &fakeSalonRepo{
		salon: &model.Salon{
			Base:   model.Base{ID: f.salonID},
			Name:   "Hairport",
			Status: "active",
		},
	}
	for day := 1; day <= 6; day++ {
		f.salons.opening = append(f.salons.opening, model.OpeningHours{
			SalonID:      f.salonID,
			DayOfWeek:    day,
			OpenMinutes:  9 * 60,
			CloseMinutes: 18 * 60,
			IsActive:     true,
		})
	}

	f.services = &fakeServiceRepo{services: map[uuid.UUID]*model.Service{
		f.serviceID: {
			Base:            model.Base{ID: f.serviceID},
			SalonID:         f.salonID,
			Name:            "Haircut",
			DurationMinutes: 45,
			Status:          "active",
		},
	}}

	f.staff = &fakeStaffRepo{
		members: map[uuid.UUID]*model.StaffMember{
			f.staffID: {
				Base:                  model.Base{ID: f.staffID},
				SalonID:               f.salonID,
				Name:                  "Dana",
				Status:                "active",
				AcceptsOnlineBookings: true,
			},
		},
		skills: map[uuid.UUID][]model.StaffSkill{
			f.staffID: {{StaffID: f.staffID, ServiceID: f.serviceID}},
		},
	}

	f.workingHours = &fakeWorkingHoursRepo{hours: map[uuid.UUID][]model.WorkingHours{
		f.staffID: {{
			StaffID:      f.staffID,
			DayOfWeek:    1, // Monday
			StartMinutes: 9 * 60,
			EndMinutes:   17 * 60,
		}},
	}}
	f.absences = &fakeAbsenceRepo{absences: map[uuid.UUID][]model.Absence{}}
	f.appointments = &fakeAppointmentRepo{appointments: map[uuid.UUID][]*model.Appointment{}}

	f.svc = NewService(
		f.salons, f.services, f.staff, f.workingHours, f.absences, f.appointments,
		config.BookingConfig{StepMinutes: 15, HorizonDays: 60},
		nil,
	)
	// Fix "now" well before the test dates so no slots are cut off.
	f.svc.now = func() time.Time { return monday.Add(-24 * time.Hour) }
	return f
}

func (f *fixture) request() *model.AvailabilityRequest {
	return &model.AvailabilityRequest{
		SalonID:    f.salonID,
		ServiceIDs: []uuid.UUID{f.serviceID},
		DateFrom:   monday,
		DateTo:     monday,
	}
}

func TestFindSlotsFullFreeDay(t *testing.T) {
	f := newFixture(t)

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-02", days[0].Date)

	slots := days[0].Slots
	require.NotEmpty(t, slots)
	// 09:00 through 16:15, every 15 minutes: last start leaves exactly
	// 45 minutes before the 17:00 end of the shift.
	assert.Equal(t, 9*60, slots[0].StartMinutes)
	assert.Equal(t, 16*60+15, slots[len(slots)-1].StartMinutes)
	assert.Len(t, slots, 30)
	for _, s := range slots {
		assert.Equal(t, s.StartMinutes+45, s.EndMinutes)
		assert.Equal(t, f.staffID, s.StaffID)
	}
}

func TestFindSlotsBusyAppointmentBlocks(t *testing.T) {
	f := newFixture(t)
	f.appointments.appointments[f.staffID] = []*model.Appointment{{
		StaffID:   f.staffID,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(11 * time.Hour),
		Status:    model.AppointmentStatusConfirmed,
	}}

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	for _, s := range days[0].Slots {
		overlap := s.StartMinutes < 11*60 && s.EndMinutes > 10*60
		assert.False(t, overlap, "slot %d-%d overlaps the 10:00-11:00 appointment", s.StartMinutes, s.EndMinutes)
	}
}

func TestFindSlotsCancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.appointments.appointments[f.staffID] = []*model.Appointment{{
		StaffID:   f.staffID,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(11 * time.Hour),
		Status:    model.AppointmentStatusCancelled,
	}}

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	found := false
	for _, s := range days[0].Slots {
		if s.StartMinutes == 10*60 {
			found = true
		}
	}
	assert.True(t, found, "the 10:00 slot should be free again after cancellation")
}

func TestFindSlotsBuffersExpandAppointments(t *testing.T) {
	f := newFixture(t)
	f.salons.salon.BufferAfterMinutes = 15
	f.appointments.appointments[f.staffID] = []*model.Appointment{{
		StaffID:   f.staffID,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(11 * time.Hour),
		Status:    model.AppointmentStatusConfirmed,
	}}

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	for _, s := range days[0].Slots {
		assert.NotEqual(t, 11*60, s.StartMinutes, "11:00 falls inside the cleanup buffer")
	}
}

func TestFindSlotsAbsenceClearsDay(t *testing.T) {
	f := newFixture(t)
	f.absences.absences[f.staffID] = []model.Absence{{
		StaffID:   f.staffID,
		StartDate: monday,
		EndDate:   monday,
	}}

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Slots)
}

func TestFindSlotsSkillOverrideChangesDuration(t *testing.T) {
	f := newFixture(t)
	override := 60
	f.staff.skills[f.staffID] = []model.StaffSkill{{
		StaffID:               f.staffID,
		ServiceID:             f.serviceID,
		CustomDurationMinutes: &override,
	}}

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	slots := days[0].Slots
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, s.StartMinutes+60, s.EndMinutes)
	}
	assert.Equal(t, 16*60, slots[len(slots)-1].StartMinutes)
}

func TestFindSlotsNoPreferenceMergesStaff(t *testing.T) {
	f := newFixture(t)

	secondID := uuid.New()
	f.staff.members[secondID] = &model.StaffMember{
		Base:                  model.Base{ID: secondID},
		SalonID:               f.salonID,
		Name:                  "Alex",
		Status:                "active",
		AcceptsOnlineBookings: true,
	}
	f.staff.skills[secondID] = []model.StaffSkill{{StaffID: secondID, ServiceID: f.serviceID}}
	f.workingHours.hours[secondID] = []model.WorkingHours{{
		StaffID:      secondID,
		DayOfWeek:    1,
		StartMinutes: 9 * 60,
		EndMinutes:   17 * 60,
	}}

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	slots := days[0].Slots
	assert.Len(t, slots, 60)
	// Ties on start time sort by staff name.
	assert.Equal(t, "Alex", slots[0].StaffName)
	assert.Equal(t, "Dana", slots[1].StaffName)
}

func TestFindSlotsExcludesNonOnlineStaffWithoutPreference(t *testing.T) {
	f := newFixture(t)
	f.staff.members[f.staffID].AcceptsOnlineBookings = false

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, days[0].Slots)

	// An explicit staff choice still works, for phone and walk-in
	// bookings taken by the front desk.
	req := f.request()
	req.StaffID = &f.staffID
	days, err = f.svc.FindSlots(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, days[0].Slots)
}

func TestFindSlotsInactiveServiceRejected(t *testing.T) {
	f := newFixture(t)
	f.services.services[f.serviceID].Status = "archived"

	_, err := f.svc.FindSlots(context.Background(), f.request())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestFindSlotsUnqualifiedStaffRejected(t *testing.T) {
	f := newFixture(t)
	f.staff.skills[f.staffID] = nil

	req := f.request()
	req.StaffID = &f.staffID
	_, err := f.svc.FindSlots(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestFindSlotsSameDayExcludesPastTimes(t *testing.T) {
	f := newFixture(t)
	// It is 12:05 on the requested Monday.
	f.svc.now = func() time.Time { return monday.Add(12*time.Hour + 5*time.Minute) }

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	slots := days[0].Slots
	require.NotEmpty(t, slots)
	assert.GreaterOrEqual(t, slots[0].StartMinutes, 12*60+5)
}

func TestFindSlotsSameDayCutoffIgnoresServerZone(t *testing.T) {
	f := newFixture(t)
	// The server clock sits one hour east of the salon: the same
	// instant reads 13:05 there but is 12:05 on the requested Monday.
	east := time.FixedZone("UTC+1", 3600)
	f.svc.now = func() time.Time { return monday.Add(12*time.Hour + 5*time.Minute).In(east) }

	days, err := f.svc.FindSlots(context.Background(), f.request())
	require.NoError(t, err)

	slots := days[0].Slots
	require.NotEmpty(t, slots)
	assert.Equal(t, 12*60+15, slots[0].StartMinutes)
}

func TestFindSlotsClosedDayHasNoSlots(t *testing.T) {
	f := newFixture(t)
	sunday := monday.AddDate(0, 0, 6)

	req := f.request()
	req.DateFrom = sunday
	req.DateTo = sunday

	days, err := f.svc.FindSlots(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Slots)
}
