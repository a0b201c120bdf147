package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/coiffly/salon-api/internal/repository"
)

type salonRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

type staffRepository struct {
	db *sqlx.DB
}

type workingHoursRepository struct {
	db *sqlx.DB
}

type absenceRepository struct {
	db *sqlx.DB
}

type customerRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewSalonRepository(db *sqlx.DB) repository.SalonRepository {
	return &salonRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func NewWorkingHoursRepository(db *sqlx.DB) repository.WorkingHoursRepository {
	return &workingHoursRepository{db: db}
}

func NewAbsenceRepository(db *sqlx.DB) repository.AbsenceRepository {
	return &absenceRepository{db: db}
}

func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
