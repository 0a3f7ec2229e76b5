package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListQuery struct {
	Page     int
	PageSize int
}

type Repository interface {
	// Create persists a new appointment. Returns ErrDoctorSlotTaken if
	// the scheduled-slot uniqueness guard fires at commit time.
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update writes the full record back.
	Update(ctx context.Context, a *Appointment) error

	// Delete removes the row. Returns ErrAppointmentNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q ListQuery) ([]*Appointment, error)

	// ScheduledOnDay returns the doctor's scheduled visits for one date,
	// time ascending. Feeds the slot validator.
	ScheduledOnDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error)

	// PatientBusyAt probes for a scheduled visit of the patient at the
	// exact date and time, regardless of doctor.
	PatientBusyAt(ctx context.Context, patientID uuid.UUID, date time.Time, t TimeOfDay) (bool, error)

	// DaySchedule returns every visit of the doctor on the date, any
	// status, time ascending. Unknown doctors yield an empty slice.
	DaySchedule(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error)

	// ListForPatient returns the patient's history, date descending.
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)

	// ListForDoctor returns the doctor's visits, date descending then
	// time ascending, optionally narrowed to one date.
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*Appointment, error)

	// CountScheduledForDoctor counts scheduled visits across all dates.
	// Drives the doctor deletion guard.
	CountScheduledForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error)

	// CountForDoctor counts the doctor's visits of any status.
	CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error)

	// CountForPatient counts the patient's visits of any status.
	CountForPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}
