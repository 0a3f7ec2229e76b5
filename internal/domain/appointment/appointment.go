package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status transitions:
//
//	scheduled → completed (only once the visit date has arrived)
//	scheduled → cancelled
//
// completed is never allowed to move to cancelled. A cancelled visit is
// not explicitly barred from being completed later; that edge is kept as
// the clinic's historical behavior.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	Date time.Time `gorm:"column:appointment_date;type:date;not null;index"`
	Time TimeOfDay `gorm:"column:appointment_time;type:time;not null"`

	Status    Status  `gorm:"column:status;type:varchar(20);not null;default:'scheduled';index"`
	Diagnosis *string `gorm:"column:diagnosis;type:text"`
}

func (Appointment) TableName() string {
	return "clinic.appointments"
}

func (a *Appointment) IsScheduled() bool { return a.Status == StatusScheduled }

// DateOnly strips the clock from an instant so calendar dates compare
// without time-of-day noise.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type CreateCommand struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      time.Time
	Time      TimeOfDay
}

// Patch is a typed partial update. Nil fields are left untouched; the
// whole patch is validated before any field is applied, so a rejected
// patch never half-mutates the record.
type Patch struct {
	Date      *time.Time
	Time      *TimeOfDay
	Diagnosis *string
	Status    *Status
}

func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Time == nil && p.Diagnosis == nil && p.Status == nil
}

// Apply validates the patch against the lifecycle rules and, on success,
// applies every supplied field. The rules, in order:
//
//  1. a completed visit cannot be cancelled;
//  2. a visit cannot be completed before its date arrives (today is the
//     caller's calendar date);
//  3. a diagnosis cannot be attached when the resulting status (after
//     any status change carried by the same patch) is cancelled.
//
// Cancellation clears any stored diagnosis so a cancelled visit never
// carries one.
func (a *Appointment) Apply(p Patch, today time.Time) error {
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.Status != nil && *p.Status == StatusCancelled && a.Status == StatusCompleted {
		return ErrCancelCompleted
	}
	if p.Status != nil && *p.Status == StatusCompleted {
		if DateOnly(a.Date).After(DateOnly(today)) {
			return ErrCompleteFutureVisit
		}
	}

	resulting := a.Status
	if p.Status != nil {
		resulting = *p.Status
	}
	if p.Diagnosis != nil && resulting == StatusCancelled {
		return ErrDiagnosisOnCancelled
	}

	if p.Date != nil {
		a.Date = DateOnly(*p.Date)
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Diagnosis != nil {
		a.Diagnosis = p.Diagnosis
	}
	if p.Status != nil {
		a.Status = *p.Status
		if a.Status == StatusCancelled {
			a.Diagnosis = nil
		}
	}
	return nil
}
