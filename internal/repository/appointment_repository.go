package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	a.Date = appointment.DateOnly(a.Date)
	if err := handle(ctx, r.db).Create(a).Error; err != nil {
		return translateSlotConflict(err)
	}
	return nil
}

// translateSlotConflict maps a unique-index violation from the partial
// slot indexes back to the matching validation error, so a booking that
// loses the commit race reports the same conflict it would have hit a
// moment later in validation.
func translateSlotConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_appointments_patient_slot" {
			return appointment.ErrPatientSlotTaken
		}
		return appointment.ErrDoctorSlotTaken
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appointment.ErrDoctorSlotTaken
	}
	return err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := handle(ctx, r.db).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	// Updates with a map writes nil diagnosis through; struct-based
	// Updates would skip the zero value and leave a stale diagnosis.
	err := handle(ctx, r.db).Model(a).
		Select("appointment_date", "appointment_time", "status", "diagnosis").
		Updates(map[string]any{
			"appointment_date": appointment.DateOnly(a.Date),
			"appointment_time": a.Time,
			"status":           a.Status,
			"diagnosis":        a.Diagnosis,
		}).Error
	if err != nil {
		return translateSlotConflict(err)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := handle(ctx, r.db).Delete(&appointment.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, q appointment.ListQuery) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := handle(ctx, r.db).
		Order("appointment_date DESC, appointment_time ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) ScheduledOnDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := handle(ctx, r.db).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?",
			doctorID, appointment.DateOnly(date), appointment.StatusScheduled).
		Order("appointment_time ASC").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) PatientBusyAt(ctx context.Context, patientID uuid.UUID, date time.Time, t appointment.TimeOfDay) (bool, error) {
	var count int64
	err := handle(ctx, r.db).Model(&appointment.Appointment{}).
		Where("patient_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			patientID, appointment.DateOnly(date), t, appointment.StatusScheduled).
		Count(&count).Error
	return count > 0, err
}

func (r *AppointmentRepository) DaySchedule(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := handle(ctx, r.db).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, appointment.DateOnly(date)).
		Order("appointment_time ASC").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := handle(ctx, r.db).
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*appointment.Appointment, error) {
	q := handle(ctx, r.db).Where("doctor_id = ?", doctorID)
	if date != nil {
		q = q.Where("appointment_date = ?", appointment.DateOnly(*date))
	}
	var out []*appointment.Appointment
	err := q.Order("appointment_date DESC, appointment_time ASC").Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) CountScheduledForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := handle(ctx, r.db).Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, appointment.StatusScheduled).
		Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := handle(ctx, r.db).Model(&appointment.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) CountForPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	var count int64
	err := handle(ctx, r.db).Model(&appointment.Appointment{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, err
}
