package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/repository"
	"github.com/dmehra2102/clinic-api/pkg/metrics"
)

// AppointmentService owns the booking rules and the appointment
// lifecycle. It is the only code path that creates appointments, so the
// full rule chain cannot be bypassed.
type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	tx          repository.Transactor
	limits      appointment.SlotLimits
	auditSvc    *AuditService
	collector   *metrics.Collector
	log         *zap.Logger

	now func() time.Time
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	tx repository.Transactor,
	limits appointment.SlotLimits,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		tx:          tx,
		limits:      limits,
		auditSvc:    auditSvc,
		collector:   collector,
		log:         log,
		now:         time.Now,
	}
}

// Schedule books a new visit. Existence checks, the conflict reads, the
// rule chain, and the insert all run inside one transaction; on any
// failure nothing is written and the specific reason is returned
// unchanged.
func (s *AppointmentService) Schedule(ctx context.Context, cmd *appointment.CreateCommand, requestID, ip string) (*appointment.Appointment, error) {
	var created *appointment.Appointment

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
			return err
		}
		if _, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID); err != nil {
			return err
		}

		day, err := s.repo.ScheduledOnDay(ctx, cmd.DoctorID, cmd.Date)
		if err != nil {
			return fmt.Errorf("reading doctor's day: %w", err)
		}
		busy, err := s.repo.PatientBusyAt(ctx, cmd.PatientID, cmd.Date, cmd.Time)
		if err != nil {
			return fmt.Errorf("probing patient slot: %w", err)
		}

		candidate := &appointment.Appointment{
			PatientID: cmd.PatientID,
			DoctorID:  cmd.DoctorID,
			Date:      appointment.DateOnly(cmd.Date),
			Time:      cmd.Time,
			Status:    appointment.StatusScheduled,
		}

		if err := appointment.CheckSlot(candidate, day, busy, s.limits); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, candidate); err != nil {
			return fmt.Errorf("creating appointment: %w", err)
		}
		created = candidate
		return nil
	})
	if err != nil {
		s.countRejection(err)
		s.log.Warn("booking rejected",
			zap.String("patient_id", cmd.PatientID.String()),
			zap.String("doctor_id", cmd.DoctorID.String()),
			zap.String("date", cmd.Date.Format("2006-01-02")),
			zap.String("time", cmd.Time.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if s.collector != nil {
		s.collector.AppointmentsTotal.WithLabelValues(string(appointment.StatusScheduled)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   created.ID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})
	s.log.Info("appointment scheduled",
		zap.String("appointment_id", created.ID.String()),
		zap.String("doctor_id", cmd.DoctorID.String()),
		zap.String("date", created.Date.Format("2006-01-02")),
		zap.String("time", created.Time.String()),
	)

	return created, nil
}

func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context, q appointment.ListQuery) ([]*appointment.Appointment, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}

// ListForPatient returns the patient's visit history, newest date
// first. Unknown patients are an error, matching the write-side checks.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListForPatient(ctx, patientID)
}

// ListForDoctor returns the doctor's visits, optionally narrowed to one
// date. Unknown doctors are an error.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*appointment.Appointment, error) {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListForDoctor(ctx, doctorID, date)
}

// DoctorDaySchedule returns the doctor's visits for one date, any
// status, time ascending. Unlike ListForDoctor it does not check the
// doctor exists: an unknown ID yields an empty schedule. Callers rely
// on that, so it stays.
func (s *AppointmentService) DoctorDaySchedule(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	return s.repo.DaySchedule(ctx, doctorID, date)
}

// Update applies a typed partial update under the lifecycle rules. The
// patch either applies in full or not at all.
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, patch appointment.Patch, requestID, ip string) (*appointment.Appointment, error) {
	var updated *appointment.Appointment

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := a.Apply(patch, s.now()); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, a); err != nil {
			return fmt.Errorf("updating appointment: %w", err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.collector != nil && patch.Status != nil {
		s.collector.AppointmentsTotal.WithLabelValues(string(*patch.Status)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return updated, nil
}

// Cancel is shorthand for an update that only sets status=cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, requestID, ip string) (*appointment.Appointment, error) {
	status := appointment.StatusCancelled
	return s.Update(ctx, id, appointment.Patch{Status: &status}, requestID, ip)
}

// Complete is shorthand for an update that sets status=completed and
// the diagnosis.
func (s *AppointmentService) Complete(ctx context.Context, id uuid.UUID, diagnosis string, requestID, ip string) (*appointment.Appointment, error) {
	status := appointment.StatusCompleted
	return s.Update(ctx, id, appointment.Patch{Status: &status, Diagnosis: &diagnosis}, requestID, ip)
}

// Delete removes the record entirely. This is a hard delete, distinct
// from cancellation.
func (s *AppointmentService) Delete(ctx context.Context, id uuid.UUID, requestID, ip string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})
	return nil
}

func (s *AppointmentService) countRejection(err error) {
	if s.collector == nil {
		return
	}
	var rule string
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		rule = "patient_not_found"
	case errors.Is(err, doctor.ErrDoctorNotFound):
		rule = "doctor_not_found"
	case errors.Is(err, appointment.ErrDoctorSlotTaken):
		rule = "doctor_slot_taken"
	case errors.Is(err, appointment.ErrPatientSlotTaken):
		rule = "patient_slot_taken"
	case errors.Is(err, appointment.ErrDailyLimitReached):
		rule = "daily_limit"
	case errors.Is(err, appointment.ErrMinIntervalViolated):
		rule = "min_interval"
	case errors.Is(err, appointment.ErrDuplicateVisit):
		rule = "duplicate_visit"
	default:
		rule = "other"
	}
	s.collector.SchedulingRejections.WithLabelValues(rule).Inc()
}
