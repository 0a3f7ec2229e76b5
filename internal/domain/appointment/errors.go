package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")

	// Slot validation failures, in check order.
	ErrDoctorSlotTaken     = errors.New("doctor already has a visit at this time")
	ErrPatientSlotTaken    = errors.New("patient already has a visit at this time")
	ErrDailyLimitReached   = errors.New("doctor's daily visit limit reached")
	ErrMinIntervalViolated = errors.New("visits are too close together")
	ErrDuplicateVisit      = errors.New("patient already has a visit with this doctor on this date")

	// Lifecycle failures.
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrCancelCompleted      = errors.New("cannot cancel a completed visit")
	ErrCompleteFutureVisit  = errors.New("cannot complete a visit before its date")
	ErrDiagnosisOnCancelled = errors.New("cannot set a diagnosis on a cancelled visit")
)
