package doctor

import "errors"

var (
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrHasScheduledVisits     = errors.New("doctor has scheduled visits and cannot be deleted")
	ErrLastSpecialization     = errors.New("doctor must retain at least one specialization")
	ErrSpecializationAssigned = errors.New("doctor already holds this specialization")
)
