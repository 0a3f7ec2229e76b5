package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new doctor with its specialization links.
	Create(ctx context.Context, d *Doctor) error

	// GetByID returns the doctor with specializations preloaded. Returns
	// ErrDoctorNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// Update applies partial updates to an existing record.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*Doctor, error)

	// Delete removes the doctor. The service layer guards against
	// scheduled visits before calling this.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q ListQuery) ([]*Doctor, error)

	// ListByCabinet returns the doctors assigned to a cabinet.
	ListByCabinet(ctx context.Context, cabinetID uuid.UUID) ([]*Doctor, error)

	// AddSpecialization links a specialization to the doctor.
	AddSpecialization(ctx context.Context, doctorID, specID uuid.UUID) error

	// RemoveSpecialization unlinks a specialization from the doctor.
	RemoveSpecialization(ctx context.Context, doctorID, specID uuid.UUID) error

	// CountBySpecialization counts doctors holding a specialization.
	// Drives the specialization deletion guard.
	CountBySpecialization(ctx context.Context, specID uuid.UUID) (int64, error)

	// CountByCabinet counts doctors assigned to a cabinet. Drives the
	// cabinet deletion guard.
	CountByCabinet(ctx context.Context, cabinetID uuid.UUID) (int64, error)
}
