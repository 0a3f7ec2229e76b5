package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyExists on a
	// duplicate insurance number.
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// Update applies partial updates to an existing record.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*Patient, error)

	// Delete removes the patient; appointments cascade at the store level.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q ListQuery) ([]*Patient, error)

	// ExistsByInsuranceNumber checks uniqueness without fetching the row.
	ExistsByInsuranceNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error)
}
