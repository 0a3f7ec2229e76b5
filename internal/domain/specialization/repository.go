package specialization

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new specialization. Returns
	// ErrSpecializationAlreadyExists on a duplicate name.
	Create(ctx context.Context, s *Specialization) error

	// GetByID returns ErrSpecializationNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Specialization, error)

	GetByName(ctx context.Context, name string) (*Specialization, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all specializations ordered by name.
	List(ctx context.Context) ([]*Specialization, error)
}
