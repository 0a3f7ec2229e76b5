package cabinet

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new cabinet. Returns ErrCabinetAlreadyExists on a
	// duplicate number.
	Create(ctx context.Context, c *Cabinet) error

	// GetByID returns ErrCabinetNotFound if no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Cabinet, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*Cabinet, error)

	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q ListQuery) ([]*Cabinet, error)

	// ExistsByNumber checks uniqueness without fetching the row.
	ExistsByNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error)
}
