package cabinet

import "errors"

var (
	ErrCabinetNotFound      = errors.New("cabinet not found")
	ErrCabinetAlreadyExists = errors.New("cabinet with this number already exists")
	ErrCabinetOccupied      = errors.New("cabinet has assigned doctors and cannot be deleted")
)
