package specialization

import "errors"

var (
	ErrSpecializationNotFound      = errors.New("specialization not found")
	ErrSpecializationAlreadyExists = errors.New("specialization with this name already exists")
	ErrSpecializationInUse         = errors.New("specialization is held by doctors and cannot be deleted")
)
