package model

import "errors"

// Sentinel errors shared by the registry, the dashboard service and the controllers.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("train not found")
)
