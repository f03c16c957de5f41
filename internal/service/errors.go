package service

import "errors"

var (
	ErrSimulationNotFound = errors.New("simulation not found")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUnknownModel       = errors.New("unknown FED model")
	ErrInvalidRequest     = errors.New("invalid request")
)
