package models

import "errors"

// Custom errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key violation")
	ErrInvalidID         = errors.New("invalid ID format")
	ErrInvalidLeague     = errors.New("invalid league")
	ErrMarketUnavailable = errors.New("market not offered for fixture")
)
