package services

import (
	"errors"

	"rallycommand-api/repositories"
)

// Domain errors surfaced to controllers. None are retried automatically.
var (
	// ErrNotFound covers both missing records and records owned by another
	// user; the cases are merged so existence of foreign data never leaks.
	ErrNotFound = repositories.ErrNotFound

	// ErrInsufficientStock means a debit would drive an item quantity negative.
	ErrInsufficientStock = errors.New("insufficient quantity in stock")

	// ErrAlreadyApplied means a stocktake's corrections were committed before.
	ErrAlreadyApplied = errors.New("stocktake already applied")

	// ErrLimitExceeded covers the vehicle, photo and vehicle-association caps.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrInvalidReference means a foreign key points outside the caller's
	// ownership, e.g. a setup group belonging to a different vehicle.
	ErrInvalidReference = errors.New("invalid reference")
)
