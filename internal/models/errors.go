package models

import (
	"errors"
	"fmt"

	"ms-venue/internal/seating"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTicketClass  = fmt.Errorf("%w: invalid ticket class", ErrInvalidInput)
	ErrOutOfRange          = seating.ErrOutOfRange
	ErrSeatTaken           = seating.ErrSeatTaken
	ErrNotFound            = errors.New("not found")
	ErrMatchNotFound       = fmt.Errorf("match %w", ErrNotFound)
	ErrStadiumNotFound     = fmt.Errorf("stadium %w", ErrNotFound)
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrTicketNotFound      = fmt.Errorf("ticket %w", ErrNotFound)
	ErrCustomerNotFound    = fmt.Errorf("customer %w", ErrNotFound)
	ErrNotEntitled         = errors.New("customer not entitled to concessions")
	ErrAgeRestricted       = errors.New("product restricted to customers aged 18 or over")
	ErrUpstreamUnavailable = errors.New("catalog source unavailable")
	ErrCodeCollision       = errors.New("ticket code collision")
)
