package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for garden operations. Controllers map these onto HTTP
// statuses; they carry enough detail to render a precise client message.
var (
	ErrInvalidLocation = errors.New("tile is outside the grid or on the house")
	ErrTileOccupied    = errors.New("tile is already occupied by a tree")
	ErrTileNotFound    = errors.New("no tree found at this location")
	ErrUnknownTreeType = errors.New("unknown tree type")
)

// InsufficientFundsError reports a failed purchase with the exact amounts so
// the caller can render "need X, have Y".
type InsufficientFundsError struct {
	Required  int
	Available int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough coins: need %d, have %d", e.Required, e.Available)
}

// IsInsufficientFunds extracts an InsufficientFundsError from an error chain.
func IsInsufficientFunds(err error) (*InsufficientFundsError, bool) {
	var e *InsufficientFundsError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
