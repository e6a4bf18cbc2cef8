package table

import "errors"

var (
	ErrTableExists    = errors.New("table already exists")
	ErrTableNotFound  = errors.New("table not found")
	ErrSeatTaken      = errors.New("seat taken")
	ErrTableFull      = errors.New("table full")
	ErrAlreadySeated  = errors.New("player already seated")
	ErrNotSeated      = errors.New("player not seated")
	ErrHandInProgress = errors.New("hand in progress")
	ErrNoHand         = errors.New("no hand has been dealt")
	ErrInvalidBuyIn   = errors.New("invalid buy-in")
	ErrInvalidSeat    = errors.New("invalid seat")
)
