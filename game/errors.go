package game

import "errors"

var (
	ErrInvalidId         = errors.New("Room ID required")
	ErrAlreadyExists     = errors.New("Room already exists")
	ErrNotFound          = errors.New("Room not found")
	ErrRoomFull          = errors.New("Room is full (max 4)")
	ErrInsufficientFunds = errors.New("Not enough coins")
	ErrNotHost           = errors.New("Only host can roll")

	// these are dropped without telling the client
	ErrUnknownPlayer = errors.New("player not in room")
	ErrInvalidBet    = errors.New("invalid symbol or amount")
	ErrNoStake       = errors.New("nothing staked on symbol")
	ErrEmptyMessage  = errors.New("empty chat message")
)

func silent(err error) bool {
	return errors.Is(err, ErrUnknownPlayer) ||
		errors.Is(err, ErrInvalidBet) ||
		errors.Is(err, ErrNoStake) ||
		errors.Is(err, ErrEmptyMessage)
}
