package apperror

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrNotParticipant = errors.New("player is not a participant of this game")
	ErrPlayerNotFound = errors.New("player not found")
	ErrAlreadyInGame  = errors.New("player is already in a game")
)
