// Package tictactoe holds the pure game rules: move validation, outcome
// detection and turn toggling. It operates on a single entity.Game and
// touches nothing else.
package tictactoe

import (
	"github.com/playgrid/tictactoe-arena/internal/apperror"
	"github.com/playgrid/tictactoe-arena/internal/entity"
)

// MakeTurn applies one move for the given mark. On success the board cell is
// written, the outcome is evaluated and either the game finishes or the turn
// toggles to the other mark.
func MakeTurn(game *entity.Game, mark string, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(game, mark, cell); err != nil {
		return err
	}

	game.Board[cell] = mark
	updateGameStatus(game, mark)

	return nil
}

// validateMove - checks if the move is legal for the current state.
func validateMove(game *entity.Game, mark string, cell int) error {
	if cell < 0 || cell >= len(game.Board) {
		return apperror.ErrInvalidCell
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if game.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - evaluates the board after a move.
func updateGameStatus(game *entity.Game, mark string) {
	switch winner := Outcome(game.Board); winner {
	case entity.PlayerX, entity.PlayerO:
		game.Winner = winner
		game.Status = entity.StatusFinished
	case entity.PlayerTie:
		game.Winner = entity.PlayerTie
		game.Status = entity.StatusFinished
	default:
		game.Turn = toggleMark(mark)
	}
}

func toggleMark(currentMark string) string {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}

// Outcome scans the eight winning triples. It returns the winning mark, the
// tie marker when all nine cells are filled without a triple, or the empty
// string while the game is still open.
func Outcome(board [9]string) string {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return ""
		}
	}

	return entity.PlayerTie
}
