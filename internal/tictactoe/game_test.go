package tictactoe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playgrid/tictactoe-arena/internal/apperror"
	"github.com/playgrid/tictactoe-arena/internal/entity"
)

func TestNewGame(t *testing.T) {
	// Given: a new game between two players
	game := entity.NewGame("123", "alice", "bob")

	// Then: the board is empty, X moves first and the game is active
	require.Equal(t, [9]string{}, game.Board)
	require.Equal(t, entity.PlayerX, game.Turn)
	require.Equal(t, entity.StatusActive, game.Status)
	require.Empty(t, game.Winner)
	require.Empty(t, game.Rematch)
	require.Equal(t, entity.Participant{PlayerID: "alice", Mark: entity.PlayerX}, game.Participants[0])
	require.Equal(t, entity.Participant{PlayerID: "bob", Mark: entity.PlayerO}, game.Participants[1])
}

func TestMakeTurn(t *testing.T) {
	t.Run("Turn toggles after a move", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", "alice", "bob")

		// When: player X makes a turn
		err := MakeTurn(game, entity.PlayerX, 0)
		require.NoError(t, err)

		// Then: the cell is written and the turn passes to O
		require.Equal(t, entity.PlayerX, game.Board[0])
		require.Equal(t, entity.PlayerO, game.Turn)
		require.Equal(t, entity.StatusActive, game.Status)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where X has taken cell 0
		game := entity.NewGame("123", "alice", "bob")
		require.NoError(t, MakeTurn(game, entity.PlayerX, 0))

		// When: player O moves to the same cell
		err := MakeTurn(game, entity.PlayerO, 0)

		// Then: ErrCellOccupied is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, entity.PlayerX, game.Board[0])
		require.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new game where it is X's turn
		game := entity.NewGame("123", "alice", "bob")

		// When: player O tries to move first
		err := MakeTurn(game, entity.PlayerO, 1)

		// Then: ErrNotYourTurn is returned and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		require.Equal(t, [9]string{}, game.Board)
		require.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Invalid cell index", func(t *testing.T) {
		game := entity.NewGame("123", "alice", "bob")

		assert.ErrorIs(t, MakeTurn(game, entity.PlayerX, 9), apperror.ErrInvalidCell)
		assert.ErrorIs(t, MakeTurn(game, entity.PlayerX, -1), apperror.ErrInvalidCell)
	})

	t.Run("Move after game finished", func(t *testing.T) {
		// Given: a game that X has already won
		game := entity.NewGame("123", "alice", "bob")
		game.Board = [9]string{entity.PlayerX, entity.PlayerX, entity.PlayerX, "", entity.PlayerO, "", "", entity.PlayerO, ""}
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerX

		// When: player O tries to move anyway
		err := MakeTurn(game, entity.PlayerO, 3)

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestOutcome_WinningTriples(t *testing.T) {
	for _, combo := range entity.WinCombos {
		combo := combo
		t.Run(fmt.Sprintf("triple %v", combo), func(t *testing.T) {
			// Given: a board where X holds exactly one winning triple
			var board [9]string
			for _, cell := range combo {
				board[cell] = entity.PlayerX
			}

			// Then: X is detected as the winner
			require.Equal(t, entity.PlayerX, Outcome(board))
		})
	}
}

func TestOutcome_Draw(t *testing.T) {
	// Given: a full board with no winning triple
	board := [9]string{
		entity.PlayerX, entity.PlayerO, entity.PlayerX,
		entity.PlayerX, entity.PlayerO, entity.PlayerO,
		entity.PlayerO, entity.PlayerX, entity.PlayerX,
	}

	// Then: the outcome is a tie, never left open
	require.Equal(t, entity.PlayerTie, Outcome(board))
}

func TestOutcome_Ongoing(t *testing.T) {
	// Given: a board with empty cells and no triple
	board := [9]string{entity.PlayerX, entity.PlayerO}

	// Then: the game is still open
	require.Equal(t, "", Outcome(board))
}

func TestMakeTurn_WinAwardsFinish(t *testing.T) {
	// Given: X one move away from completing the top row
	game := entity.NewGame("123", "alice", "bob")
	moves := []struct {
		mark string
		cell int
	}{
		{entity.PlayerX, 0},
		{entity.PlayerO, 4},
		{entity.PlayerX, 1},
		{entity.PlayerO, 5},
	}
	for _, m := range moves {
		require.NoError(t, MakeTurn(game, m.mark, m.cell))
	}

	// When: X completes the row
	require.NoError(t, MakeTurn(game, entity.PlayerX, 2))

	// Then: the game finishes with X as the winner
	require.Equal(t, entity.PlayerX, game.Winner)
	require.Equal(t, entity.StatusFinished, game.Status)
}

func TestGame_Reset(t *testing.T) {
	// Given: a finished game with moves and rematch consent recorded
	game := entity.NewGame("123", "alice", "bob")
	require.NoError(t, MakeTurn(game, entity.PlayerX, 0))
	game.Moves = append(game.Moves, entity.Move{PlayerID: "alice", Cell: 0, Mark: entity.PlayerX})
	game.Rematch["alice"] = struct{}{}
	game.Rematch["bob"] = struct{}{}

	// When: the game resets in place
	game.Reset()

	// Then: the board, turn, log and consent set are back to the initial state
	require.Equal(t, [9]string{}, game.Board)
	require.Equal(t, entity.PlayerX, game.Turn)
	require.Equal(t, entity.StatusActive, game.Status)
	require.Empty(t, game.Winner)
	require.Empty(t, game.Moves)
	require.Empty(t, game.Rematch)
}
