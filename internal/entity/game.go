package entity

import "time"

const (
	StatusActive   = "active"
	StatusFinished = "finished"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// WinPoints is awarded to the winning participant's profile score.
const WinPoints = 10

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Participant binds a connection to the mark it plays for one game.
// The mark never changes for the lifetime of the game.
type Participant struct {
	PlayerID string `json:"player_id"`
	Mark     string `json:"mark"`
}

// Move is one accepted move, kept in arrival order.
type Move struct {
	PlayerID string `json:"player_id"`
	Cell     int    `json:"cell"`
	Mark     string `json:"mark"`
}

// Game is one session between exactly two connections. The first
// participant always plays X and moves first.
type Game struct {
	ID           string              `json:"id"`
	Participants [2]Participant      `json:"participants"`
	Board        [9]string           `json:"board"`
	Turn         string              `json:"turn"`
	Winner       string              `json:"winner,omitempty"`
	Status       string              `json:"status"`
	Moves        []Move              `json:"moves,omitempty"`
	Rematch      map[string]struct{} `json:"-"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewGame creates an active game with an empty board. firstID plays X and
// has the first turn, secondID plays O.
func NewGame(id, firstID, secondID string) *Game {
	return &Game{
		ID: id,
		Participants: [2]Participant{
			{PlayerID: firstID, Mark: PlayerX},
			{PlayerID: secondID, Mark: PlayerO},
		},
		Board:     [9]string{},
		Turn:      PlayerX,
		Status:    StatusActive,
		Rematch:   make(map[string]struct{}),
		CreatedAt: time.Now(),
	}
}

// Reset reinitializes the game in place for a rematch. The participants and
// their marks stay as they were.
func (that *Game) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = ""
	that.Status = StatusActive
	that.Moves = nil
	that.Rematch = make(map[string]struct{})
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// ParticipantByID returns the participant entry for the given player id.
func (that *Game) ParticipantByID(playerID string) (Participant, bool) {
	for _, participant := range that.Participants {
		if participant.PlayerID == playerID {
			return participant, true
		}
	}

	return Participant{}, false
}

// Opponent returns the other participant of the game.
func (that *Game) Opponent(playerID string) (Participant, bool) {
	for _, participant := range that.Participants {
		if participant.PlayerID != playerID {
			return participant, true
		}
	}

	return Participant{}, false
}

func (that *Game) HasParticipant(playerID string) bool {
	_, ok := that.ParticipantByID(playerID)
	return ok
}
