package arena

import (
	"time"

	"github.com/playgrid/tictactoe-arena/internal/entity"
)

// Outbound event types. The set is closed: every payload shape below maps to
// exactly one of these.
const (
	EventRegistered           = "registered"
	EventWaiting              = "waiting"
	EventGameInvite           = "game_invite"
	EventGameStarted          = "game_started"
	EventGameUpdate           = "game_update"
	EventGameReset            = "game_reset"
	EventRematchRequested     = "rematch_requested"
	EventOpponentDisconnected = "opponent_disconnected"
)

// Event is one outbound message addressed to a single connection.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Notifier delivers an event to the connection identified by playerID.
// Delivery is fire-and-forget: the arena never waits on it and never learns
// whether it succeeded.
type Notifier interface {
	Send(playerID string, event Event)
}

// RegisteredPayload acknowledges a registration.
type RegisteredPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// InvitePayload notifies a player of an incoming invitation.
type InvitePayload struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
}

// RematchRequestedPayload tells a participant their peer wants a rematch.
type RematchRequestedPayload struct {
	GameID string `json:"game_id"`
	From   string `json:"from"`
}

// OpponentDisconnectedPayload tells the remaining participant the game is
// gone and they must re-enter matchmaking.
type OpponentDisconnectedPayload struct {
	GameID string `json:"game_id"`
}

// ParticipantInfo is one participant as shown in snapshots, with the live
// score from the registry.
type ParticipantInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Mark  string `json:"mark"`
	Score int    `json:"score"`
}

// GameSnapshot is the full observable state of one game. It is broadcast
// after every state-changing event and served by the read-only lookup.
type GameSnapshot struct {
	ID        string            `json:"id"`
	Board     [9]string         `json:"board"`
	Turn      string            `json:"turn,omitempty"`
	Winner    string            `json:"winner,omitempty"`
	Status    string            `json:"status"`
	Players   []ParticipantInfo `json:"players"`
	CreatedAt time.Time         `json:"created_at"`
}

// Stats is the health summary consumed by the REST layer.
type Stats struct {
	PlayersOnline  int `json:"players_online"`
	ActiveGames    int `json:"active_games"`
	WaitingPlayers int `json:"waiting_players"`
}

func (that *Arena) snapshotLocked(game *entity.Game) *GameSnapshot {
	snapshot := &GameSnapshot{
		ID:        game.ID,
		Board:     game.Board,
		Winner:    game.Winner,
		Status:    game.Status,
		CreatedAt: game.CreatedAt,
	}

	if game.IsActive() {
		snapshot.Turn = game.Turn
	}

	for _, participant := range game.Participants {
		info := ParticipantInfo{
			ID:   participant.PlayerID,
			Mark: participant.Mark,
		}

		if player, ok := that.players[participant.PlayerID]; ok {
			info.Name = player.Name
			info.Score = player.Score
		}

		snapshot.Players = append(snapshot.Players, info)
	}

	return snapshot
}
