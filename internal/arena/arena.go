// Package arena owns the live state of the service: who is online, who is
// waiting for an opponent and which games are running. All three maps are
// guarded by one mutex scoped to the whole mutation, so every inbound event
// is applied fully before the next one is observed. Handlers never block:
// outbound delivery and the leaderboard mirror are fire-and-forget.
package arena

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/tictactoe-arena/internal/apperror"
	"github.com/playgrid/tictactoe-arena/internal/entity"
	"github.com/playgrid/tictactoe-arena/internal/tictactoe"
)

const scoreWriteTimeout = 5 * time.Second

// scoreMirror receives cumulative score awards. Writes happen off the event
// path and may fail without affecting the live game.
type scoreMirror interface {
	IncrScore(ctx context.Context, playerID, name string, points int64) error
}

type Arena struct {
	logger   *slog.Logger
	notifier Notifier
	scores   scoreMirror

	mu           sync.Mutex
	players      map[string]*entity.Player
	queue        []string
	games        map[string]*entity.Game
	gameByPlayer map[string]string
}

// New creates an empty arena. scores may be nil when no leaderboard mirror
// is configured.
func New(logger *slog.Logger, notifier Notifier, scores scoreMirror) *Arena {
	return &Arena{
		logger:   logger.With("component", "arena"),
		notifier: notifier,
		scores:   scores,

		players:      make(map[string]*entity.Player),
		games:        make(map[string]*entity.Game),
		gameByPlayer: make(map[string]string),
	}
}

// Register creates the profile for a connection and acks it. Calling it
// again for the same connection replaces the display name and keeps the
// score.
func (that *Arena) Register(playerID, name string) *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[playerID]
	if !ok {
		player = &entity.Player{ID: playerID, Name: name}
		that.players[playerID] = player
	} else {
		player.Name = name
	}

	that.notifier.Send(playerID, Event{
		Type:    EventRegistered,
		Payload: RegisteredPayload{ID: player.ID, Name: player.Name, Score: player.Score},
	})

	that.logger.Info("player registered", "playerID", playerID, "name", name)

	return player
}

// Lookup returns a copy of the profile for the given connection.
func (that *Arena) Lookup(playerID string) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[playerID]
	if !ok {
		return entity.Player{}, apperror.ErrPlayerNotFound
	}

	return *player, nil
}

// SeekMatch pairs the caller with the longest-waiting player, or appends the
// caller to the queue and acks with a waiting event. A player already in a
// game may not enter matchmaking.
func (that *Arena) SeekMatch(playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.players[playerID]; !ok {
		return apperror.ErrPlayerNotFound
	}

	if _, ok := that.gameByPlayer[playerID]; ok {
		return apperror.ErrAlreadyInGame
	}

	for _, waiting := range that.queue {
		if waiting == playerID {
			// already queued, seeking again changes nothing
			return nil
		}
	}

	if len(that.queue) > 0 {
		opponentID := that.queue[0]
		that.queue = that.queue[1:]
		that.createGameLocked(opponentID, playerID)
		return nil
	}

	that.queue = append(that.queue, playerID)
	that.notifier.Send(playerID, Event{Type: EventWaiting})

	return nil
}

// Invite notifies the target connection of an invitation from the caller.
func (that *Arena) Invite(fromID, toID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	from, ok := that.players[fromID]
	if !ok {
		return apperror.ErrPlayerNotFound
	}

	if _, ok = that.players[toID]; !ok {
		return apperror.ErrPlayerNotFound
	}

	that.notifier.Send(toID, Event{
		Type:    EventGameInvite,
		Payload: InvitePayload{From: from.ID, FromName: from.Name},
	})

	return nil
}

// AcceptInvite starts a game between inviter and invitee directly, bypassing
// the queue. The inviter plays X, exactly as the earlier-waiting player does
// in matchmaking.
func (that *Arena) AcceptInvite(toID, fromID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.players[fromID]; !ok {
		return apperror.ErrPlayerNotFound
	}

	if _, ok := that.players[toID]; !ok {
		return apperror.ErrPlayerNotFound
	}

	if _, ok := that.gameByPlayer[fromID]; ok {
		return apperror.ErrAlreadyInGame
	}

	if _, ok := that.gameByPlayer[toID]; ok {
		return apperror.ErrAlreadyInGame
	}

	that.removeFromQueueLocked(fromID)
	that.removeFromQueueLocked(toID)

	that.createGameLocked(fromID, toID)

	return nil
}

// MakeMove applies one move. Every precondition failure is reported as an
// error so the transport can drop the event silently; accepted moves are
// broadcast to both participants as a full snapshot.
func (that *Arena) MakeMove(gameID, playerID string, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return apperror.ErrGameNotFound
	}

	participant, ok := game.ParticipantByID(playerID)
	if !ok {
		return apperror.ErrNotParticipant
	}

	if err := tictactoe.MakeTurn(game, participant.Mark, cell); err != nil {
		return err
	}

	game.Moves = append(game.Moves, entity.Move{PlayerID: playerID, Cell: cell, Mark: participant.Mark})

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)

		if game.Winner != entity.PlayerTie {
			that.awardWinLocked(game)
		}
	}

	that.broadcastLocked(game, EventGameUpdate)

	return nil
}

// RequestRematch records sticky consent for one participant. The first
// consent notifies the peer, the second resets the game in place.
func (that *Arena) RequestRematch(gameID, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return apperror.ErrGameNotFound
	}

	if !game.HasParticipant(playerID) {
		return apperror.ErrNotParticipant
	}

	if _, ok = game.Rematch[playerID]; ok {
		// consent is sticky, repeating it changes nothing
		return nil
	}

	game.Rematch[playerID] = struct{}{}

	if len(game.Rematch) < len(game.Participants) {
		if opponent, found := game.Opponent(playerID); found {
			that.notifier.Send(opponent.PlayerID, Event{
				Type:    EventRematchRequested,
				Payload: RematchRequestedPayload{GameID: game.ID, From: playerID},
			})
		}
		return nil
	}

	game.Reset()
	that.broadcastLocked(game, EventGameReset)

	that.logger.Info("game reset for rematch", "gameID", game.ID)

	return nil
}

// Disconnect tears down everything the connection owned: queue membership,
// the profile and any game it participated in. The remaining participant is
// notified exactly once and is left without a game.
func (that *Arena) Disconnect(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.removeFromQueueLocked(playerID)
	delete(that.players, playerID)

	gameID, ok := that.gameByPlayer[playerID]
	if !ok {
		return
	}

	game := that.games[gameID]
	delete(that.games, gameID)
	for _, participant := range game.Participants {
		delete(that.gameByPlayer, participant.PlayerID)
	}

	if opponent, found := game.Opponent(playerID); found {
		that.notifier.Send(opponent.PlayerID, Event{
			Type:    EventOpponentDisconnected,
			Payload: OpponentDisconnectedPayload{GameID: gameID},
		})
	}

	that.logger.Info("player disconnected, game deleted", "playerID", playerID, "gameID", gameID)
}

// Stats returns the health summary for the read-only surface.
func (that *Arena) Stats() Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	activeGames := 0
	for _, game := range that.games {
		if game.IsActive() {
			activeGames++
		}
	}

	return Stats{
		PlayersOnline:  len(that.players),
		ActiveGames:    activeGames,
		WaitingPlayers: len(that.queue),
	}
}

// GameSnapshot returns the public snapshot of one game.
func (that *Arena) GameSnapshot(gameID string) (*GameSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[gameID]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return that.snapshotLocked(game), nil
}

func (that *Arena) createGameLocked(firstID, secondID string) {
	game := entity.NewGame(uuid.NewString(), firstID, secondID)

	that.games[game.ID] = game
	that.gameByPlayer[firstID] = game.ID
	that.gameByPlayer[secondID] = game.ID

	that.broadcastLocked(game, EventGameStarted)

	that.logger.Info("game created", "gameID", game.ID, "playerX", firstID, "playerO", secondID)
}

func (that *Arena) awardWinLocked(game *entity.Game) {
	for _, participant := range game.Participants {
		if participant.Mark != game.Winner {
			continue
		}

		player, ok := that.players[participant.PlayerID]
		if !ok {
			return
		}

		player.Score += entity.WinPoints

		if that.scores != nil {
			go that.mirrorScore(player.ID, player.Name)
		}

		return
	}
}

func (that *Arena) mirrorScore(playerID, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), scoreWriteTimeout)
	defer cancel()

	if err := that.scores.IncrScore(ctx, playerID, name, entity.WinPoints); err != nil {
		that.logger.Error("failed to mirror score to leaderboard", "playerID", playerID, "error", err)
	}
}

func (that *Arena) broadcastLocked(game *entity.Game, eventType string) {
	snapshot := that.snapshotLocked(game)
	for _, participant := range game.Participants {
		that.notifier.Send(participant.PlayerID, Event{Type: eventType, Payload: snapshot})
	}
}

func (that *Arena) removeFromQueueLocked(playerID string) {
	for i, waiting := range that.queue {
		if waiting == playerID {
			that.queue = append(that.queue[:i], that.queue[i+1:]...)
			return
		}
	}
}
