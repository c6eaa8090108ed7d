package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/playgrid/tictactoe-arena/internal/apperror"
	"github.com/playgrid/tictactoe-arena/internal/arena"
	"github.com/playgrid/tictactoe-arena/internal/entity"
)

// arenaReader is the read-only surface of the core.
type arenaReader interface {
	Stats() arena.Stats
	GameSnapshot(gameID string) (*arena.GameSnapshot, error)
}

type leaderboardReader interface {
	TopN(ctx context.Context, n int64) ([]entity.LeaderboardEntry, error)
}

type Handlers struct {
	logger *slog.Logger

	arena           arenaReader
	leaderboard     leaderboardReader
	leaderboardSize int64
}

func NewHandlers(logger *slog.Logger, arena arenaReader, leaderboard leaderboardReader, leaderboardSize int64) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),

		arena:           arena,
		leaderboard:     leaderboard,
		leaderboardSize: leaderboardSize,
	}
}

func (that *Handlers) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", that.Ping).Methods(http.MethodGet)
	router.HandleFunc("/health", that.Health).Methods(http.MethodGet)
	router.HandleFunc("/leaderboard", that.Leaderboard).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}", that.Game).Methods(http.MethodGet)

	return router
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.arena.Stats())
}

func (that *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Leaderboard")

	limit := that.leaderboardSize
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := that.leaderboard.TopN(r.Context(), limit)
	if err != nil {
		log.Error("failed to read leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []entity.LeaderboardEntry{}
	}

	that.writeJSON(w, http.StatusOK, entries)
}

func (that *Handlers) Game(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Game")

	gameID := mux.Vars(r)["id"]

	snapshot, err := that.arena.GameSnapshot(gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game snapshot", "gameID", gameID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
