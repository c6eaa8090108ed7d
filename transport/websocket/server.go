package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/playgrid/tictactoe-arena/internal/entity"
)

// gameArena is the slice of the core the transport drives. Every method maps
// to one inbound event.
type gameArena interface {
	Register(playerID, name string) *entity.Player
	SeekMatch(playerID string) error
	Invite(fromID, toID string) error
	AcceptInvite(toID, fromID string) error
	MakeMove(gameID, playerID string, cell int) error
	RequestRematch(gameID, playerID string) error
	Disconnect(playerID string)
}

type Server struct {
	logger *slog.Logger
	hub    *Hub
	arena  gameArena

	upgrader websocket.Upgrader
	handlers map[string]func(client *Client, payload json.RawMessage) error
}

func New(logger *slog.Logger, hub *Hub, arena gameArena) *Server {
	server := &Server{
		logger: logger.With("component", "ws-server"),
		hub:    hub,
		arena:  arena,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// browser clients connect from a different origin than the API
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(*Client, json.RawMessage) error),
	}

	server.handlers[ActionRegister] = server.handleRegister
	server.handlers[ActionFindGame] = server.handleFindGame
	server.handlers[ActionInvitePlayer] = server.handleInvitePlayer
	server.handlers[ActionAcceptInvite] = server.handleAcceptInvite
	server.handlers[ActionMakeMove] = server.handleMakeMove
	server.handlers[ActionRematch] = server.handleRematch

	return server
}

// Start runs the WebSocket server until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS upgrades the connection and runs its pumps. The connection id is
// minted here and stays stable until the socket drops.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}

	that.hub.add(client)
	log.Info("connection established", "playerID", client.id)

	go client.writePump(that.logger)
	client.readPump(that)

	// the read pump exiting is the disconnect event
	that.hub.remove(client)
	that.arena.Disconnect(client.id)
	log.Info("connection closed", "playerID", client.id)
}

// dispatch decodes one inbound message and runs its handler. Invalid
// requests are dropped silently per the stale-client policy; a panicking
// handler is isolated to this one event.
func (that *Server) dispatch(client *Client, raw []byte) {
	log := that.logger.With("method", "dispatch", "playerID", client.id)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic in event handler", "panic", r)
		}
	}()

	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action", "action", message.Action)
		return
	}

	if err := handler(client, message.Payload); err != nil {
		// the client is treated as stale, not malicious
		log.Debug("event dropped", "action", message.Action, "error", err)
	}
}
