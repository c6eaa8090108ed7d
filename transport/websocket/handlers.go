package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errEmptyName = errors.New("display name is required")

func (that *Server) handleRegister(client *Client, payload json.RawMessage) error {
	var req registerPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.Name == "" {
		return errEmptyName
	}

	that.arena.Register(client.id, req.Name)

	return nil
}

func (that *Server) handleFindGame(client *Client, _ json.RawMessage) error {
	return that.arena.SeekMatch(client.id)
}

func (that *Server) handleInvitePlayer(client *Client, payload json.RawMessage) error {
	var req invitePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.arena.Invite(client.id, req.To)
}

func (that *Server) handleAcceptInvite(client *Client, payload json.RawMessage) error {
	var req acceptInvitePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.arena.AcceptInvite(client.id, req.From)
}

func (that *Server) handleMakeMove(client *Client, payload json.RawMessage) error {
	var req movePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.arena.MakeMove(req.GameID, client.id, req.Cell)
}

func (that *Server) handleRematch(client *Client, payload json.RawMessage) error {
	var req rematchPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.arena.RequestRematch(req.GameID, client.id)
}
