package websocket

import "encoding/json"

// Inbound actions. Disconnect is implicit: the read pump exiting is the
// event.
const (
	ActionRegister     = "register"
	ActionFindGame     = "find_game"
	ActionInvitePlayer = "invite_player"
	ActionAcceptInvite = "accept_invite"
	ActionMakeMove     = "make_move"
	ActionRematch      = "rematch"
)

// Message is the wire framing for both directions: an action name and an
// action-specific payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type registerPayload struct {
	Name string `json:"name"`
}

type invitePayload struct {
	To string `json:"to"`
}

type acceptInvitePayload struct {
	From string `json:"from"`
}

type movePayload struct {
	GameID string `json:"game_id"`
	Cell   int    `json:"cell"`
}

type rematchPayload struct {
	GameID string `json:"game_id"`
}
