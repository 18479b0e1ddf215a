package models

// Permission is a room's edit mode. Only the room creator may change it.
type Permission string

const (
	PermissionEdit     Permission = "edit"
	PermissionViewOnly Permission = "view-only"
)

// Valid reports whether p is one of the known modes.
func (p Permission) Valid() bool {
	return p == PermissionEdit || p == PermissionViewOnly
}

// Frame is the envelope for every message on the real-time channel.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Frame types carried over the real-time channel.
const (
	FrameJoin             = "join"              // C->S: subscribe to a room
	FrameCodeUpdate       = "code-update"       // S->C: full buffer snapshot
	FrameCodeChange       = "code-change"       // C->S: full buffer replace
	FrameCheckRoom        = "check-room"        // C->S: existence probe
	FrameRoomChecked      = "room-checked"      // S->C: probe reply
	FrameCreateRoom       = "create-room"       // C->S: idempotent creation
	FrameRoomCreated      = "room-created"      // S->C: creation ack
	FrameSetPermission    = "set-permission"    // C->S: creator changes room mode
	FramePermissionUpdate = "permission-update" // S->C: room mode changed
	FrameError            = "error"             // S->C: rejected request
)

// Error reasons sent in FrameError data.
const (
	ErrBadPayload       = "bad_payload"
	ErrNotSubscribed    = "not_subscribed"
	ErrPermissionDenied = "permission_denied"
	ErrUnknownType      = "unknown_type"
)

type JoinRequest struct {
	Room         string `json:"room"`
	CreatorToken string `json:"creatorToken,omitempty"`
}

type CodeChange struct {
	Room string `json:"room"`
	Code string `json:"code"`
}

type RoomCheck struct {
	Room   string `json:"room"`
	Exists bool   `json:"exists"`
}

type RoomCreated struct {
	Room         string `json:"room"`
	Success      bool   `json:"success"`
	CreatorToken string `json:"creatorToken,omitempty"`
}

type PermissionChange struct {
	Room string     `json:"room"`
	Mode Permission `json:"mode"`
}

/*** HTTP API payloads ***/

type CreateRoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type CreateRoomResponse struct {
	Success      bool   `json:"success"`
	RoomCode     string `json:"roomCode"`
	CreatorToken string `json:"creatorToken,omitempty"`
}

type RoomExistsResponse struct {
	Exists bool `json:"exists"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
