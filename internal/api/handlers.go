package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"codeshare/internal/events"
	"codeshare/internal/metrics"
	"codeshare/internal/models"
	"codeshare/internal/registry"
	"codeshare/internal/session"
	"codeshare/internal/utils"
)

type Handlers struct {
	log      *utils.Logger
	registry *registry.Registry
	hub      *session.Hub
	events   *events.Publisher
}

func NewHandlers(log *utils.Logger, pub *events.Publisher) *Handlers {
	return NewHandlersWithDeps(log, registry.New(), session.NewHub(), pub)
}

func NewHandlersWithDeps(log *utils.Logger, reg *registry.Registry, hub *session.Hub, pub *events.Publisher) *Handlers {
	return &Handlers{log: log, registry: reg, hub: hub, events: pub}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, models.HealthResponse{
		Status:    "ok",
		Message:   "codeshare backend is running",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// CreateRoom handles POST /api/rooms. Creation is idempotent and never
// fails for a well-formed code; clients need no retry loop. The first
// creation of a room mints the creator token.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room code")
		return
	}
	if err := registry.ValidateCode(req.RoomCode); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room code")
		return
	}

	code := registry.Normalize(req.RoomCode)
	room, created := h.registry.Ensure(code)
	resp := models.CreateRoomResponse{Success: true, RoomCode: code}
	if room.ClaimCreator() {
		token, err := utils.MintCreatorToken(code)
		if err != nil {
			h.log.Error("mint creator token failed", "room", code, "error", err.Error())
		} else {
			resp.CreatorToken = token
		}
	}
	if created {
		metrics.RoomsCreated.Inc()
		h.events.Publish(r.Context(), events.KindCreated, code)
	}
	writeJSON(w, resp)
}

// CheckRoom handles GET /api/rooms/{roomCode}. A missing room is a soft
// fail ({exists:false}) so clients can decide to create it.
func (h *Handlers) CheckRoom(w http.ResponseWriter, r *http.Request) {
	code := registry.Normalize(chi.URLParam(r, "roomCode"))
	writeJSON(w, models.RoomExistsResponse{Exists: h.registry.Exists(code)})
}

/*** Real-time channel: one connection, room-multiplexed frames ***/

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (h *Handlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := session.NewClient(conn)
	metrics.ConnectionsOpen.Inc()
	h.log.Debug("connection open", "conn", client.ID)
	defer func() {
		h.hub.Drop(client)
		metrics.ConnectionsOpen.Dec()
		h.log.Debug("connection closed", "conn", client.ID)
	}()

	for {
		var frame models.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case models.FrameJoin:
			h.handleJoin(client, frame)

		case models.FrameCodeChange:
			h.handleCodeChange(client, frame)

		case models.FrameCheckRoom:
			room, ok := roomArg(frame.Data)
			if !ok {
				client.Send(errFrame(models.ErrBadPayload))
				continue
			}
			code := registry.Normalize(room)
			client.Send(models.Frame{
				Type: models.FrameRoomChecked,
				Data: models.RoomCheck{Room: code, Exists: h.registry.Exists(code)},
			})

		case models.FrameCreateRoom:
			h.handleCreateRoom(r, client, frame)

		case models.FrameSetPermission:
			h.handleSetPermission(r, client, frame)

		default:
			client.Send(errFrame(models.ErrUnknownType))
		}
	}
}

func (h *Handlers) handleJoin(client *session.Client, frame models.Frame) {
	var req models.JoinRequest
	if room, ok := roomArg(frame.Data); ok {
		req.Room = room
	} else if err := decode(frame.Data, &req); err != nil || req.Room == "" {
		client.Send(errFrame(models.ErrBadPayload))
		return
	}

	code := registry.Normalize(req.Room)
	room, _ := h.registry.Ensure(code)

	creator := false
	if req.CreatorToken != "" {
		claims, err := utils.ValidateCreatorToken(req.CreatorToken)
		creator = err == nil && claims.Room == code
	}
	h.hub.Join(client, code, creator)
	h.log.Debug("joined room", "conn", client.ID, "room", code, "creator", creator)

	// Targeted snapshot to the joiner only; peers are not notified.
	if text := room.Content(); text != "" {
		client.Send(models.Frame{Type: models.FrameCodeUpdate, Data: text})
	}
}

func (h *Handlers) handleCodeChange(client *session.Client, frame models.Frame) {
	var change models.CodeChange
	if err := decode(frame.Data, &change); err != nil || change.Room == "" {
		client.Send(errFrame(models.ErrBadPayload))
		return
	}

	code := registry.Normalize(change.Room)
	if !h.hub.Subscribed(client, code) {
		client.Send(errFrame(models.ErrNotSubscribed))
		return
	}

	room, _ := h.registry.Ensure(code)
	if room.Mode() == models.PermissionViewOnly && !h.hub.Creator(client, code) {
		client.Send(errFrame(models.ErrPermissionDenied))
		return
	}

	room.SetContent(change.Code)
	h.hub.Broadcast(code, client, models.Frame{Type: models.FrameCodeUpdate, Data: change.Code})
	metrics.BroadcastsTotal.Inc()
}

func (h *Handlers) handleCreateRoom(r *http.Request, client *session.Client, frame models.Frame) {
	roomArgVal, ok := roomArg(frame.Data)
	if !ok {
		client.Send(errFrame(models.ErrBadPayload))
		return
	}

	code := registry.Normalize(roomArgVal)
	room, created := h.registry.Ensure(code)

	ack := models.RoomCreated{Room: code, Success: true}
	if room.ClaimCreator() {
		token, err := utils.MintCreatorToken(code)
		if err != nil {
			h.log.Error("mint creator token failed", "room", code, "error", err.Error())
		} else {
			ack.CreatorToken = token
			h.hub.Promote(client, code)
		}
	}
	if created {
		metrics.RoomsCreated.Inc()
		h.events.Publish(r.Context(), events.KindCreated, code)
	}
	client.Send(models.Frame{Type: models.FrameRoomCreated, Data: ack})
}

func (h *Handlers) handleSetPermission(r *http.Request, client *session.Client, frame models.Frame) {
	var change models.PermissionChange
	if err := decode(frame.Data, &change); err != nil || change.Room == "" || !change.Mode.Valid() {
		client.Send(errFrame(models.ErrBadPayload))
		return
	}

	code := registry.Normalize(change.Room)
	if !h.hub.Creator(client, code) {
		client.Send(errFrame(models.ErrPermissionDenied))
		return
	}

	room, _ := h.registry.Ensure(code)
	room.SetMode(change.Mode)

	out := models.Frame{
		Type: models.FramePermissionUpdate,
		Data: models.PermissionChange{Room: code, Mode: change.Mode},
	}
	h.hub.Broadcast(code, client, out)
	// echo to the creator as the ack
	client.Send(out)
	h.events.Publish(r.Context(), events.KindPermissionChanged, code)
}

func decode(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// roomArg accepts the bare-string form of a room argument.
func roomArg(data any) (string, bool) {
	s, ok := data.(string)
	return s, ok && s != ""
}

func errFrame(reason string) models.Frame {
	return models.Frame{Type: models.FrameError, Data: reason}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
