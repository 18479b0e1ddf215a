package registry

import (
	"errors"
	"strings"
	"sync"

	"codeshare/internal/models"
)

// PlaceholderContent seeds every room so the first joiner has something to render.
const PlaceholderContent = "// Start coding!"

// RoomCodeLength is the fixed length of a shareable room code.
const RoomCodeLength = 6

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidRoomCode = errors.New("invalid room code")
)

// Normalize case-folds a room code to its canonical uppercase form.
// Applied at every entry point so rooms never fork by case.
func Normalize(code string) string {
	return strings.ToUpper(code)
}

// ValidateCode checks the shareable-code shape used by the HTTP surface.
func ValidateCode(code string) error {
	if len(code) != RoomCodeLength {
		return ErrInvalidRoomCode
	}
	return nil
}

// Room is the authoritative state for one code: the latest buffer,
// the edit mode, and whether a creator credential was already minted.
type Room struct {
	Code string

	mu      sync.Mutex
	content string
	mode    models.Permission
	claimed bool
}

func newRoom(code string) *Room {
	return &Room{
		Code:    code,
		content: PlaceholderContent,
		mode:    models.PermissionEdit,
	}
}

func (r *Room) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// SetContent overwrites the buffer. Last write wins; there is no merge.
func (r *Room) SetContent(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = text
}

func (r *Room) Mode() models.Permission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *Room) SetMode(m models.Permission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = m
}

// ClaimCreator returns true exactly once per room, for the first caller.
// The winner gets the creator credential for this room.
func (r *Room) ClaimCreator() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimed {
		return false
	}
	r.claimed = true
	return true
}

// Registry is the in-memory authority mapping normalized codes to rooms.
// Rooms live for the process lifetime; stale-room GC is a documented
// extension point, not implemented here.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func New() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Ensure returns the room for code, creating it with placeholder content
// when absent. Idempotent: a second call returns the same room and never
// resets content. The bool reports whether this call created the room.
func (g *Registry) Ensure(code string) (*Room, bool) {
	code = Normalize(code)
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.rooms[code]; ok {
		return r, false
	}
	r := newRoom(code)
	g.rooms[code] = r
	return r, true
}

// Lookup returns the room without creating it.
func (g *Registry) Lookup(code string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[Normalize(code)]
	return r, ok
}

// Exists is a pure probe: true iff the room was ever touched. No mutation.
func (g *Registry) Exists(code string) bool {
	_, ok := g.Lookup(code)
	return ok
}

// Content returns the room's current buffer, or ErrRoomNotFound if the
// room was never created. Callers wanting create-on-demand use Ensure.
func (g *Registry) Content(code string) (string, error) {
	r, ok := g.Lookup(code)
	if !ok {
		return "", ErrRoomNotFound
	}
	return r.Content(), nil
}

// SetContent overwrites the room's buffer, creating the room first if
// needed: a room exists once any operation references it.
func (g *Registry) SetContent(code, text string) {
	r, _ := g.Ensure(code)
	r.SetContent(text)
}

// Len reports the number of known rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
