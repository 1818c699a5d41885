// Package session implements the long-lived in-memory registry of named
// game rooms: seat assignment via opaque session tokens, the
// playing/counting/terminal state machine, and the pull-based
// generation-counter sync protocol that sits on top of the rules engine.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/fcarvajalbrown/goweiqi/internal/rules"
)

// DefaultInteriorSize and DefaultKomi are used whenever a room is created without
// an explicit board size (the join-game endpoint carries none).
const (
	DefaultInteriorSize = 19
	DefaultKomi         = 6.5

	// CleanupDelay is how long a terminal room lingers in the registry
	// before the eviction task removes it.
	CleanupDelay = 60 * time.Second
)

// PlayerSeat binds a colour slot to an opaque bearer session token. The
// colour is implicit in which field of PlayersState holds the seat.
type PlayerSeat struct {
	SessionToken string
}

// PlayersState is the pair of seats for a room; either may be empty.
type PlayersState struct {
	Black *PlayerSeat
	White *PlayerSeat
}

// Phase is the room's play-side position in the state machine (seating is
// tracked by PlayersState, not here). It is never stored: Phase() derives it
// from the board on every call, reading the move history for the
// playing/counting split.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseCounting
	PhaseTerminal
)

// ReadyToCount tracks each seated player's declaration that they are
// satisfied with the current dead-group selection and want the score
// computed.
type ReadyToCount struct {
	Black bool
	White bool
}

// Room is one game: a board, its seat assignments, the monotonic
// generation counter driving the sync protocol, and the auxiliary state
// needed for the counting phase.
// Room carries no lock of its own: the registry's single process-wide
// mutex covers every room, matching the "coarse lock over everything" model
// from the spec (§4.5/§5) rather than per-room fine-grained locking.
type Room struct {
	ID      string
	Board   *rules.Board
	Players PlayersState

	Generation int

	GroupsMarkedDead [][]rules.Loc
	ReadyToCount     ReadyToCount

	GuessStones map[rules.Player][]Stone

	cleanupTimer *time.Timer
}

// Stone is a tentative dead-stone mark exchanged over the guess-stones
// sidechannel during counting discussion. No validation is performed on
// the coordinates the caller supplies.
type Stone struct {
	Row, Col int
}

// NewRoom creates an empty lobby room with a fresh default-sized board.
func NewRoom(id string) *Room {
	return &Room{
		ID:          id,
		Board:       rules.NewBoard(DefaultInteriorSize+2, DefaultInteriorSize+2, DefaultKomi),
		GuessStones: make(map[rules.Player][]Stone),
	}
}

// Phase derives the room's current phase from its board state.
func (r *Room) Phase() Phase {
	if r.Board.Winner() != nil {
		return PhaseTerminal
	}
	if r.Board.LastTwoMovesArePass() {
		return PhaseCounting
	}
	return PhasePlaying
}

// seatToken returns the token, if any, seated at the given colour.
func (r *Room) seatToken(color rules.Player) string {
	seat := r.seatFor(color)
	if seat == nil {
		return ""
	}
	return seat.SessionToken
}

func (r *Room) seatFor(color rules.Player) *PlayerSeat {
	if color == rules.PlayerBlack {
		return r.Players.Black
	}
	return r.Players.White
}

func (r *Room) setSeat(color rules.Player, seat *PlayerSeat) {
	if color == rules.PlayerBlack {
		r.Players.Black = seat
	} else {
		r.Players.White = seat
	}
}

// colorForToken reports which colour (if any) is seated with this token.
func (r *Room) colorForToken(token string) (rules.Player, bool) {
	if token == "" {
		return 0, false
	}
	if r.Players.Black != nil && r.Players.Black.SessionToken == token {
		return rules.PlayerBlack, true
	}
	if r.Players.White != nil && r.Players.White.SessionToken == token {
		return rules.PlayerWhite, true
	}
	return 0, false
}

// bumpGeneration increments the room's monotonic counter; called by every
// state-changing operation, exactly once each.
func (r *Room) bumpGeneration() {
	r.Generation++
}

// resetReadiness clears both readiness flags (the dead-group selection is
// left as it is), called whenever a new dead-group toggle arrives.
func (r *Room) resetReadiness() {
	r.ReadyToCount = ReadyToCount{}
}

func newSessionToken() string {
	return uuid.NewString()
}

// armCleanup schedules removal of this room from the registry after
// CleanupDelay once the room has reached a terminal state. Fire-and-forget:
// if the room has already been removed (including via reset-memory), the
// eviction is a no-op.
func (r *Room) armCleanup(registry *Registry) {
	if r.cleanupTimer != nil {
		r.cleanupTimer.Stop()
	}
	id := r.ID
	r.cleanupTimer = time.AfterFunc(CleanupDelay, func() {
		registry.evict(id, r)
	})
}
