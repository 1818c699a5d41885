package session

import (
	"fmt"
	"math/rand"

	"github.com/fcarvajalbrown/goweiqi/internal/rules"
)

// JoinRequest mirrors the join-game endpoint's request body.
type JoinRequest struct {
	MatchString  string
	SessionToken string
	IsSpectator  bool
}

// JoinResult mirrors the join-game endpoint's response body. Color and
// SessionToken are empty for a spectator.
type JoinResult struct {
	Color        string
	RedirectURL  string
	SessionToken string
}

// Join implements the seat-assignment/reconnect state machine from spec
// §4.4: Lobby seats randomly, Half-seated fills the vacancy (or reattaches
// a matching token), Fully-seated reattaches a matching token or else
// hands out a spectator view.
func (reg *Registry) Join(req JoinRequest) JoinResult {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room := reg.getOrCreate(req.MatchString)

	if color, ok := room.colorForToken(req.SessionToken); ok {
		return JoinResult{
			Color:        color.String(),
			RedirectURL:  redirectURL(req.MatchString, color),
			SessionToken: req.SessionToken,
		}
	}

	blackSeated := room.Players.Black != nil
	whiteSeated := room.Players.White != nil

	switch {
	case !blackSeated && !whiteSeated:
		if req.IsSpectator {
			return spectatorResult(req.MatchString)
		}
		color := rules.PlayerBlack
		if rand.Intn(2) == 1 {
			color = rules.PlayerWhite
		}
		return room.seatNewPlayer(color, req.MatchString)

	case blackSeated != whiteSeated:
		vacant := rules.PlayerBlack
		if blackSeated {
			vacant = rules.PlayerWhite
		}
		return room.seatNewPlayer(vacant, req.MatchString)

	default:
		return spectatorResult(req.MatchString)
	}
}

func (r *Room) seatNewPlayer(color rules.Player, matchString string) JoinResult {
	token := newSessionToken()
	r.setSeat(color, &PlayerSeat{SessionToken: token})
	return JoinResult{
		Color:        color.String(),
		RedirectURL:  redirectURL(matchString, color),
		SessionToken: token,
	}
}

func spectatorResult(matchString string) JoinResult {
	return JoinResult{RedirectURL: fmt.Sprintf("/match/%s?spectator=true", matchString)}
}

func redirectURL(matchString string, color rules.Player) string {
	return fmt.Sprintf("/match/%s?color=%s", matchString, color.String())
}

// Dimensions returns the playable-interior size for a room, creating it if
// necessary (a dimensions probe before any join is harmless).
func (reg *Registry) Dimensions(matchString string) (rows, cols int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room := reg.getOrCreate(matchString)
	return room.Board.InteriorSize()
}
