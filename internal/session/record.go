package session

import (
	"fmt"
	"strings"

	"github.com/fcarvajalbrown/goweiqi/internal/rules"
)

// GetGameRecord renders an SGF-like text blob of the room's full move
// history — the exact format is left to the engine (per spec §6); this one
// is ours: one line per move, "B[row,col]" / "W[pass]".
func (reg *Registry) GetGameRecord(matchString string) (string, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return "", errNotFound(matchString)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "; goweiqi game record: %s\n", matchString)
	for _, mv := range room.Board.MoveHistory() {
		tag := "B"
		if mv.Player == rules.PlayerWhite {
			tag = "W"
		}
		if mv.Loc.IsPass() {
			fmt.Fprintf(&sb, "%s[pass]\n", tag)
			continue
		}
		fmt.Fprintf(&sb, "%s[%d,%d]\n", tag, mv.Loc.Row-1, mv.Loc.Col-1)
	}
	if result := room.Board.Winner(); result != nil {
		fmt.Fprintf(&sb, "; result: %s\n", result.String())
	}
	return sb.String(), nil
}
