package rules

import (
	"fmt"
	"strings"
)

// ResultKind distinguishes the three ways a game can end.
type ResultKind int

const (
	ResultPoints ResultKind = iota
	ResultResignation
	ResultDraw
)

// GameResult is the sum type Points(player, margin) | Resignation(player) |
// Draw described in the spec. Margin is only meaningful for ResultPoints.
type GameResult struct {
	Kind   ResultKind
	Player Player
	Margin float64
}

// Points builds a margin-of-victory result.
func Points(p Player, margin float64) GameResult {
	return GameResult{Kind: ResultPoints, Player: p, Margin: margin}
}

// Resignation builds a resignation result; Player is the winner (the
// opponent of whoever resigned).
func Resignation(winner Player) GameResult {
	return GameResult{Kind: ResultResignation, Player: winner}
}

// Draw builds a drawn result.
func Draw() GameResult {
	return GameResult{Kind: ResultDraw}
}

// String renders the result the way the source engine's display form does.
func (r GameResult) String() string {
	switch r.Kind {
	case ResultDraw:
		return "D R A W !"
	case ResultResignation:
		if r.Player == PlayerBlack {
			return "Black + R"
		}
		return "White + R"
	default:
		name := r.Player.String()
		return fmt.Sprintf("%s +%s", strings.ToUpper(name[:1])+name[1:], trimMargin(r.Margin))
	}
}

// trimMargin renders a margin the way the source does: integral margins
// print without a decimal point ("White +5"), fractional ones with one
// ("Black +7.5").
func trimMargin(m float64) string {
	if m == float64(int64(m)) {
		return fmt.Sprintf("%d", int64(m))
	}
	return fmt.Sprintf("%g", m)
}
