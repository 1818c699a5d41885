package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, b *Board, player Player, row, col int) bool {
	t.Helper()
	return b.Play(Move{Player: player, Loc: Loc{Row: row, Col: col}})
}

func TestStonesHaveToBePlacedOnEmptyFields(t *testing.T) {
	b := NewBoard(5, 5, 0.0)
	require.Equal(t, Empty, b.Get(Loc{Row: 1, Col: 1}))

	play(t, b, PlayerBlack, 1, 1)
	assert.Equal(t, Black, b.Get(Loc{Row: 1, Col: 1}))

	play(t, b, PlayerWhite, 1, 1)
	assert.Equal(t, Black, b.Get(Loc{Row: 1, Col: 1}), "occupied cell rejects the move")

	play(t, b, PlayerWhite, 1, 2)
	assert.Equal(t, White, b.Get(Loc{Row: 1, Col: 2}))

	play(t, b, PlayerBlack, 1, 2)
	assert.Equal(t, White, b.Get(Loc{Row: 1, Col: 2}), "occupied cell rejects the move")
}

func playGroups(b *Board, player Player, locs []Loc) {
	for _, l := range locs {
		b.Play(Move{Player: player, Loc: l})
	}
}

func elevenByElevenGroups() (black, white []Loc) {
	black = []Loc{
		{1, 1}, {1, 2},
		{4, 1}, {5, 1},
		{3, 3}, {3, 4}, {4, 3},
		{4, 7}, {5, 7}, {6, 7},
	}
	white = []Loc{
		{2, 2}, {3, 1}, {3, 2}, {4, 2},
		{9, 1},
		{6, 2}, {6, 3}, {7, 2}, {7, 3}, {8, 2},
	}
	return
}

func TestStonesAreGroupedCorrectly(t *testing.T) {
	b := NewBoard(11, 11, 2.0)
	black, white := elevenByElevenGroups()
	playGroups(b, PlayerBlack, black)
	playGroups(b, PlayerWhite, white)

	group1 := b.GroupStones(Loc{1, 1})
	assert.Equal(t, []Loc{{1, 1}, {1, 2}}, group1)
	assert.Equal(t, group1, b.GroupStones(Loc{1, 2}))

	group5 := b.GroupStones(Loc{2, 2})
	assert.Equal(t, []Loc{{2, 2}, {3, 1}, {3, 2}, {4, 2}}, group5)

	group6 := b.GroupStones(Loc{9, 1})
	assert.Equal(t, []Loc{{9, 1}}, group6)
}

func TestLibertiesAreCalculatedCorrectly(t *testing.T) {
	b := NewBoard(11, 11, 2.0)
	black, white := elevenByElevenGroups()
	playGroups(b, PlayerBlack, black)
	playGroups(b, PlayerWhite, white)

	assert.Equal(t, 2, b.countLiberties(Loc{1, 1}))
	assert.Equal(t, 2, b.countLiberties(Loc{4, 1}))
	assert.Equal(t, 5, b.countLiberties(Loc{3, 3}))
	assert.Equal(t, 8, b.countLiberties(Loc{4, 7}))
	assert.Equal(t, 3, b.countLiberties(Loc{2, 2}))
	assert.Equal(t, 2, b.countLiberties(Loc{9, 1}))
	assert.Equal(t, 9, b.countLiberties(Loc{6, 2}))
}

func TestGroupsAreRemovedCorrectly(t *testing.T) {
	b := NewBoard(11, 11, 2.0)
	black, white := elevenByElevenGroups()
	playGroups(b, PlayerBlack, black)
	playGroups(b, PlayerWhite, white)

	b.removeGroup(Loc{1, 1})
	assert.Equal(t, Empty, b.Get(Loc{1, 1}))
	assert.Equal(t, Empty, b.Get(Loc{1, 2}))

	b.removeGroup(Loc{9, 1})
	assert.Equal(t, Empty, b.Get(Loc{9, 1}))
}

func TestGroupsRemovalIsTriggeredWhenLibertiesReachZero(t *testing.T) {
	b := NewBoard(11, 11, 2.0)

	blackGroup := []Loc{{1, 1}, {1, 2}}
	whiteCapture := []Loc{{2, 1}, {2, 2}, {1, 3}}

	playGroups(b, PlayerBlack, blackGroup)

	for i, l := range whiteCapture {
		b.Play(Move{Player: PlayerWhite, Loc: l})
		if i+1 == len(whiteCapture) {
			for _, bl := range blackGroup {
				assert.Equal(t, Empty, b.Get(bl))
			}
		} else {
			for _, bl := range blackGroup {
				assert.Equal(t, Black, b.Get(bl))
			}
		}
	}
}

func TestUndoRestoresCapturedGroups(t *testing.T) {
	b := NewBoard(7, 5, 2.0)

	moves := []Move{
		{PlayerBlack, Loc{1, 1}},
		{PlayerWhite, Loc{1, 2}},
		{PlayerBlack, Loc{2, 1}},
		{PlayerWhite, Loc{2, 2}},
		{PlayerBlack, Loc{3, 2}},
		{PlayerWhite, Loc{3, 1}},
		{PlayerBlack, Loc{4, 1}},
		{PlayerWhite, Loc{4, 2}},
		{PlayerBlack, Loc{2, 1}},
	}
	for _, mv := range moves {
		b.Play(mv)
	}

	b.Undo()

	assert.Equal(t, Empty, b.Get(Loc{1, 1}))
	assert.Equal(t, Empty, b.Get(Loc{2, 1}))
	assert.Equal(t, White, b.Get(Loc{3, 1}))
}

// TestSimpleKo reproduces spec scenario 1: a ko capture followed by an
// immediate illegal recapture attempt.
func TestSimpleKo(t *testing.T) {
	b := NewBoard(6, 5, 2.0)

	moves := []Move{
		{PlayerBlack, Loc{3, 1}},
		{PlayerWhite, Loc{2, 1}},
		{PlayerBlack, Loc{2, 2}},
		{PlayerWhite, Loc{1, 2}},
		{PlayerBlack, Loc{1, 1}},
	}
	for _, mv := range moves {
		require.True(t, b.Play(mv))
	}

	assert.Equal(t, Empty, b.Get(Loc{2, 1}), "black's last move captured the white stone")
	assert.Equal(t, Black, b.Get(Loc{1, 1}))

	accepted := b.Play(Move{Player: PlayerWhite, Loc: Loc{2, 1}})
	assert.False(t, accepted, "immediate ko recapture must be rejected")
	assert.Equal(t, Empty, b.Get(Loc{2, 1}))
	assert.Equal(t, Black, b.Get(Loc{1, 1}))
}

// TestBoardPositionCannotBeRepeated ports the original's broader
// positional-superko regression covering several repeat attempts.
func TestBoardPositionCannotBeRepeated(t *testing.T) {
	b := NewBoard(6, 5, 2.0)

	moves := []Move{
		{PlayerBlack, Loc{3, 1}},
		{PlayerWhite, Loc{2, 1}},
		{PlayerBlack, Loc{2, 2}},
		{PlayerWhite, Loc{1, 2}},
		{PlayerBlack, Loc{1, 1}},
	}
	for _, mv := range moves {
		b.Play(mv)
	}

	b.Play(Move{Player: PlayerWhite, Loc: Loc{2, 1}})
	assert.Equal(t, Empty, b.Get(Loc{2, 1}))
	assert.Equal(t, Black, b.Get(Loc{1, 1}))

	b.Play(Move{Player: PlayerWhite, Loc: Loc{4, 3}})
	b.Play(Move{Player: PlayerBlack, Loc: Loc{3, 3}})
	b.Play(Move{Player: PlayerWhite, Loc: Loc{2, 1}})
	b.Play(Move{Player: PlayerBlack, Loc: Loc{1, 1}})

	assert.Equal(t, Empty, b.Get(Loc{1, 1}))
	assert.Equal(t, White, b.Get(Loc{2, 1}))

	b.Play(Move{Player: PlayerBlack, Loc: Loc{2, 3}})
	b.Play(Move{Player: PlayerWhite, Loc: Loc{4, 2}})
	b.Play(Move{Player: PlayerBlack, Loc: Loc{1, 1}})

	assert.Equal(t, Empty, b.Get(Loc{2, 1}))
	assert.Equal(t, Black, b.Get(Loc{1, 1}))
}

// TestBoardPointsAreCountedCorrectly reproduces spec scenario 4.
func TestBoardPointsAreCountedCorrectly(t *testing.T) {
	b := NewBoard(8, 8, 0.0)

	black := []Loc{
		{1, 2}, {1, 3}, {1, 5},
		{2, 1}, {2, 3},
		{3, 1}, {3, 3},
		{4, 2}, {5, 2}, {6, 2},
	}
	white := []Loc{
		{1, 4},
		{2, 4}, {2, 5}, {2, 6},
		{3, 4},
		{4, 4},
		{5, 1}, {5, 4},
		{6, 4},
	}
	playGroups(b, PlayerBlack, black)
	playGroups(b, PlayerWhite, white)

	blackPoints, whitePoints := b.countBoardPoints()
	assert.Equal(t, 3, blackPoints)
	assert.Equal(t, 8, whitePoints)

	result := b.CountScore(nil)
	assert.Equal(t, "White +5", result.String())
}

func TestCountingCaptures(t *testing.T) {
	b := NewBoard(8, 8, 0.0)

	black := []Loc{
		{1, 1},
		{1, 5}, {2, 6},
		{4, 1}, {5, 1}, {5, 3}, {6, 2}, {6, 3},
	}
	playGroups(b, PlayerBlack, black)

	assert.Equal(t, 0, b.WhiteCaptures())
	assert.Equal(t, 0, b.BlackCaptures())

	playGroups(b, PlayerWhite, []Loc{{1, 2}, {2, 1}})
	assert.Equal(t, 1, b.WhiteCaptures())

	playGroups(b, PlayerWhite, []Loc{{1, 4}, {2, 5}, {3, 6}, {1, 6}})
	assert.Equal(t, 3, b.WhiteCaptures())

	playGroups(b, PlayerWhite, []Loc{{3, 1}, {4, 2}, {4, 3}, {5, 2}, {5, 4}, {6, 4}, {6, 1}})
	assert.Equal(t, 8, b.WhiteCaptures())
	assert.Equal(t, 0, b.BlackCaptures())
}

func TestLastTwoMovesArePass(t *testing.T) {
	b := NewBoard(9, 9, 0.0)
	b.Play(Move{Player: PlayerBlack, Loc: Loc{1, 1}})
	assert.False(t, b.LastTwoMovesArePass())

	b.Play(Move{Player: PlayerWhite, Loc: Pass()})
	assert.False(t, b.LastTwoMovesArePass())

	b.Play(Move{Player: PlayerBlack, Loc: Pass()})
	assert.True(t, b.LastTwoMovesArePass())
}

func TestStonesInAtariTracksOwnColor(t *testing.T) {
	b := NewBoard(9, 9, 0.0)
	// A single white stone surrounded on three sides sits in atari.
	b.Play(Move{Player: PlayerWhite, Loc: Loc{4, 4}})
	b.Play(Move{Player: PlayerBlack, Loc: Loc{3, 4}})
	b.Play(Move{Player: PlayerWhite, Loc: Loc{7, 7}})
	b.Play(Move{Player: PlayerBlack, Loc: Loc{4, 3}})
	b.Play(Move{Player: PlayerWhite, Loc: Loc{7, 6}})
	b.Play(Move{Player: PlayerBlack, Loc: Loc{4, 5}})

	assert.Equal(t, 0, b.StonesInAtari.Black)
	assert.Equal(t, 1, b.StonesInAtari.White)
}

func TestGameResultStrings(t *testing.T) {
	assert.Equal(t, "Black +7.5", Points(PlayerBlack, 7.5).String())
	assert.Equal(t, "White +2", Points(PlayerWhite, 2).String())
	assert.Equal(t, "D R A W !", Draw().String())
	assert.Equal(t, "White + R", Resignation(PlayerWhite).String())
}
