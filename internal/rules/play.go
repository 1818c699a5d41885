package rules

// Play attempts to play mv. It returns true iff the move was legal and has
// been committed to the board. Illegal moves are a silent no-op per the
// engine's error-handling contract: callers detect invalidity by comparing
// pre- and post-grid state, never by an error value.
func (b *Board) Play(mv Move) bool {
	if !b.moveIsValid(mv) {
		return false
	}
	b.unsafePlay(mv)
	b.updateGroupsInAtari()
	return true
}

// moveIsValid clones the board, executes the move on the clone, and
// derives legality from the resulting state: not suicide, not a positional
// superko repeat of any grid already in the snapshot set, and not an illegal
// simple-ko recapture.
func (b *Board) moveIsValid(mv Move) bool {
	if mv.Loc.IsPass() {
		return true
	}

	if !mv.Loc.isOnBoard(b.rows, b.cols) {
		return false
	}
	if b.Get(mv.Loc) != Empty {
		return false
	}

	candidate := b.clone()
	candidate.unsafePlay(mv)

	moveIsSuicidal := candidate.Get(mv.Loc) == Empty
	key := candidate.snapshotKey()
	_, boardIsRepeated := b.snapshotSet[key]
	koCaptureIsIllegal := candidate.checkIllegalKoRecapture()

	if koCaptureIsIllegal || moveIsSuicidal || boardIsRepeated {
		return false
	}

	return true
}

// checkIllegalKoRecapture is the cheap simple-ko fast path: if the
// snapshot two entries before the just-produced one (the third-newest in the
// history) equals the just-produced snapshot, the move is
// an illegal immediate recapture. This runs alongside, not instead of,
// positional superko.
func (b *Board) checkIllegalKoRecapture() bool {
	if len(b.snapshotHistory) < 5 {
		return false
	}
	current := b.snapshotHistory[len(b.snapshotHistory)-1]
	threeAgo := b.snapshotHistory[len(b.snapshotHistory)-3]
	return current == threeAgo
}

// unsafePlay places the stone and resolves captures with no legality
// checking at all; callers must have already validated the move (or be
// deliberately probing a cloned board to determine validity).
func (b *Board) unsafePlay(mv Move) {
	b.moveHistory = append(b.moveHistory, mv)

	if mv.Loc.IsPass() {
		b.currentPlayer = b.currentPlayer.Opponent()
		return
	}

	b.set(mv.Loc, mv.Player.Color())
	b.currentPlayer = b.currentPlayer.Opponent()

	b.captureSurroundingDeadStones(mv)

	// If the placed group still has no liberties, it was suicide: remove it
	// (scoring the capture to the opponent).
	if b.countLiberties(mv.Loc) == 0 {
		b.removeGroup(mv.Loc)
	}

	key := b.snapshotKey()
	b.snapshotSet[key] = struct{}{}
	b.snapshotHistory = append(b.snapshotHistory, key)
}

// captureSurroundingDeadStones removes every opponent group adjacent to the
// just-placed stone's group that has been left with zero liberties.
// Resolved before self-capture detection so that moves filling an enemy
// group's last liberty while emptying the placer's own last liberty count
// as legal captures, not suicide.
func (b *Board) captureSurroundingDeadStones(mv Move) {
	group := b.groupStones(mv.Loc)
	opponentStones := b.adjacentOpponentStones(group)

	for loc := range opponentStones {
		if b.countLiberties(loc) == 0 {
			b.removeGroup(loc)
		}
	}
}

// updateGroupsInAtari recomputes which groups have exactly one liberty,
// partitioned by colour, after a committed move.
func (b *Board) updateGroupsInAtari() {
	seen := make(map[string][]Loc)
	for row := 1; row < b.rows-1; row++ {
		for col := 1; col < b.cols-1; col++ {
			loc := Loc{Row: row, Col: col}
			if b.Get(loc) == Empty {
				continue
			}
			if b.countLiberties(loc) != 1 {
				continue
			}
			group := b.groupStones(loc)
			seen[groupKey(group)] = group
		}
	}

	var black, white [][]Loc
	for _, group := range seen {
		if b.Get(group[0]) == Black {
			black = append(black, group)
		} else {
			white = append(white, group)
		}
	}

	b.GroupsInAtari = GroupsInAtari{Black: black, White: white}
	// StonesInAtari counts groups (not stones) in atari per colour; the
	// original engine's White count was a black.len() copy-paste bug, fixed
	// here so White reflects its own group count.
	b.StonesInAtari = StonesInAtari{Black: len(black), White: len(white)}
}

func groupKey(group []Loc) string {
	b := make([]byte, 0, len(group)*8)
	for _, l := range group {
		b = append(b, byte(l.Row), byte(l.Row>>8), byte(l.Col), byte(l.Col>>8))
	}
	return string(b)
}

// clone deep-copies the board for speculative move evaluation.
func (b *Board) clone() *Board {
	fields := make([][]Cell, len(b.fields))
	for i, row := range b.fields {
		fields[i] = append([]Cell(nil), row...)
	}
	snapshotSet := make(map[string]struct{}, len(b.snapshotSet))
	for k := range b.snapshotSet {
		snapshotSet[k] = struct{}{}
	}
	repeated := make(map[string]struct{}, len(b.repeatedSnapshot))
	for k := range b.repeatedSnapshot {
		repeated[k] = struct{}{}
	}
	return &Board{
		rows:             b.rows,
		cols:             b.cols,
		fields:           fields,
		snapshotSet:      snapshotSet,
		repeatedSnapshot: repeated,
		snapshotHistory:  append([]string(nil), b.snapshotHistory...),
		moveHistory:      append([]Move(nil), b.moveHistory...),
		currentPlayer:    b.currentPlayer,
		komi:             b.komi,
		blackCaptures:    b.blackCaptures,
		whiteCaptures:    b.whiteCaptures,
	}
}

// LastTwoMovesArePass reports whether the last two history entries are both
// the pass sentinel, explicitly checking IsPass rather than comparing
// locations for equality (the source compared loc==loc, which happens to
// work but doesn't actually assert "is a pass").
func (b *Board) LastTwoMovesArePass() bool {
	n := len(b.moveHistory)
	if n < 2 {
		return false
	}
	return b.moveHistory[n-2].Loc.IsPass() && b.moveHistory[n-1].Loc.IsPass()
}

// Undo removes the last move and replays every prior move against a fresh
// board. O(n^2) in move count, traded for correctness simplicity over
// per-move inverse bookkeeping.
func (b *Board) Undo() {
	if len(b.moveHistory) == 0 {
		return
	}

	history := append([]Move(nil), b.moveHistory[:len(b.moveHistory)-1]...)
	fresh := b.reset()
	*b = *fresh

	for _, mv := range history {
		b.Play(mv)
	}
}
