package session

import "github.com/fcarvajalbrown/goweiqi/internal/rules"

// toInternal converts an external (interior, 0-indexed) coordinate to an
// internal padded-grid Loc.
func toInternal(row, col int) rules.Loc {
	return rules.Loc{Row: row + 1, Col: col + 1}
}

// CellClick implements the cell-click endpoint: a placement attempt during
// Playing, or a no-op during Counting/Terminal (dead-group marking during
// counting goes through GetGroup instead). Illegal and not-your-turn
// attempts are never errors — they return the unchanged snapshot with an
// explanatory message, per the engine's silent-rejection contract.
func (reg *Registry) CellClick(matchString, sessionToken string, row, col int) (GameSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return GameSnapshot{}, errNotFound(matchString)
	}

	viewColor, seated := room.colorForToken(sessionToken)

	if room.Phase() != PhasePlaying {
		return reg.snapshotLocked(room, viewColor, seated, "Game is not accepting moves"), nil
	}

	if !seated || viewColor != room.Board.CurrentPlayer() {
		return reg.snapshotLocked(room, viewColor, seated, "Not your turn"), nil
	}

	mv := rules.Move{Player: viewColor, Loc: toInternal(row, col)}
	if !room.Board.Play(mv) {
		return reg.snapshotLocked(room, viewColor, seated, "Illegal move"), nil
	}

	room.bumpGeneration()
	return reg.snapshotLocked(room, viewColor, seated, "Move registered"), nil
}

// Pass implements the pass endpoint: always succeeds for the player to
// move, transitioning to Counting if it's the second consecutive pass.
func (reg *Registry) Pass(matchString string, player rules.Player) (GameSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return GameSnapshot{}, errNotFound(matchString)
	}

	if player != room.Board.CurrentPlayer() {
		return reg.snapshotLocked(room, player, true, "Not your turn"), nil
	}

	room.Board.Play(rules.Move{Player: player, Loc: rules.Pass()})
	room.bumpGeneration()

	return reg.snapshotLocked(room, player, true, "Pass registered"), nil
}

// Undo implements the undo endpoint: accepted only from the player who is
// not to move (the one who just played).
func (reg *Registry) Undo(matchString string, player rules.Player) (GameSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return GameSnapshot{}, errNotFound(matchString)
	}

	if player != room.Board.CurrentPlayer().Opponent() {
		return reg.snapshotLocked(room, player, true, "Only the player who just moved may undo"), nil
	}

	room.Board.Undo()
	room.bumpGeneration()

	return reg.snapshotLocked(room, player, true, "Move undone"), nil
}

// Resign implements the resign endpoint: immediate Terminal transition and
// cleanup arming.
func (reg *Registry) Resign(matchString string, player rules.Player) (GameSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return GameSnapshot{}, errNotFound(matchString)
	}

	room.Board.SetWinner(rules.HandleResignation(player))
	room.bumpGeneration()
	room.armCleanup(reg)

	return reg.snapshotLocked(room, player, true, player.Opponent().String()+" wins by resignation"), nil
}

// GetGroup implements the get-group endpoint: toggles membership of the
// group containing (row, col) in the dead-group selection. Rejects
// spectators. Any toggle resets both ready-to-count flags.
func (reg *Registry) GetGroup(matchString, sessionToken string, row, col int) (selected [][]rules.Loc, toggled []rules.Loc, err error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return nil, nil, errNotFound(matchString)
	}

	if _, seated := room.colorForToken(sessionToken); !seated {
		return nil, nil, errUnauthorised("get-group requires a seated player")
	}

	loc := toInternal(row, col)
	if room.Board.Get(loc) == rules.Empty {
		return room.GroupsMarkedDead, nil, nil
	}

	group := room.Board.GroupStones(loc)
	room.GroupsMarkedDead = toggleGroup(room.GroupsMarkedDead, group)
	room.resetReadiness()
	room.bumpGeneration()

	return room.GroupsMarkedDead, group, nil
}

func toggleGroup(selection [][]rules.Loc, group []rules.Loc) [][]rules.Loc {
	for i, existing := range selection {
		if sameGroup(existing, group) {
			return append(selection[:i], selection[i+1:]...)
		}
	}
	return append(selection, group)
}

func sameGroup(a, b []rules.Loc) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetScore implements the get-score endpoint. A seated player's call sets
// their ready flag; only once both are ready does the server remove the
// marked dead groups and compute the final score.
func (reg *Registry) GetScore(matchString, sessionToken string, groupsToRemove [][]rules.Loc) (string, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return "", errNotFound(matchString)
	}

	color, seated := room.colorForToken(sessionToken)
	if !seated {
		return "", errUnauthorised("get-score requires a seated player")
	}

	if groupsToRemove != nil {
		room.GroupsMarkedDead = groupsToRemove
	}

	if color == rules.PlayerBlack {
		room.ReadyToCount.Black = true
	} else {
		room.ReadyToCount.White = true
	}
	room.bumpGeneration()

	if !room.ReadyToCount.Black || !room.ReadyToCount.White {
		return "Waiting for other player", nil
	}

	result := room.Board.CountScore(room.GroupsMarkedDead)
	room.Board.SetWinner(result)
	room.armCleanup(reg)

	return result.String(), nil
}

// SyncGuessStones stores the caller's tentative dead-stone marks for their
// colour and bumps generation. No validation is performed on coordinates.
func (reg *Registry) SyncGuessStones(matchString string, color rules.Player, stones []Stone) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room := reg.getOrCreate(matchString)
	room.GuessStones[color] = stones
	room.bumpGeneration()
	return nil
}
