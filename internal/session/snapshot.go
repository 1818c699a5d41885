package session

import "github.com/fcarvajalbrown/goweiqi/internal/rules"

// GameSnapshot is the full wire view of a room returned by every
// state-changing endpoint and by sync-boards. The padded grid is never
// exposed: Board is trimmed to the playable interior and each cell is
// stringified.
type GameSnapshot struct {
	Message          string     `json:"message"`
	Board            [][]string `json:"board"`
	BlackPlayerBoard [][]string `json:"black_player_board"`
	WhitePlayerBoard [][]string `json:"white_player_board"`
	CurrentPlayer    string     `json:"current_player"`

	BlackCaptures int `json:"black_captures"`
	WhiteCaptures int `json:"white_captures"`

	BlackGuessStones []Stone `json:"black_guess_stones"`
	WhiteGuessStones []Stone `json:"white_guess_stones"`

	GroupsInAtari int `json:"groups_in_atari"`
	StonesInAtari struct {
		Black int `json:"black"`
		White int `json:"white"`
	} `json:"stones_in_atari"`

	Counting bool    `json:"counting"`
	Winner   *string `json:"winner"`

	BoardGenerationNumber int  `json:"board_generation_number"`
	RejoinRequired        bool `json:"rejoin_required"`

	GroupsSelectedDuringCounting [][]rules.Loc `json:"groups_selected_during_counting"`
	ReadyToCount                 ReadyToCount  `json:"ready_to_count"`
}

func cellString(c rules.Cell) string {
	switch c {
	case rules.Black:
		return "black"
	case rules.White:
		return "white"
	default:
		return "empty"
	}
}

// wireBoard trims the padded grid to the playable interior and stringifies
// every cell. Invalid must never appear in an external view.
func wireBoard(board *rules.Board) [][]string {
	rows, cols := board.InteriorSize()
	out := make([][]string, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			out[r][c] = cellString(board.Get(rules.Loc{Row: r + 1, Col: c + 1}))
		}
	}
	return out
}

// currentPlayerTag reports the externally-visible current-player tag:
// "counting" once the room has entered the counting phase, otherwise the
// colour to move.
func currentPlayerTag(room *Room) string {
	switch room.Phase() {
	case PhaseCounting:
		return "counting"
	default:
		return room.Board.CurrentPlayer().String()
	}
}

// snapshotLocked builds a GameSnapshot for the given viewing colour. Caller
// must already hold reg.mu. If the viewer is seated but their seat is
// somehow detached (shouldn't normally happen outside of ShouldSync's
// rejoin signal), a rejoin-required snapshot is returned instead.
func (reg *Registry) snapshotLocked(room *Room, viewColor rules.Player, seated bool, message string) GameSnapshot {
	board := room.Board

	var winner *string
	if result := board.Winner(); result != nil {
		s := result.String()
		winner = &s
	}

	snap := GameSnapshot{
		Message:                      message,
		Board:                        wireBoard(board),
		CurrentPlayer:                currentPlayerTag(room),
		BlackCaptures:                board.BlackCaptures(),
		WhiteCaptures:                board.WhiteCaptures(),
		BlackGuessStones:             room.GuessStones[rules.PlayerBlack],
		WhiteGuessStones:             room.GuessStones[rules.PlayerWhite],
		Counting:                     room.Phase() == PhaseCounting,
		Winner:                       winner,
		BoardGenerationNumber:        room.Generation,
		RejoinRequired:               seated && room.seatToken(viewColor) == "",
		GroupsSelectedDuringCounting: room.GroupsMarkedDead,
		ReadyToCount:                 room.ReadyToCount,
	}
	snap.BlackPlayerBoard = snap.Board
	snap.WhitePlayerBoard = snap.Board
	snap.StonesInAtari.Black = board.StonesInAtari.Black
	snap.StonesInAtari.White = board.StonesInAtari.White
	snap.GroupsInAtari = len(board.GroupsInAtari.Black) + len(board.GroupsInAtari.White)
	return snap
}

// SyncResult is the response shape for get-board-interaction-number.
type SyncResult struct {
	ShouldSync            bool
	MoveNumber            int
	BoardGenerationNumber int
	Winner                *string
	RejoinRequired        bool
}

// ShouldSync implements the get-board-interaction-number endpoint: a
// lightweight poll telling the client whether a full sync-boards call is
// warranted.
func (reg *Registry) ShouldSync(matchString string, color rules.Player, frontendGeneration int) (SyncResult, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return SyncResult{}, errNotFound(matchString)
	}

	var winner *string
	if result := room.Board.Winner(); result != nil {
		s := result.String()
		winner = &s
	}

	return SyncResult{
		ShouldSync:            room.Generation > frontendGeneration,
		MoveNumber:            len(room.Board.MoveHistory()),
		BoardGenerationNumber: room.Generation,
		Winner:                winner,
		RejoinRequired:        room.seatToken(color) == "",
	}, nil
}

// SyncBoards implements the sync-boards endpoint: a full snapshot from the
// given colour's point of view.
func (reg *Registry) SyncBoards(matchString string, color rules.Player) (GameSnapshot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.get(matchString)
	if !ok {
		return GameSnapshot{}, errNotFound(matchString)
	}

	return reg.snapshotLocked(room, color, true, "Synced"), nil
}
