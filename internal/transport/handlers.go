package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fcarvajalbrown/goweiqi/internal/rules"
	"github.com/fcarvajalbrown/goweiqi/internal/session"
)

// Handlers wires the registry into echo route handlers. The registry is an
// explicit dependency rather than a package-level global, per the spec's
// design note against ambient global state.
type Handlers struct {
	Registry *session.Registry
}

// NewHandlers builds a Handlers bound to the given registry.
func NewHandlers(registry *session.Registry) *Handlers {
	return &Handlers{Registry: registry}
}

// Register attaches every endpoint from spec §6 to the given echo instance.
func (h *Handlers) Register(e *echo.Echo) {
	e.POST("/join-game", h.JoinGame)
	e.POST("/dimensions", h.Dimensions)
	e.POST("/cell-click", h.CellClick)
	e.POST("/get-group", h.GetGroup)
	e.POST("/get-score", h.GetScore)
	e.POST("/pass", h.Pass)
	e.POST("/undo", h.Undo)
	e.POST("/resign", h.Resign)
	e.POST("/get-board-interaction-number", h.GetBoardInteractionNumber)
	e.POST("/sync-boards", h.SyncBoards)
	e.POST("/sync-guess-stones", h.SyncGuessStones)
	e.POST("/reset-memory", h.ResetMemory)
	e.POST("/get-all-games", h.GetAllGames)
	e.POST("/get-game-record", h.GetGameRecord)
}

func asHTTPError(err error) error {
	sessErr, ok := err.(*session.Error)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	switch sessErr.Kind {
	case session.ErrNotFound:
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "Game room not found"})
	case session.ErrUnauthorised:
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{"error": sessErr.Message})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": sessErr.Message})
	}
}

func (h *Handlers) JoinGame(c echo.Context) error {
	var req joinGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.Registry.Join(session.JoinRequest{
		MatchString:  req.MatchString,
		SessionToken: req.SessionToken,
		IsSpectator:  req.IsSpectator,
	})

	return c.JSON(http.StatusOK, joinGameResponse{
		Color:        result.Color,
		RedirectURL:  result.RedirectURL,
		SessionToken: result.SessionToken,
	})
}

func (h *Handlers) Dimensions(c echo.Context) error {
	var req dimensionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, cols := h.Registry.Dimensions(req.MatchString)
	return c.JSON(http.StatusOK, dimensionsResponse{Rows: rows, Cols: cols})
}

func (h *Handlers) CellClick(c echo.Context) error {
	var req cellClickRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.Registry.CellClick(req.MatchString, req.SessionToken, req.Row, req.Col)
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handlers) GetGroup(c echo.Context) error {
	var req getGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	selected, toggled, err := h.Registry.GetGroup(req.MatchString, req.SessionToken, req.Row, req.Col)
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, getGroupResponse{
		Selected: groupsToDTO(selected),
		Toggle:   groupToDTO(toggled),
	})
}

func (h *Handlers) GetScore(c echo.Context) error {
	var req getScoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.Registry.GetScore(req.MatchString, req.SessionToken, groupsFromDTO(req.GroupsToRemove))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, message)
}

func (h *Handlers) Pass(c echo.Context) error {
	var req playerActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.Registry.Pass(req.MatchString, rules.PlayerFromString(req.Player))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handlers) Undo(c echo.Context) error {
	var req playerActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.Registry.Undo(req.MatchString, rules.PlayerFromString(req.Player))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handlers) Resign(c echo.Context) error {
	var req playerActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.Registry.Resign(req.MatchString, rules.PlayerFromString(req.Player))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handlers) GetBoardInteractionNumber(c echo.Context) error {
	var req syncProbeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.Registry.ShouldSync(req.MatchString, rules.PlayerFromString(req.Player), req.FrontendBoardGenerationNumber)
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, syncProbeResponse{
		ShouldSync:            result.ShouldSync,
		MoveNumber:            result.MoveNumber,
		BoardGenerationNumber: result.BoardGenerationNumber,
		Winner:                result.Winner,
		RejoinRequired:        result.RejoinRequired,
	})
}

func (h *Handlers) SyncBoards(c echo.Context) error {
	var req syncBoardsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.Registry.SyncBoards(req.MatchString, rules.PlayerFromString(req.Player))
	if err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handlers) SyncGuessStones(c echo.Context) error {
	var req syncGuessStonesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stones := make([]session.Stone, len(req.Stones))
	for i, s := range req.Stones {
		stones[i] = session.Stone{Row: s.Row, Col: s.Col}
	}

	if err := h.Registry.SyncGuessStones(req.MatchString, rules.PlayerFromString(req.Color), stones); err != nil {
		return asHTTPError(err)
	}
	return c.JSON(http.StatusOK, "Stones synced")
}

func (h *Handlers) ResetMemory(c echo.Context) error {
	h.Registry.ResetMemory()
	return c.NoContent(http.StatusOK)
}

func (h *Handlers) GetAllGames(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Registry.GetAllGames())
}

func (h *Handlers) GetGameRecord(c echo.Context) error {
	var req gameRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.Registry.GetGameRecord(req.MatchString)
	if err != nil {
		return asHTTPError(err)
	}
	return c.String(http.StatusOK, record)
}
