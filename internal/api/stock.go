package api

import (
	"net/http"

	"github.com/awrteam/awr/internal/access"
	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/domain/inventory"
	"github.com/labstack/echo/v4"
)

func parseLocation(locType string, teamID *int64) (inventory.Location, error) {
	switch inventory.LocationType(locType) {
	case inventory.LocWarehouse:
		return inventory.Warehouse(), nil
	case inventory.LocTeam:
		if teamID == nil || *teamID <= 0 {
			return inventory.Location{}, apperrors.NewValidationError("не указана бригада")
		}
		return inventory.Team(*teamID), nil
	}
	return inventory.Location{}, apperrors.NewValidationError("некорректный тип локации")
}

type materialDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func (s *Server) handleMaterialList(c echo.Context) error {
	list, err := s.deps.Materials.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]materialDTO, 0, len(list))
	for _, m := range list {
		out = append(out, materialDTO{ID: m.ID, Name: m.Name, Unit: m.Unit})
	}
	return c.JSON(http.StatusOK, out)
}

type stockItemDTO struct {
	MaterialID int64   `json:"material_id"`
	Qty        float64 `json:"qty"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamStockDTO struct {
	Team  teamDTO        `json:"team"`
	Items []stockItemDTO `json:"items"`
}

type stockTeamsResponse struct {
	Teams     []teamStockDTO `json:"teams"`
	Warehouse []stockItemDTO `json:"warehouse"`
	Materials []materialDTO  `json:"materials"`
}

func stockItems(entries []inventory.StockEntry) []stockItemDTO {
	out := make([]stockItemDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, stockItemDTO{MaterialID: e.MaterialID, Qty: e.Qty})
	}
	return out
}

func (s *Server) handleStockTeams(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpStockView) {
		return apperrors.ErrForbidden
	}
	ctx := c.Request().Context()

	teamList, err := s.deps.Teams.List(ctx)
	if err != nil {
		return err
	}
	resp := stockTeamsResponse{Teams: make([]teamStockDTO, 0, len(teamList))}
	for _, t := range teamList {
		entries, err := s.deps.Ledger.StockByLocation(ctx, inventory.Team(t.ID))
		if err != nil {
			return err
		}
		resp.Teams = append(resp.Teams, teamStockDTO{
			Team:  teamDTO{ID: t.ID, Name: t.Name},
			Items: stockItems(entries),
		})
	}

	warehouse, err := s.deps.Ledger.StockByLocation(ctx, inventory.Warehouse())
	if err != nil {
		return err
	}
	resp.Warehouse = stockItems(warehouse)

	mats, err := s.deps.Materials.List(ctx)
	if err != nil {
		return err
	}
	resp.Materials = make([]materialDTO, 0, len(mats))
	for _, m := range mats {
		resp.Materials = append(resp.Materials, materialDTO{ID: m.ID, Name: m.Name, Unit: m.Unit})
	}

	return c.JSON(http.StatusOK, resp)
}

type moveMaterialPayload struct {
	MaterialID int64   `json:"material_id" validate:"required"`
	FromType   string  `json:"from_type" validate:"required"`
	FromID     *int64  `json:"from_id"`
	ToType     string  `json:"to_type" validate:"required"`
	ToID       *int64  `json:"to_id"`
	Qty        float64 `json:"qty" validate:"required"`
	Reason     string  `json:"reason"`
}

func (s *Server) handleStockMove(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpStockMove) {
		return apperrors.ErrForbidden
	}

	var req moveMaterialPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	from, err := parseLocation(req.FromType, req.FromID)
	if err != nil {
		return err
	}
	to, err := parseLocation(req.ToType, req.ToID)
	if err != nil {
		return err
	}

	if err := s.deps.Ledger.Move(c.Request().Context(), req.MaterialID, from, to, req.Qty, req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type addInstrumentPayload struct {
	Name   string `json:"name" validate:"required"`
	Serial string `json:"serial" validate:"required"`
}

func (s *Server) handleInstrumentAdd(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpInstrumentManage) {
		return apperrors.ErrForbidden
	}

	var req addInstrumentPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := s.deps.Ledger.AddInstrument(c.Request().Context(), req.Name, req.Serial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"id": id})
}

type moveInstrumentPayload struct {
	InstrumentID int64  `json:"instrument_id" validate:"required"`
	ToType       string `json:"to_type" validate:"required"`
	ToID         *int64 `json:"to_id"`
	Reason       string `json:"reason"`
}

func (s *Server) handleInstrumentMove(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpInstrumentManage) {
		return apperrors.ErrForbidden
	}

	var req moveInstrumentPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	to, err := parseLocation(req.ToType, req.ToID)
	if err != nil {
		return err
	}

	if err := s.deps.Ledger.MoveInstrument(c.Request().Context(), req.InstrumentID, to, req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type holdingDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Serial       string `json:"serial"`
	LocationType string `json:"location_type"`
	LocationID   *int64 `json:"location_id"`
}

func (s *Server) handleHoldings(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpStockView) {
		return apperrors.ErrForbidden
	}

	holdings, err := s.deps.Ledger.Holdings(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]holdingDTO, 0, len(holdings))
	for _, h := range holdings {
		dto := holdingDTO{
			ID: h.Instrument.ID, Name: h.Instrument.Name, Serial: h.Instrument.Serial,
			LocationType: string(h.Location.Type),
		}
		if h.Location.Type == inventory.LocTeam {
			id := h.Location.TeamID
			dto.LocationID = &id
		}
		out = append(out, dto)
	}
	return c.JSON(http.StatusOK, out)
}
