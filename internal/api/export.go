package api

import (
	"net/http"

	"github.com/awrteam/awr/internal/access"
	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/domain/inventory"
	"github.com/awrteam/awr/internal/export"
	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportExcel rebuilds the workbook from current ledger state: full
// material catalog against warehouse stock (zero rows included), per-team
// stock, and the instrument roster with resolved location labels.
func (s *Server) handleExportExcel(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpExport) {
		return apperrors.ErrForbidden
	}
	ctx := c.Request().Context()

	mats, err := s.deps.Materials.List(ctx)
	if err != nil {
		return err
	}
	matNames := make(map[int64]string, len(mats))
	for _, m := range mats {
		matNames[m.ID] = m.Name
	}

	warehouse, err := s.deps.Ledger.StockByLocation(ctx, inventory.Warehouse())
	if err != nil {
		return err
	}
	whQty := make(map[int64]float64, len(warehouse))
	for _, e := range warehouse {
		whQty[e.MaterialID] = e.Qty
	}
	whRows := make([]export.WarehouseRow, 0, len(mats))
	for _, m := range mats {
		whRows = append(whRows, export.WarehouseRow{
			MaterialID: m.ID, Name: m.Name, Unit: m.Unit, Qty: whQty[m.ID],
		})
	}

	teamList, err := s.deps.Teams.List(ctx)
	if err != nil {
		return err
	}
	teamNames := make(map[int64]string, len(teamList))
	var teamRows []export.TeamRow
	for _, t := range teamList {
		teamNames[t.ID] = t.Name
		entries, err := s.deps.Ledger.StockByLocation(ctx, inventory.Team(t.ID))
		if err != nil {
			return err
		}
		for _, e := range entries {
			teamRows = append(teamRows, export.TeamRow{
				Team: t.Name, Material: matNames[e.MaterialID], Qty: e.Qty,
			})
		}
	}

	holdings, err := s.deps.Ledger.Holdings(ctx)
	if err != nil {
		return err
	}
	instRows := make([]export.InstrumentRow, 0, len(holdings))
	for _, h := range holdings {
		label := "Склад"
		if h.Location.Type == inventory.LocTeam {
			label = teamNames[h.Location.TeamID]
		}
		instRows = append(instRows, export.InstrumentRow{
			Name: h.Instrument.Name, Serial: h.Instrument.Serial, Location: label,
		})
	}

	data, err := export.Workbook(whRows, teamRows, instRows)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="awr-export.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
