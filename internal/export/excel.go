// Package export builds the three-sheet inventory workbook: warehouse stock,
// per-team stock and the instrument roster.
package export

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

const (
	SheetWarehouse   = "Склад материалы"
	SheetTeams       = "Материалы по бригадам"
	SheetInstruments = "Инструмент"
)

type WarehouseRow struct {
	MaterialID int64
	Name       string
	Unit       string
	Qty        float64
}

type TeamRow struct {
	Team     string
	Material string
	Qty      float64
}

type InstrumentRow struct {
	Name     string
	Serial   string
	Location string
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, data [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

// Workbook renders the rows into an xlsx file. The caller regenerates the rows
// from current ledger state on each request.
func Workbook(warehouse []WarehouseRow, teams []TeamRow, instruments []InstrumentRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetWarehouse); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetTeams); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetInstruments); err != nil {
		return nil, err
	}

	whData := make([][]interface{}, 0, len(warehouse))
	for _, r := range warehouse {
		whData = append(whData, []interface{}{r.MaterialID, r.Name, r.Unit, r.Qty})
	}
	if err := writeSheet(f, SheetWarehouse, []interface{}{"material_id", "name", "unit", "qty"}, whData); err != nil {
		return nil, err
	}

	teamData := make([][]interface{}, 0, len(teams))
	for _, r := range teams {
		teamData = append(teamData, []interface{}{r.Team, r.Material, r.Qty})
	}
	if err := writeSheet(f, SheetTeams, []interface{}{"team", "material", "qty"}, teamData); err != nil {
		return nil, err
	}

	instData := make([][]interface{}, 0, len(instruments))
	for _, r := range instruments {
		instData = append(instData, []interface{}{r.Name, r.Serial, r.Location})
	}
	if err := writeSheet(f, SheetInstruments, []interface{}{"name", "serial", "location"}, instData); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
