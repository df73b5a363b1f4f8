package inventory

import "time"

type LocationType string

const (
	LocWarehouse LocationType = "warehouse"
	LocTeam      LocationType = "team"
)

// Location partitions stock and holdings: the single warehouse or one of the
// brigades. TeamID is meaningful only when Type == LocTeam.
type Location struct {
	Type   LocationType
	TeamID int64
}

func Warehouse() Location { return Location{Type: LocWarehouse} }

func Team(id int64) Location { return Location{Type: LocTeam, TeamID: id} }

func (l Location) Valid() bool {
	switch l.Type {
	case LocWarehouse:
		return l.TeamID == 0
	case LocTeam:
		return l.TeamID > 0
	}
	return false
}

// teamID maps the location to the nullable location_id column.
func (l Location) teamID() *int64 {
	if l.Type == LocTeam {
		id := l.TeamID
		return &id
	}
	return nil
}

type StockEntry struct {
	Location   Location
	MaterialID int64
	Qty        float64
}

type MaterialMovement struct {
	ID         int64
	MaterialID int64
	From       Location
	To         Location
	Qty        float64
	Reason     string
	CreatedAt  time.Time
}

type Instrument struct {
	ID     int64
	Name   string
	Serial string
}

type Holding struct {
	Instrument Instrument
	Location   Location
}

type InstrumentMovement struct {
	ID           int64
	InstrumentID int64
	From         Location
	To           Location
	Reason       string
	CreatedAt    time.Time
}

type ConsumeItem struct {
	MaterialID int64   `json:"material_id"`
	Qty        float64 `json:"qty"`
}
