// Package access holds the single role→operation capability table. Handlers
// consult it instead of comparing role strings inline.
package access

import "github.com/awrteam/awr/internal/identity"

type Op string

const (
	OpTaskCreate           Op = "task.create"
	OpTaskEdit             Op = "task.edit"
	OpTaskDelete           Op = "task.delete"
	OpTaskStatusAny        Op = "task.status.any"
	OpTaskStatusInProgress Op = "task.status.inprogress"
	OpStockView            Op = "stock.view"
	OpStockMove            Op = "stock.move"
	OpInstrumentManage     Op = "instrument.manage"
	OpExport               Op = "export"
)

var caps = map[identity.Role]map[Op]bool{
	identity.RoleAdmin: {
		OpTaskCreate:    true,
		OpTaskEdit:      true,
		OpTaskDelete:    true,
		OpTaskStatusAny: true,
		OpStockView:     true,
		OpExport:        true,
	},
	identity.RoleBrigade: {
		OpTaskStatusInProgress: true,
	},
	identity.RoleStorekeeper: {
		OpStockView:        true,
		OpStockMove:        true,
		OpInstrumentManage: true,
		OpExport:           true,
	},
}

func Can(role identity.Role, op Op) bool {
	return caps[role][op]
}
