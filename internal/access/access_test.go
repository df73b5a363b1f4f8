package access

import (
	"testing"

	"github.com/awrteam/awr/internal/identity"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(identity.RoleAdmin, OpTaskCreate))
	assert.True(t, Can(identity.RoleAdmin, OpTaskStatusAny))
	assert.True(t, Can(identity.RoleAdmin, OpStockView))
	assert.False(t, Can(identity.RoleAdmin, OpStockMove))
	assert.False(t, Can(identity.RoleAdmin, OpInstrumentManage))

	assert.True(t, Can(identity.RoleBrigade, OpTaskStatusInProgress))
	assert.False(t, Can(identity.RoleBrigade, OpTaskCreate))
	assert.False(t, Can(identity.RoleBrigade, OpStockView))

	assert.True(t, Can(identity.RoleStorekeeper, OpStockMove))
	assert.True(t, Can(identity.RoleStorekeeper, OpInstrumentManage))
	assert.True(t, Can(identity.RoleStorekeeper, OpExport))
	assert.False(t, Can(identity.RoleStorekeeper, OpTaskStatusAny))

	assert.False(t, Can(identity.Role("ghost"), OpExport))
}
