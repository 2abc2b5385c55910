package scope_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/scope"
)

func TestResolve_AdminEsUnrestricted(t *testing.T) {
	s := scope.Resolve(entity.Identity{UserID: 1, Role: entity.RoleAdmin, WarehouseID: 1})

	assert.Equal(t, scope.KindUnrestricted, s.Kind())
	_, restricted := s.WarehouseID()
	assert.False(t, restricted)
	assert.True(t, s.Allows(1))
	assert.True(t, s.Allows(99))
}

func TestResolve_OtrosRolesRestringidosASuBodega(t *testing.T) {
	for _, role := range []string{entity.RoleInventorySup, entity.RolePickingSup, "OTRO"} {
		s := scope.Resolve(entity.Identity{UserID: 2, Role: role, WarehouseID: 2})

		wh, ok := s.WarehouseID()
		assert.True(t, ok, role)
		assert.Equal(t, int64(2), wh, role)
		assert.True(t, s.Allows(2), role)
		assert.False(t, s.Allows(1), role)
	}
}

func TestAuthorize_FueraDeScopeEsForbidden(t *testing.T) {
	err := scope.Authorize(scope.RestrictedTo(2), 1)

	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.NoError(t, scope.Authorize(scope.RestrictedTo(2), 2))
	assert.NoError(t, scope.Authorize(scope.Unrestricted(), 1))
}

func TestScopeCero_NoPermiteNada(t *testing.T) {
	var s scope.Scope
	assert.False(t, s.Allows(0))
	assert.False(t, s.Allows(1))
}

func TestPrivilegiosPorRol(t *testing.T) {
	assert.True(t, scope.CanMutateStock(entity.RoleAdmin))
	assert.True(t, scope.CanMutateStock(entity.RoleInventorySup))
	assert.False(t, scope.CanMutateStock(entity.RolePickingSup))
	assert.False(t, scope.CanMutateStock(""))

	assert.True(t, scope.CanManageCatalog(entity.RoleAdmin))
	assert.False(t, scope.CanManageCatalog(entity.RoleInventorySup))
}
