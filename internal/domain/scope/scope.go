// Package scope resuelve qué bodegas puede ver o modificar un llamador.
//
// Un Scope es Unrestricted (ADMIN) o RestrictedTo(warehouseID). Las mutaciones sobre
// un objetivo explícito usan Authorize y fallan con domain.ErrForbidden; los listados
// usan Allows como predicado de filtro y simplemente devuelven menos filas.
package scope

import (
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// Kind distingue las dos variantes de Scope.
type Kind int

const (
	KindRestricted Kind = iota
	KindUnrestricted
)

// Scope conjunto de bodegas visibles/modificables. El valor cero es restringido
// a la bodega 0, que no existe: no da acceso a nada.
type Scope struct {
	kind        Kind
	warehouseID int64
}

// Unrestricted acceso a todas las bodegas.
func Unrestricted() Scope {
	return Scope{kind: KindUnrestricted}
}

// RestrictedTo acceso solo a lo que cuelga de warehouseID.
func RestrictedTo(warehouseID int64) Scope {
	return Scope{kind: KindRestricted, warehouseID: warehouseID}
}

// Resolve deriva el Scope efectivo de la identidad.
func Resolve(id entity.Identity) Scope {
	if id.IsAdmin() {
		return Unrestricted()
	}
	return RestrictedTo(id.WarehouseID)
}

// Kind devuelve la variante.
func (s Scope) Kind() Kind {
	return s.kind
}

// WarehouseID devuelve la bodega de un scope restringido; ok=false si es Unrestricted.
func (s Scope) WarehouseID() (id int64, ok bool) {
	if s.kind == KindUnrestricted {
		return 0, false
	}
	return s.warehouseID, true
}

// Allows predicado de filtro para listados.
func (s Scope) Allows(warehouseID int64) bool {
	if s.kind == KindUnrestricted {
		return true
	}
	return s.warehouseID != 0 && s.warehouseID == warehouseID
}

func (s Scope) String() string {
	if s.kind == KindUnrestricted {
		return "unrestricted"
	}
	return fmt.Sprintf("warehouse:%d", s.warehouseID)
}

// Authorize decide sobre un objetivo explícito. Deny siempre es ErrForbidden.
func Authorize(s Scope, targetWarehouseID int64) error {
	if !s.Allows(targetWarehouseID) {
		return fmt.Errorf("%w: scope %s sobre bodega %d", domain.ErrForbidden, s, targetWarehouseID)
	}
	return nil
}

// CanMutateStock roles con privilegio de ajuste de stock. Cualquier otro rol
// queda denegado aunque su bodega coincida con la del objetivo.
func CanMutateStock(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleInventorySup
}

// CanManageCatalog importación y borrado de productos: solo ADMIN.
func CanManageCatalog(role string) bool {
	return role == entity.RoleAdmin
}
