package entity

// Roles conocidos.
const (
	RoleAdmin        = "ADMIN"
	RoleInventorySup = "INVENTORY_SUP"
	RolePickingSup   = "PICKING_SUP"
)

// Identity identidad del llamador ya autenticada (extraída del token).
type Identity struct {
	UserID      int64
	Role        string
	WarehouseID int64
}

// IsAdmin indica si la identidad tiene rol ADMIN.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
