package entity

// Product entrada del catálogo global (no depende de la bodega).
// SKU es único en el catálogo; la importación omite los SKU existentes.
type Product struct {
	ID       int64
	Name     string
	SKU      string
	Category string
}
