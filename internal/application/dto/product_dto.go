package dto

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
}

// ImportProductsResponse resultado de POST /api/products/upload.
type ImportProductsResponse struct {
	Imported int64 `json:"imported"`
}
