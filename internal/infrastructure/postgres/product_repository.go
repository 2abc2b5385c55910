package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT id, name, sku, category FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.SKU, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListOrderedByName lista el catálogo completo ordenado por nombre.
func (r *ProductRepo) ListOrderedByName(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, sku, category FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// InsertSkipExisting inserta el lote en una sola sentencia vía unnest. Los SKU ya presentes
// (o insertados por una importación concurrente) se omiten sin error.
func (r *ProductRepo) InsertSkipExisting(ctx context.Context, products []*entity.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	names := make([]string, len(products))
	skus := make([]string, len(products))
	categories := make([]string, len(products))
	for i, p := range products {
		names[i], skus[i], categories[i] = p.Name, p.SKU, p.Category
	}
	query := `
		INSERT INTO products (name, sku, category)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[])
		ON CONFLICT (sku) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, names, skus, categories)
	if err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina el producto. Con inventario asociado la FK (RESTRICT) lo impide.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto %d tiene inventario", domain.ErrConflict, id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}
