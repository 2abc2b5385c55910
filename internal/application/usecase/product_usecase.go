package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/domain/scope"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// ProductUseCase lectura y baja del catálogo. El alta masiva vive en catalog.ImportUseCase.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log.Named("products")}
}

// List devuelve el catálogo ordenado por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.ListOrderedByName(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. Solo ADMIN; con inventario asociado devuelve ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id entity.Identity, productID int64) error {
	if !scope.CanManageCatalog(id.Role) {
		return fmt.Errorf("%w: solo ADMIN elimina productos", domain.ErrForbidden)
	}
	if productID <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.Delete(ctx, productID); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id.UserID).Int64("product_id", productID).Msg("producto eliminado")
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{ID: p.ID, Name: p.Name, SKU: p.SKU, Category: p.Category}
}
