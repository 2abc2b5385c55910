package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/Bodega-api/internal/application/ports"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/domain/scope"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/Bodega-api/internal/application/inventory")

// LedgerUseCase ajusta y consulta el stock por ubicación y producto.
// Es el único camino de escritura de cantidades.
type LedgerUseCase struct {
	txRunner  TxRunner
	locations repository.LocationRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	logs      repository.InventoryLogRepository
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. inventory y logs se usan solo para lecturas
// fuera de transacción; las escrituras pasan por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	locations repository.LocationRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	logs repository.InventoryLogRepository,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		locations: locations,
		products:  products,
		inventory: inventory,
		logs:      logs,
		publisher: publisher,
		log:       log.Named("inventory"),
	}
}

// AdjustInput entrada de un ajuste. Change puede ser negativo, positivo o cero.
type AdjustInput struct {
	LocationID int64
	ProductID  int64
	Change     int64
}

// AdjustedEvent payload del evento inventory.adjusted.
type AdjustedEvent struct {
	UserID     int64 `json:"userId"`
	LocationID int64 `json:"locationId"`
	ProductID  int64 `json:"productId"`
	Change     int64 `json:"change"`
	Quantity   int64 `json:"quantity"`
}

// Adjust aplica change a la celda (locationID, productID) y registra la auditoría en la misma tx.
//
// Orden de validación: payload, privilegio de rol, existencia de ubicación y producto,
// scope sobre la bodega de la ubicación. Un change de 0 también deja registro.
func (uc *LedgerUseCase) Adjust(ctx context.Context, id entity.Identity, in AdjustInput) (*entity.InventoryRow, error) {
	ctx, span := tracer.Start(ctx, "inventory.adjust")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("inventory.location_id", in.LocationID),
		attribute.Int64("inventory.product_id", in.ProductID),
		attribute.Int64("inventory.change", in.Change),
	)

	row, err := uc.adjust(ctx, id, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("inventory.quantity", row.Quantity))
	return row, nil
}

func (uc *LedgerUseCase) adjust(ctx context.Context, id entity.Identity, in AdjustInput) (*entity.InventoryRow, error) {
	if in.LocationID <= 0 || in.ProductID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !scope.CanMutateStock(id.Role) {
		return nil, fmt.Errorf("%w: rol %q sin privilegio de ajuste", domain.ErrForbidden, id.Role)
	}

	loc, err := uc.locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, in.LocationID)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}
	if err := scope.Authorize(scope.Resolve(id), loc.WarehouseID); err != nil {
		return nil, err
	}

	var row *entity.InventoryRow
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		r, err := invRepo.Increment(ctx, loc.ID, product.ID, in.Change)
		if err != nil {
			return err
		}
		entry := &entity.InventoryLogEntry{
			UserID:     id.UserID,
			LocationID: loc.ID,
			ProductID:  product.ID,
			Change:     in.Change,
		}
		if err := logRepo.Append(ctx, entry); err != nil {
			return err
		}
		row = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAdjusted(ctx, id, in, row)
	return row, nil
}

// publishAdjusted publica tras el commit. El ledger ya es durable: un fallo aquí solo se registra.
func (uc *LedgerUseCase) publishAdjusted(ctx context.Context, id entity.Identity, in AdjustInput, row *entity.InventoryRow) {
	event := ports.Event{
		ID:         uuid.New().String(),
		Type:       ports.EventInventoryAdjusted,
		Key:        fmt.Sprintf("loc:%d:prod:%d", row.LocationID, row.ProductID),
		OccurredAt: time.Now().UTC(),
		Payload: AdjustedEvent{
			UserID:     id.UserID,
			LocationID: row.LocationID,
			ProductID:  row.ProductID,
			Change:     in.Change,
			Quantity:   row.Quantity,
		},
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.Warn().Err(err).
			Int64("location_id", row.LocationID).
			Int64("product_id", row.ProductID).
			Msg("evento de ajuste no publicado")
	}
}

// Query lista filas del ledger con su producto. No aplica scoping: el llamador filtra si lo necesita.
func (uc *LedgerUseCase) Query(ctx context.Context, filter entity.InventoryFilter) ([]*entity.InventoryRow, error) {
	ctx, span := tracer.Start(ctx, "inventory.query")
	defer span.End()

	if filter.LocationID < 0 || filter.ProductID < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.inventory.List(ctx, filter)
}

// History devuelve la auditoría de una celda en orden de replay. La celda es un objetivo
// explícito, así que fuera de scope es ErrForbidden (no un listado vacío).
func (uc *LedgerUseCase) History(ctx context.Context, id entity.Identity, locationID, productID int64) ([]*entity.InventoryLogEntry, error) {
	ctx, span := tracer.Start(ctx, "inventory.history")
	defer span.End()

	if locationID <= 0 || productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, locationID)
	}
	if err := scope.Authorize(scope.Resolve(id), loc.WarehouseID); err != nil {
		return nil, err
	}
	return uc.logs.ListByKey(ctx, locationID, productID)
}

// Replay reconstruye la cantidad de una celda sumando sus deltas en orden.
func Replay(entries []*entity.InventoryLogEntry) int64 {
	var qty int64
	for _, e := range entries {
		qty += e.Change
	}
	return qty
}
