package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Consultar stock
// @Description  Filas del ledger con su producto. Sin filtros devuelve todo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        locationId  query  int  false  "Filtrar por ubicación"
// @Param        productId   query  int  false  "Filtrar por producto"
// @Success      200  {array}   dto.InventoryRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	locationID, ok := queryID(c, "locationId")
	if !ok {
		return validationError(c, "locationId debe ser un entero")
	}
	productID, ok := queryID(c, "productId")
	if !ok {
		return validationError(c, "productId debe ser un entero")
	}
	rows, err := h.uc.Query(c.UserContext(), entity.InventoryFilter{LocationID: locationID, ProductID: productID})
	if err != nil {
		return respondError(c, err, "VALIDATION")
	}
	out := make([]dto.InventoryRowResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.InventoryRowResponse{
			LocationID: r.LocationID,
			ProductID:  r.ProductID,
			Quantity:   r.Quantity,
			UpdatedAt:  r.UpdatedAt,
		}
		if r.Product != nil {
			item.Product = &dto.ProductResponse{ID: r.Product.ID, Name: r.Product.Name, SKU: r.Product.SKU, Category: r.Product.Category}
		}
		out = append(out, item)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Suma change (positivo, negativo o cero) a la celda y registra la auditoría.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "locationId, productId, change"
// @Success      200   {object}  dto.AdjustInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LocationID == nil || in.ProductID == nil || in.Change == nil {
		return validationError(c, "locationId, productId y change son requeridos")
	}
	row, err := h.uc.Adjust(c.UserContext(), GetIdentity(c), inventory.AdjustInput{
		LocationID: *in.LocationID,
		ProductID:  *in.ProductID,
		Change:     *in.Change,
	})
	if err != nil {
		return respondError(c, err, "VALIDATION")
	}
	return c.JSON(dto.AdjustInventoryResponse{
		LocationID: row.LocationID,
		ProductID:  row.ProductID,
		Quantity:   row.Quantity,
	})
}

// History godoc
// @Summary      Historial de una celda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        locationId  query  int  true  "Ubicación"
// @Param        productId   query  int  true  "Producto"
// @Success      200  {object}  dto.InventoryHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	locationID, okLoc := queryID(c, "locationId")
	productID, okProd := queryID(c, "productId")
	if !okLoc || !okProd || locationID == 0 || productID == 0 {
		return validationError(c, "locationId y productId son requeridos")
	}
	entries, err := h.uc.History(c.UserContext(), GetIdentity(c), locationID, productID)
	if err != nil {
		return respondError(c, err, "VALIDATION")
	}
	out := dto.InventoryHistoryResponse{
		LocationID:       locationID,
		ProductID:        productID,
		Entries:          make([]dto.InventoryLogResponse, 0, len(entries)),
		ReplayedQuantity: inventory.Replay(entries),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.InventoryLogResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			LocationID: e.LocationID,
			ProductID:  e.ProductID,
			Change:     e.Change,
			Timestamp:  e.CreatedAt,
		})
	}
	return c.JSON(out)
}

// queryID lee un entero opcional de la query; ausente es 0.
func queryID(c *fiber.Ctx, key string) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
