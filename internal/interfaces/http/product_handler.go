package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	importer *catalog.ImportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, importer *catalog.ImportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, importer: importer}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "VALIDATION")
	}
	return c.JSON(list)
}

// Upload godoc
// @Summary      Importar productos
// @Description  CSV o TSV (delimitador detectado por la primera línea) o XLSX, con columnas name, sku, category.
// @Description  Los SKU existentes se omiten; dentro del archivo gana la última aparición.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo a importar"
// @Success      200  {object}  dto.ImportProductsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/upload [post]
func (h *ProductHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "campo file requerido"})
	}
	report, err := h.importer.Import(c.UserContext(), GetIdentity(c), catalog.ImportInput{
		FileName: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	})
	if err != nil {
		return respondError(c, err, "INVALID_FILE")
	}
	return c.JSON(dto.ImportProductsResponse{Imported: report.Imported})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id  path  int  true  "ID del producto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return validationError(c, "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), id); err != nil {
		return respondError(c, err, "VALIDATION")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
