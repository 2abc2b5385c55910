package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

type LocationHandler struct {
	uc *usecase.LocationUseCase
}

func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// List godoc
// @Summary      Listar ubicaciones visibles
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err, "VALIDATION")
	}
	return c.JSON(list)
}
