package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// InventoryHandler maneja la reconciliación de cantidades (protegido, admin).
type InventoryHandler struct {
	uc *inventory.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReconcileUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Reconcile godoc
// @Summary      Aplicar deltas de cantidad sobre el inventario de una bodega
// @Description  Operación aditiva, no idempotente; todas las escrituras en un solo commit atómico.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReconcileRequest  true  "Bodega y deltas"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.WarehouseID == "" || len(in.Updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouseId y updates son requeridos"})
	}
	if err := h.uc.Reconcile(c.Context(), in.WarehouseID, in.Updates); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "inventario actualizado"})
}
