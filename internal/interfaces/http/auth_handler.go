package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// sessionRevoker contrato mínimo para el sign-out. Lo implementa
// *auth.TokenVerifier.
type sessionRevoker interface {
	Revoke(ctx context.Context, subject string) error
}

// AuthHandler sign-out e identidad del portador del token.
type AuthHandler struct {
	revoker  sessionRevoker
	resolver RoleResolver
}

// NewAuthHandler construye el handler.
func NewAuthHandler(revoker sessionRevoker, resolver RoleResolver) *AuthHandler {
	return &AuthHandler{revoker: revoker, resolver: resolver}
}

// Logout godoc
// @Summary      Cerrar sesión: revoca todos los tokens ya emitidos del sujeto
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.revoker.Revoke(c.Context(), GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo cerrar la sesión"})
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Identidad y rol efectivo del portador del token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	role, err := h.resolver.Resolve(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrConfigMissing) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "ROLES_MISSING", Message: "configuración de roles ausente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo resolver el rol"})
	}
	return c.JSON(dto.MeResponse{UserID: userID, Role: string(role)})
}
