package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Locals keys para identidad y rol en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// TokenVerifier contrato mínimo que necesita el middleware para validar el
// bearer token. Lo implementa *auth.TokenVerifier; la interfaz permite fakes
// en tests.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// RoleResolver contrato mínimo para resolver el rol del sujeto autenticado.
// Lo implementa *auth.RoleResolver. Se consulta en CADA petición protegida:
// el rol no viaja en el token.
type RoleResolver interface {
	Resolve(ctx context.Context, userID string) (entity.Role, error)
}

// AuthMiddleware valida el Bearer Token y deja el sujeto en c.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		subject, err := verifier.Verify(c.Context(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o revocado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo verificar el token"})
		}
		c.Locals(LocalUserID, subject)
		return c.Next()
	}
}

// RequireRole autoriza la petición si el rol resuelto del sujeto está entre
// los permitidos. Debe usarse DESPUÉS de AuthMiddleware. El chequeo de roles
// vive solo aquí: los handlers no comparan strings de rol.
//
//   - 403 Forbidden → rol insuficiente (guest nunca pasa ningún gate).
//   - 500 → documento de roles ausente u otro fallo del almacén.
func RequireRole(resolver RoleResolver, allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sujeto no autenticado"})
		}
		role, err := resolver.Resolve(c.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrConfigMissing) {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "ROLES_MISSING", Message: "configuración de roles ausente"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo resolver el rol"})
		}
		c.Locals(LocalRole, string(role))
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente para esta operación"})
	}
}

// GetUserID devuelve el sujeto autenticado del contexto (tras AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol resuelto del contexto (tras RequireRole).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
