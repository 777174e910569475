package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// TokenVerifier valida bearer tokens y gestiona el sign-out. Un token es
// válido si su firma y expiración pasan y si NO fue emitido antes (o en el
// mismo instante) de una revocación vigente del sujeto: Revoke invalida todos
// los tokens emitidos hasta ese momento, como la revocación de refresh tokens
// del proveedor de identidad original.
type TokenVerifier struct {
	secret      string
	revocations RevocationStore
}

// NewTokenVerifier construye el verificador.
func NewTokenVerifier(secret string, revocations RevocationStore) *TokenVerifier {
	return &TokenVerifier{secret: secret, revocations: revocations}
}

// Verify valida el token y devuelve el identificador del sujeto.
// Cualquier token inválido, expirado o revocado produce ErrUnauthorized.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (string, error) {
	subject, issuedAt, err := jwt.Parse(v.secret, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	revokedAt, err := v.revocations.RevokedAt(ctx, subject)
	if err != nil {
		return "", err
	}
	if !revokedAt.IsZero() && !issuedAt.After(revokedAt) {
		return "", fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
	}
	return subject, nil
}

// Revoke cierra la sesión del sujeto: los tokens ya emitidos dejan de valer.
func (v *TokenVerifier) Revoke(ctx context.Context, subject string) error {
	if subject == "" {
		return domain.ErrInvalidInput
	}
	return v.revocations.Revoke(ctx, subject, time.Now())
}
