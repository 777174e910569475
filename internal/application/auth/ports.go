package auth

import (
	"context"
	"time"
)

// RevocationStore denylist de sujetos con sesión revocada (sign-out). La
// implementación de producción vive en infrastructure/redisx.
type RevocationStore interface {
	// Revoke registra el instante de revocación del sujeto.
	Revoke(ctx context.Context, subject string, at time.Time) error
	// RevokedAt devuelve el instante de revocación vigente, o zero si no hay.
	RevokedAt(ctx context.Context, subject string) (time.Time, error)
}
