package redisx

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/redis/go-redis/v9"
)

const (
	// Denylist de sign-out: revoked:subject:{userId} -> unix seconds de la revocación.
	keyRevokedSubject = "revoked:subject:%s"
)

// TTLRevocation debe cubrir al menos la vida máxima de un token: pasado ese
// plazo todos los tokens anteriores a la revocación ya expiraron solos.
var TTLRevocation = 24 * time.Hour

var _ auth.RevocationStore = (*RevocationStore)(nil)

// RevocationStore denylist de sujetos revocados sobre Redis.
type RevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore construye el adaptador.
func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

// Revoke registra el instante de revocación del sujeto.
func (s *RevocationStore) Revoke(ctx context.Context, subject string, at time.Time) error {
	key := fmt.Sprintf(keyRevokedSubject, subject)
	if err := s.rdb.Set(ctx, key, strconv.FormatInt(at.Unix(), 10), TTLRevocation).Err(); err != nil {
		return fmt.Errorf("registrar revocación de %s: %w", subject, err)
	}
	return nil
}

// RevokedAt devuelve el instante de revocación del sujeto, o (zero, nil) si
// no hay revocación vigente.
func (s *RevocationStore) RevokedAt(ctx context.Context, subject string) (time.Time, error) {
	key := fmt.Sprintf(keyRevokedSubject, subject)
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("consultar revocación de %s: %w", subject, err)
	}
	secs, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("valor de revocación corrupto para %s: %w", subject, err)
	}
	return time.Unix(secs, 0), nil
}
