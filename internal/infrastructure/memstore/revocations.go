package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/auth"
)

var _ auth.RevocationStore = (*Revocations)(nil)

// Revocations denylist de sujetos revocados en memoria. Acompaña al driver
// memory en desarrollo local; en producción la denylist vive en Redis.
type Revocations struct {
	mu sync.Mutex
	at map[string]time.Time
}

// NewRevocations crea la denylist vacía.
func NewRevocations() *Revocations {
	return &Revocations{at: make(map[string]time.Time)}
}

// Revoke registra el instante de revocación del sujeto.
func (r *Revocations) Revoke(ctx context.Context, subject string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.at[subject] = at
	return nil
}

// RevokedAt devuelve el instante de revocación, o zero si no hay.
func (r *Revocations) RevokedAt(ctx context.Context, subject string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.at[subject], nil
}
