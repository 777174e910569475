package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RoleResolver resuelve el rol efectivo de un usuario por pertenencia en el
// documento singleton de roles. Sin caché: cada llamada relee el documento,
// así un cambio de rol aplica en la siguiente petición.
type RoleResolver struct {
	store docstore.Store
}

// NewRoleResolver construye el resolver.
func NewRoleResolver(store docstore.Store) *RoleResolver {
	return &RoleResolver{store: store}
}

// Resolve devuelve admin si userID está en admins, user si está en users y
// guest si no está en ninguna lista. La ausencia del documento de roles es un
// error de configuración (ErrConfigMissing), no un guest implícito.
func (r *RoleResolver) Resolve(ctx context.Context, userID string) (entity.Role, error) {
	doc, err := r.store.Get(ctx, entity.RolesDocPath)
	if err != nil {
		return "", fmt.Errorf("leer documento de roles: %w", err)
	}
	if doc == nil {
		return "", domain.ErrConfigMissing
	}
	if containsString(doc.Data[entity.FieldAdmins], userID) {
		return entity.RoleAdmin, nil
	}
	if containsString(doc.Data[entity.FieldUsers], userID) {
		return entity.RoleUser, nil
	}
	return entity.RoleGuest, nil
}

// containsString busca s en un valor de documento que debería ser una lista
// de strings ([]any tras decodificar JSON, o []string si se escribió en Go).
func containsString(list any, s string) bool {
	switch l := list.(type) {
	case []any:
		for _, v := range l {
			if str, ok := v.(string); ok && str == s {
				return true
			}
		}
	case []string:
		for _, v := range l {
			if v == s {
				return true
			}
		}
	}
	return false
}
