package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
)

func TestRoleResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, entity.RolesDocPath, map[string]any{
		entity.FieldAdmins: []any{"alice"},
		entity.FieldUsers:  []any{"bob", "carol"},
	}))
	resolver := auth.NewRoleResolver(store)

	cases := []struct {
		userID string
		want   entity.Role
	}{
		{"alice", entity.RoleAdmin},
		{"bob", entity.RoleUser},
		{"carol", entity.RoleUser},
		{"desconocido", entity.RoleGuest},
	}
	for _, tc := range cases {
		role, err := resolver.Resolve(ctx, tc.userID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, role, "rol de %s", tc.userID)
	}
}

// El documento de roles ausente es un error de configuración, no un guest.
func TestRoleResolver_SinDocumentoDeRoles(t *testing.T) {
	resolver := auth.NewRoleResolver(memstore.New())

	_, err := resolver.Resolve(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

// Un cambio en el documento de roles aplica en la siguiente resolución.
func TestRoleResolver_SinCache(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, entity.RolesDocPath, map[string]any{
		entity.FieldAdmins: []any{},
		entity.FieldUsers:  []any{"bob"},
	}))
	resolver := auth.NewRoleResolver(store)

	role, err := resolver.Resolve(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, role)

	require.NoError(t, store.Set(ctx, entity.RolesDocPath, map[string]any{
		entity.FieldAdmins: []any{"bob"},
		entity.FieldUsers:  []any{},
	}))

	role, err = resolver.Resolve(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, role)
}
