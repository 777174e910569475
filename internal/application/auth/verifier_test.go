package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func TestTokenVerifier_TokenValido(t *testing.T) {
	verifier := auth.NewTokenVerifier(testSecret, memstore.NewRevocations())

	token, err := jwt.Generate(testSecret, "user-123", "almacen-api", 60)
	require.NoError(t, err)

	subject, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenVerifier_TokenInvalido(t *testing.T) {
	verifier := auth.NewTokenVerifier(testSecret, memstore.NewRevocations())

	cases := []struct {
		name  string
		token string
	}{
		{"basura", "no-es-un-jwt"},
		{"vacío", ""},
		{"firma incorrecta", mustToken(t, "otro-secreto", "user-123")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.Verify(context.Background(), tc.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestTokenVerifier_RevocacionInvalidaTokensPrevios(t *testing.T) {
	ctx := context.Background()
	revocations := memstore.NewRevocations()
	verifier := auth.NewTokenVerifier(testSecret, revocations)

	token := mustToken(t, testSecret, "user-123")
	_, err := verifier.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, verifier.Revoke(ctx, "user-123"))

	_, err = verifier.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un token emitido antes de la revocación deja de valer")

	// La revocación es por sujeto: otros usuarios no se ven afectados.
	otro := mustToken(t, testSecret, "user-456")
	_, err = verifier.Verify(ctx, otro)
	assert.NoError(t, err)
}

func TestTokenVerifier_TokenPosteriorALaRevocacion(t *testing.T) {
	ctx := context.Background()
	revocations := memstore.NewRevocations()
	verifier := auth.NewTokenVerifier(testSecret, revocations)

	// Revocación antigua: los tokens emitidos después siguen siendo válidos.
	require.NoError(t, revocations.Revoke(ctx, "user-123", time.Now().Add(-time.Hour)))

	token := mustToken(t, testSecret, "user-123")
	subject, err := verifier.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenVerifier_RevokeSinSujeto(t *testing.T) {
	verifier := auth.NewTokenVerifier(testSecret, memstore.NewRevocations())
	err := verifier.Revoke(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func mustToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token, err := jwt.Generate(secret, subject, "almacen-api", 60)
	require.NoError(t, err)
	return token
}
