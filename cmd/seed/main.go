// Siembra datos de desarrollo: el documento singleton de roles, un catálogo
// mínimo (productos, bodega, cliente) en un solo lote atómico, y tokens de
// prueba para cada rol. Pensado para entornos locales, no para producción.
package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/jwt"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store := postgres.NewDocstore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("esquema de documentos")
	}

	adminID := "dev-admin"
	userID := "dev-user"
	guestID := "dev-guest"
	warehouseID := uuid.New().String()

	batch := store.Batch()
	batch.Set(entity.RolesDocPath, map[string]any{
		entity.FieldAdmins: []string{adminID},
		entity.FieldUsers:  []string{userID},
	})
	batch.Set(entity.ColProducts+"/"+uuid.New().String(), map[string]any{
		entity.FieldName:     "Café molido 500g",
		"sku":                "CAF-500",
		entity.FieldDisabled: false,
	})
	batch.Set(entity.ColProducts+"/"+uuid.New().String(), map[string]any{
		entity.FieldName:     "Panela en bloque",
		"sku":                "PAN-001",
		entity.FieldDisabled: false,
	})
	batch.Set(entity.WarehousePath(warehouseID), map[string]any{
		entity.FieldName:     "Bodega principal",
		entity.FieldDisabled: false,
	})
	batch.Set(entity.CustomerPath(uuid.New().String()), map[string]any{
		entity.FieldName:     "Distribuciones El Roble",
		entity.FieldDisabled: false,
	})
	if err := batch.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar datos")
	}
	log.Info().Str("warehouse_id", warehouseID).Msg("datos de desarrollo sembrados")

	// Tokens de prueba por rol (el rol real se resuelve contra config/roles).
	for _, subject := range []string{adminID, userID, guestID} {
		tok, err := jwt.Generate(cfg.JWT.Secret, subject, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token de prueba")
		}
		fmt.Printf("%s:\n  Bearer %s\n", subject, tok)
	}
}
