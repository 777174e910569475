package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// WarehouseUseCase CRUD de bodegas. Cada bodega posee la subcolección
// "inventory"; el detalle la devuelve anidada vía el recorrido recursivo de
// subcolecciones.
type WarehouseUseCase struct {
	store docstore.Store
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(store docstore.Store) *WarehouseUseCase {
	return &WarehouseUseCase{store: store}
}

// Create crea una bodega con inventario vacío y devuelve el id.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (string, error) {
	if in.Name == "" {
		return "", domain.ErrInvalidInput
	}
	id, err := uc.store.Add(ctx, entity.ColWarehouses, map[string]any{
		entity.FieldName:     in.Name,
		entity.FieldDisabled: false,
	})
	if err != nil {
		return "", fmt.Errorf("crear bodega: %w", err)
	}
	return id, nil
}

// List devuelve las bodegas no deshabilitadas (sin inventario).
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.DocumentResponse, error) {
	docs, err := uc.store.GetAll(ctx, entity.ColWarehouses)
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	return dto.NewDocumentList(filterEnabled(docs)), nil
}

// Detail devuelve la bodega junto con todas sus subcolecciones anidadas,
// aplanadas en orden de recorrido. Una bodega recién creada trae la secuencia
// vacía. Nil si la bodega no existe.
func (uc *WarehouseUseCase) Detail(ctx context.Context, id string) (*dto.WarehouseDetailResponse, error) {
	doc, err := uc.store.Get(ctx, entity.WarehousePath(id))
	if err != nil {
		return nil, fmt.Errorf("leer bodega %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	dumps, err := docstore.Walk(ctx, uc.store, doc.Path, docstore.DefaultMaxWalkDepth)
	if err != nil {
		return nil, fmt.Errorf("recorrer subcolecciones de %s: %w", id, err)
	}
	return &dto.WarehouseDetailResponse{
		Warehouse:   dto.NewDocumentResponse(*doc),
		Collections: dumps,
	}, nil
}

// Inventory devuelve las entradas de inventario de la bodega.
func (uc *WarehouseUseCase) Inventory(ctx context.Context, id string) (*dto.WarehouseInventoryResponse, error) {
	doc, err := uc.store.Get(ctx, entity.WarehousePath(id))
	if err != nil {
		return nil, fmt.Errorf("leer bodega %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	items, err := uc.store.GetAll(ctx, entity.InventoryCol(id))
	if err != nil {
		return nil, fmt.Errorf("leer inventario de %s: %w", id, err)
	}
	return &dto.WarehouseInventoryResponse{
		WarehouseID: id,
		Items:       dto.NewDocumentList(items),
	}, nil
}

// Disable marca la bodega como deshabilitada (soft-disable); el inventario
// queda intacto bajo el documento deshabilitado.
func (uc *WarehouseUseCase) Disable(ctx context.Context, id, disabledBy string) error {
	return disableDoc(ctx, uc.store, entity.WarehousePath(id), disabledBy)
}
