package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductUseCase CRUD de productos. Los documentos son de forma libre: la
// creación almacena el cuerpo recibido tal cual, quitando los campos que
// gestiona la API. Nunca hay borrado físico, solo soft-disable.
type ProductUseCase struct {
	store docstore.Store
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store docstore.Store) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// Create almacena un producto nuevo con disabled=false y devuelve el id.
func (uc *ProductUseCase) Create(ctx context.Context, data map[string]any) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrInvalidInput
	}
	doc := make(map[string]any, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}
	// Campos gestionados por la API: el cliente no los controla.
	delete(doc, "id")
	delete(doc, entity.FieldDisabledOn)
	delete(doc, entity.FieldDisabledBy)
	doc[entity.FieldDisabled] = false

	id, err := uc.store.Add(ctx, entity.ColProducts, doc)
	if err != nil {
		return "", fmt.Errorf("crear producto: %w", err)
	}
	return id, nil
}

// List devuelve los productos no deshabilitados.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.DocumentResponse, error) {
	docs, err := uc.store.GetAll(ctx, entity.ColProducts)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return dto.NewDocumentList(filterEnabled(docs)), nil
}

// GetByID devuelve un producto por id (incluidos los deshabilitados, con su
// marca disabled visible), o nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (dto.DocumentResponse, error) {
	doc, err := uc.store.Get(ctx, entity.ColProducts+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("leer producto %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return dto.NewDocumentResponse(*doc), nil
}

// UpdateName cambia el nombre de un producto existente.
func (uc *ProductUseCase) UpdateName(ctx context.Context, id, name string) error {
	if id == "" || name == "" {
		return domain.ErrInvalidInput
	}
	err := uc.store.Update(ctx, entity.ColProducts+"/"+id, map[string]any{
		entity.FieldName: name,
	})
	if err != nil {
		return fmt.Errorf("actualizar producto %s: %w", id, err)
	}
	return nil
}

// Disable marca el producto como deshabilitado (soft-disable).
func (uc *ProductUseCase) Disable(ctx context.Context, id, disabledBy string) error {
	return disableDoc(ctx, uc.store, entity.ColProducts+"/"+id, disabledBy)
}
