package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CustomerUseCase CRUD de clientes/empresas. Las facturas desnormalizan
// {uid, name} de aquí al crearse.
type CustomerUseCase struct {
	store docstore.Store
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(store docstore.Store) *CustomerUseCase {
	return &CustomerUseCase{store: store}
}

// Create crea un cliente con createdAt del servidor y devuelve el id.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (string, error) {
	if in.Name == "" {
		return "", domain.ErrInvalidInput
	}
	id, err := uc.store.Add(ctx, entity.ColCustomers, map[string]any{
		entity.FieldName:      in.Name,
		entity.FieldDisabled:  false,
		entity.FieldCreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("crear cliente: %w", err)
	}
	return id, nil
}

// List devuelve los clientes no deshabilitados.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.DocumentResponse, error) {
	docs, err := uc.store.GetAll(ctx, entity.ColCustomers)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]docstore.Document, 0, len(docs))
	for _, d := range docs {
		if disabled, _ := d.Data[entity.FieldDisabled].(bool); !disabled {
			out = append(out, d)
		}
	}
	return dto.NewDocumentList(out), nil
}

// GetByID devuelve un cliente por id, o nil si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (dto.DocumentResponse, error) {
	doc, err := uc.store.Get(ctx, entity.CustomerPath(id))
	if err != nil {
		return nil, fmt.Errorf("leer cliente %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return dto.NewDocumentResponse(*doc), nil
}

// Disable marca el cliente como deshabilitado (soft-disable).
func (uc *CustomerUseCase) Disable(ctx context.Context, id, disabledBy string) error {
	err := uc.store.Update(ctx, entity.CustomerPath(id), map[string]any{
		entity.FieldDisabled:   true,
		entity.FieldDisabledOn: time.Now().UTC().Format(time.RFC3339),
		entity.FieldDisabledBy: disabledBy,
	})
	if err != nil {
		return fmt.Errorf("deshabilitar cliente %s: %w", id, err)
	}
	return nil
}
