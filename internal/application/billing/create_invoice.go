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

// InvoiceUseCase facturas de entrada y salida. Una factura es inmutable salvo
// su soft-disable, y guarda un snapshot desnormalizado {uid, name} de la
// empresa al momento de crearse.
//
// Crear una factura NO ajusta cantidades de inventario: la reconciliación es
// una llamada independiente del cliente, sin atomicidad entre ambas.
type InvoiceUseCase struct {
	store docstore.Store
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(store docstore.Store) *InvoiceUseCase {
	return &InvoiceUseCase{store: store}
}

// Create valida, resuelve el nombre de la empresa y persiste la factura.
// Una empresa desconocida (o deshabilitada) es entrada inválida y no deja
// rastro en el almacén.
func (uc *InvoiceUseCase) Create(ctx context.Context, kind entity.InvoiceKind, createdBy string, in dto.CreateInvoiceRequest) (string, error) {
	col, err := kind.Collection()
	if err != nil {
		return "", err
	}
	if in.CompanyID == "" || in.WarehouseID == "" || len(in.Products) == 0 {
		return "", domain.ErrInvalidInput
	}
	lines := make([]any, 0, len(in.Products))
	for _, p := range in.Products {
		if p.ProductID == "" {
			return "", domain.ErrInvalidInput
		}
		qty, err := entity.ParseQuantity(p.Quantity)
		if err != nil {
			return "", fmt.Errorf("cantidad de %s: %w", p.ProductID, err)
		}
		lines = append(lines, map[string]any{
			entity.FieldProductID: p.ProductID,
			entity.FieldQuantity:  qty,
		})
	}

	company, err := uc.store.Get(ctx, entity.CustomerPath(in.CompanyID))
	if err != nil {
		return "", fmt.Errorf("leer empresa %s: %w", in.CompanyID, err)
	}
	if company == nil {
		return "", fmt.Errorf("empresa %s: %w", in.CompanyID, domain.ErrInvalidInput)
	}
	if disabled, _ := company.Data[entity.FieldDisabled].(bool); disabled {
		return "", fmt.Errorf("empresa %s deshabilitada: %w", in.CompanyID, domain.ErrInvalidInput)
	}

	id, err := uc.store.Add(ctx, col, map[string]any{
		entity.FieldCompany: map[string]any{
			"uid":            company.ID,
			entity.FieldName: company.Data[entity.FieldName],
		},
		entity.FieldProducts:    lines,
		entity.FieldWarehouseID: in.WarehouseID,
		entity.FieldCreatedOn:   time.Now().UTC().Format(time.RFC3339),
		entity.FieldCreatedBy:   createdBy,
		entity.FieldDisabled:    false,
	})
	if err != nil {
		return "", fmt.Errorf("crear factura: %w", err)
	}
	return id, nil
}

// List devuelve las facturas no deshabilitadas del tipo dado.
func (uc *InvoiceUseCase) List(ctx context.Context, kind entity.InvoiceKind) ([]dto.DocumentResponse, error) {
	col, err := kind.Collection()
	if err != nil {
		return nil, err
	}
	docs, err := uc.store.GetAll(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]docstore.Document, 0, len(docs))
	for _, d := range docs {
		if disabled, _ := d.Data[entity.FieldDisabled].(bool); !disabled {
			out = append(out, d)
		}
	}
	return dto.NewDocumentList(out), nil
}

// GetByID devuelve una factura por id, o nil si no existe.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, kind entity.InvoiceKind, id string) (dto.DocumentResponse, error) {
	col, err := kind.Collection()
	if err != nil {
		return nil, err
	}
	doc, err := uc.store.Get(ctx, col+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("leer factura %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil
	}
	return dto.NewDocumentResponse(*doc), nil
}

// Disable anula la factura (soft-disable con quién y cuándo); el resto del
// documento permanece inmutable.
func (uc *InvoiceUseCase) Disable(ctx context.Context, kind entity.InvoiceKind, id, disabledBy string) error {
	col, err := kind.Collection()
	if err != nil {
		return err
	}
	err = uc.store.Update(ctx, col+"/"+id, map[string]any{
		entity.FieldDisabled:   true,
		entity.FieldDisabledOn: time.Now().UTC().Format(time.RFC3339),
		entity.FieldDisabledBy: disabledBy,
	})
	if err != nil {
		return fmt.Errorf("anular factura %s: %w", id, err)
	}
	return nil
}
