package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ReconcileUseCase ajusta aditivamente las cantidades del inventario de una
// bodega. Lecturas y escrituras corren dentro de UNA transacción del almacén:
// las consultas bloquean las entradas leídas, así dos reconciliaciones
// concurrentes sobre el mismo producto no se pierden actualizaciones.
type ReconcileUseCase struct {
	store docstore.Store
	log   *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(store docstore.Store, log *logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{store: store, log: log}
}

type stagedUpdate struct {
	productID string
	delta     int64
}

// Reconcile aplica los deltas sobre el inventario de la bodega. Por cada
// entrada: si no existe registro para el productId se inserta uno nuevo con
// la cantidad igual al delta; si existen registros, a CADA uno se le suma el
// delta (los duplicados por violación previa de unicidad no se deduplican).
// Todas las escrituras se confirman en un solo commit: o aplican todas o
// ninguna. La operación NO es idempotente: repetirla vuelve a sumar.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, warehouseID string, updates []dto.QuantityUpdate) error {
	if warehouseID == "" || len(updates) == 0 {
		return domain.ErrInvalidInput
	}
	// Coerción y validación completas antes de abrir la transacción: una
	// cantidad no numérica rechaza la petición entera.
	staged := make([]stagedUpdate, 0, len(updates))
	for _, u := range updates {
		if u.ProductID == "" {
			return domain.ErrInvalidInput
		}
		delta, err := entity.ParseQuantity(u.Quantity)
		if err != nil {
			return fmt.Errorf("cantidad de %s: %w", u.ProductID, err)
		}
		staged = append(staged, stagedUpdate{productID: u.ProductID, delta: delta})
	}

	invCol := entity.InventoryCol(warehouseID)
	return uc.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		wh, err := tx.Get(entity.WarehousePath(warehouseID))
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
		}
		for _, u := range staged {
			matches, err := tx.Query(invCol, entity.FieldProductID, docstore.OpEqual, u.productID)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				name, err := uc.productName(tx, u.productID)
				if err != nil {
					return err
				}
				tx.Set(invCol+"/"+uuid.New().String(), map[string]any{
					entity.FieldProductID: u.productID,
					entity.FieldQuantity:  u.delta,
					entity.FieldName:      name,
				})
				continue
			}
			for _, m := range matches {
				current, err := entity.ParseQuantity(m.Data[entity.FieldQuantity])
				if err != nil {
					return fmt.Errorf("cantidad almacenada en %s: %w", m.Path, err)
				}
				tx.Update(m.Path, map[string]any{
					entity.FieldQuantity: current + u.delta,
				})
			}
		}
		return nil
	})
}

// productName resuelve el nombre del producto para la entrada nueva. Falla
// suave: un producto ausente produce nombre nulo, se registra y se continúa
// (comportamiento heredado, marcado como inconsistencia en el diseño). Un
// fallo del almacén sí aborta la transacción.
func (uc *ReconcileUseCase) productName(tx docstore.Tx, productID string) (any, error) {
	doc, err := tx.Get(entity.ColProducts + "/" + productID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		uc.log.Warn().
			Str("product_id", productID).
			Msg("producto sin registro al crear entrada de inventario; nombre nulo")
		return nil, nil
	}
	return doc.Data[entity.FieldName], nil
}
