package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/docstore"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// filterEnabled descarta los documentos con disabled=true.
func filterEnabled(docs []docstore.Document) []docstore.Document {
	out := make([]docstore.Document, 0, len(docs))
	for _, d := range docs {
		if disabled, _ := d.Data[entity.FieldDisabled].(bool); disabled {
			continue
		}
		out = append(out, d)
	}
	return out
}

// disableDoc aplica el soft-disable estándar sobre una ruta: disabled=true,
// quién y cuándo. Propaga ErrNotFound si el documento no existe.
func disableDoc(ctx context.Context, store docstore.Store, path, disabledBy string) error {
	err := store.Update(ctx, path, map[string]any{
		entity.FieldDisabled:   true,
		entity.FieldDisabledOn: time.Now().UTC().Format(time.RFC3339),
		entity.FieldDisabledBy: disabledBy,
	})
	if err != nil {
		return fmt.Errorf("deshabilitar %s: %w", path, err)
	}
	return nil
}
