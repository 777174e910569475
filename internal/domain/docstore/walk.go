package docstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// DefaultMaxWalkDepth niveles de subcolecciones que Walk acepta antes de
// fallar cerrado. El modelo de datos real anida un solo nivel (bodega →
// inventario); el margen cubre datos malformados sin permitir recursión
// desbocada.
const DefaultMaxWalkDepth = 10

// CollectionDump una subcolección aplanada: su nombre y todos sus documentos.
type CollectionDump struct {
	Collection string     `json:"collection"`
	Documents  []Document `json:"documents"`
}

// Walk enumera recursivamente las subcolecciones bajo un documento y las
// aplana en una sola secuencia. Para cada subcolección directa C (en el orden
// del almacén) se anexa la entrada agregada de C y después se recorre cada
// documento de C, anexando sus descendientes, antes de avanzar a la siguiente
// subcolección hermana. Un documento sin subcolecciones produce la secuencia
// vacía.
//
// maxDepth acota la recursión (<=0 usa DefaultMaxWalkDepth); superarla
// devuelve domain.ErrMaxDepth. Cualquier fallo de lectura aborta el recorrido
// completo.
func Walk(ctx context.Context, s Store, docPath string, maxDepth int) ([]CollectionDump, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxWalkDepth
	}
	out := make([]CollectionDump, 0)
	if err := walk(ctx, s, docPath, maxDepth, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(ctx context.Context, s Store, docPath string, depth int, out *[]CollectionDump) error {
	cols, err := s.ListSubcollections(ctx, docPath)
	if err != nil {
		return fmt.Errorf("listar subcolecciones de %s: %w", docPath, err)
	}
	if len(cols) > 0 && depth == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMaxDepth, docPath)
	}
	for _, col := range cols {
		colPath := docPath + "/" + col
		docs, err := s.GetAll(ctx, colPath)
		if err != nil {
			return fmt.Errorf("leer colección %s: %w", colPath, err)
		}
		*out = append(*out, CollectionDump{Collection: col, Documents: docs})
		for _, doc := range docs {
			if err := walk(ctx, s, doc.Path, depth-1, out); err != nil {
				return err
			}
		}
	}
	return nil
}
