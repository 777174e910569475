package docstore

import "context"

// Document un documento del almacén: su ruta completa, su id (último segmento)
// y los datos de forma libre.
type Document struct {
	ID   string
	Path string
	Data map[string]any
}

// Operadores de consulta soportados. Solo igualdad; cualquier otro operador
// produce domain.ErrInvalidInput en los adaptadores.
const OpEqual = "=="

// Store contrato del almacén de documentos jerárquico (estilo colección/
// documento/subcolección). Las rutas alternan colección y documento:
// "products/p1", "warehouses/w1/inventory/i1".
//
// Implementaciones: postgres (producción, documentos como filas JSONB) y
// memstore (desarrollo local y tests).
type Store interface {
	// Get devuelve el documento en la ruta, o (nil, nil) si no existe.
	Get(ctx context.Context, path string) (*Document, error)
	// Add crea un documento con id generado dentro de la colección y devuelve el id.
	Add(ctx context.Context, collectionPath string, data map[string]any) (string, error)
	// Set crea o reemplaza el documento en la ruta.
	Set(ctx context.Context, path string, data map[string]any) error
	// Update fusiona campos sobre un documento existente; ErrNotFound si no existe.
	Update(ctx context.Context, path string, fields map[string]any) error
	// GetAll devuelve todos los documentos de una colección.
	GetAll(ctx context.Context, collectionPath string) ([]Document, error)
	// Query filtra una colección por igualdad de campo.
	Query(ctx context.Context, collectionPath, field, op string, value any) ([]Document, error)
	// ListSubcollections enumera los nombres de subcolecciones bajo un documento.
	ListSubcollections(ctx context.Context, docPath string) ([]string, error)
	// RunTransaction ejecuta fn con lecturas consistentes y escrituras
	// preparadas (Tx.Set/Tx.Update) aplicadas atómicamente al retornar fn sin
	// error. Si fn falla o el commit falla, ninguna escritura se aplica.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
	// Batch crea un lote de escrituras a confirmar con Commit (todo o nada).
	Batch() WriteBatch
}

// Tx operaciones disponibles dentro de una transacción. Las lecturas ven el
// estado confirmado previo a la transacción: las escrituras preparadas NO son
// visibles para Get/Query dentro de la misma transacción (modelo de lote del
// almacén de origen).
type Tx interface {
	Get(path string) (*Document, error)
	Query(collectionPath, field, op string, value any) ([]Document, error)
	Set(path string, data map[string]any)
	Update(path string, fields map[string]any)
}

// WriteBatch lote atómico de escrituras: o se aplican todas en Commit, o ninguna.
type WriteBatch interface {
	Set(path string, data map[string]any)
	Update(path string, fields map[string]any)
	Commit(ctx context.Context) error
}
