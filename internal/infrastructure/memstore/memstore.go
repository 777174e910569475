package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
)

var _ docstore.Store = (*Memstore)(nil)

// Memstore almacén de documentos en memoria, protegido por mutex. Respaldo
// para desarrollo local (STORE_DRIVER=memory) y para los tests de casos de
// uso. Las transacciones serializan: el mutex se retiene durante todo
// RunTransaction, así las lecturas dentro de la transacción son consistentes
// y las escrituras preparadas se aplican sin intercalado.
type Memstore struct {
	mu        sync.Mutex
	docs      map[string]map[string]any // ruta de documento -> datos
	commitErr error
}

// New crea un almacén vacío.
func New() *Memstore {
	return &Memstore{docs: make(map[string]map[string]any)}
}

// FailCommits hace que los próximos commits de transacción/lote fallen con
// err sin aplicar escrituras (inyección de fallos en tests de atomicidad).
// Pasar nil restaura el comportamiento normal.
func (m *Memstore) FailCommits(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitErr = err
}

// Get devuelve el documento en la ruta, o (nil, nil) si no existe.
func (m *Memstore) Get(ctx context.Context, path string) (*docstore.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(path)
}

// Add crea un documento con id generado y devuelve el id.
func (m *Memstore) Add(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	if _, _, err := docstore.SplitCollectionPath(collectionPath); err != nil {
		return "", err
	}
	id := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[collectionPath+"/"+id] = deepCopy(data)
	return id, nil
}

// Set crea o reemplaza el documento en la ruta.
func (m *Memstore) Set(ctx context.Context, path string, data map[string]any) error {
	if _, _, _, err := docstore.SplitDocPath(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = deepCopy(data)
	return nil
}

// Update fusiona campos sobre un documento existente.
func (m *Memstore) Update(ctx context.Context, path string, fields map[string]any) error {
	if _, _, _, err := docstore.SplitDocPath(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(path, fields)
}

// GetAll devuelve los documentos de una colección ordenados por id.
func (m *Memstore) GetAll(ctx context.Context, collectionPath string) ([]docstore.Document, error) {
	if _, _, err := docstore.SplitCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getAllLocked(collectionPath), nil
}

// Query filtra una colección por igualdad de campo.
func (m *Memstore) Query(ctx context.Context, collectionPath, field, op string, value any) ([]docstore.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryLocked(collectionPath, field, op, value)
}

// ListSubcollections enumera las subcolecciones con documentos bajo la ruta,
// en orden alfabético. Una colección sin documentos no es enumerable.
func (m *Memstore) ListSubcollections(ctx context.Context, docPath string) ([]string, error) {
	if _, _, _, err := docstore.SplitDocPath(docPath); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	prefix := docPath + "/"
	for path := range m.docs {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := strings.Split(path[len(prefix):], "/")
		// Subcolección directa: exactamente colección/id bajo el documento.
		if len(rest) == 2 {
			seen[rest[0]] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols, nil
}

// RunTransaction ejecuta fn bajo el mutex del almacén: lecturas del estado
// confirmado, escrituras preparadas aplicadas todas al final o ninguna.
func (m *Memstore) RunTransaction(ctx context.Context, fn func(tx docstore.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &memTx{store: m}
	if err := fn(tx); err != nil {
		return err
	}
	return m.applyLocked(tx.ops)
}

// Batch crea un lote de escrituras atómico.
func (m *Memstore) Batch() docstore.WriteBatch {
	return &memBatch{store: m}
}

// ── internos (con el mutex tomado) ──────────────────────────────────────────

func (m *Memstore) getLocked(path string) (*docstore.Document, error) {
	_, _, id, err := docstore.SplitDocPath(path)
	if err != nil {
		return nil, err
	}
	data, ok := m.docs[path]
	if !ok {
		return nil, nil
	}
	return &docstore.Document{ID: id, Path: path, Data: deepCopy(data)}, nil
}

func (m *Memstore) getAllLocked(collectionPath string) []docstore.Document {
	prefix := collectionPath + "/"
	out := make([]docstore.Document, 0)
	for path, data := range m.docs {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		id := path[len(prefix):]
		if strings.Contains(id, "/") {
			continue // documento de una subcolección más profunda
		}
		out = append(out, docstore.Document{ID: id, Path: path, Data: deepCopy(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memstore) queryLocked(collectionPath, field, op string, value any) ([]docstore.Document, error) {
	if op != docstore.OpEqual {
		return nil, domain.ErrInvalidInput
	}
	if _, _, err := docstore.SplitCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	all := m.getAllLocked(collectionPath)
	out := make([]docstore.Document, 0)
	for _, doc := range all {
		if v, ok := doc.Data[field]; ok && v == value {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Memstore) updateLocked(path string, fields map[string]any) error {
	data, ok := m.docs[path]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range fields {
		data[k] = deepCopyValue(v)
	}
	return nil
}

func (m *Memstore) applyLocked(ops []writeOp) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	// Validar antes de tocar nada: un Update sobre ruta ausente anula el lote
	// completo (contando los Set preparados antes en el mismo lote).
	staged := make(map[string]bool)
	for _, op := range ops {
		switch op.kind {
		case opSet:
			staged[op.path] = true
		case opUpdate:
			if _, ok := m.docs[op.path]; !ok && !staged[op.path] {
				return domain.ErrNotFound
			}
		}
	}
	for _, op := range ops {
		switch op.kind {
		case opSet:
			m.docs[op.path] = deepCopy(op.data)
		case opUpdate:
			_ = m.updateLocked(op.path, op.data)
		}
	}
	return nil
}

// ── transacción y lote ──────────────────────────────────────────────────────

const (
	opSet = iota
	opUpdate
)

type writeOp struct {
	kind int
	path string
	data map[string]any
}

type memTx struct {
	store *Memstore
	ops   []writeOp
}

func (t *memTx) Get(path string) (*docstore.Document, error) {
	return t.store.getLocked(path)
}

func (t *memTx) Query(collectionPath, field, op string, value any) ([]docstore.Document, error) {
	return t.store.queryLocked(collectionPath, field, op, value)
}

func (t *memTx) Set(path string, data map[string]any) {
	t.ops = append(t.ops, writeOp{kind: opSet, path: path, data: deepCopy(data)})
}

func (t *memTx) Update(path string, fields map[string]any) {
	t.ops = append(t.ops, writeOp{kind: opUpdate, path: path, data: deepCopy(fields)})
}

type memBatch struct {
	store *Memstore
	ops   []writeOp
}

func (b *memBatch) Set(path string, data map[string]any) {
	b.ops = append(b.ops, writeOp{kind: opSet, path: path, data: deepCopy(data)})
}

func (b *memBatch) Update(path string, fields map[string]any) {
	b.ops = append(b.ops, writeOp{kind: opUpdate, path: path, data: deepCopy(fields)})
}

func (b *memBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return b.store.applyLocked(b.ops)
}

// deepCopy copia mapas y slices recursivamente; los valores escalares se
// comparten (los documentos nunca exponen referencias internas del almacén).
func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopy(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
