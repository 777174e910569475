package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/docstore"
)

var _ docstore.Store = (*Docstore)(nil)

// Docstore almacén de documentos sobre PostgreSQL: cada documento es una fila
// JSONB en la tabla documents, con su ruta como clave primaria y columnas
// derivadas (parent_path, collection, doc_id) para consultas por colección y
// enumeración de subcolecciones.
type Docstore struct {
	pool *pgxpool.Pool
}

// NewDocstore construye el adaptador sobre el pool.
func NewDocstore(pool *pgxpool.Pool) *Docstore {
	return &Docstore{pool: pool}
}

// Querier abstrae pool o tx de pgx para reutilizar las consultas.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnsureSchema crea la tabla de documentos si no existe.
func (s *Docstore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			path        text PRIMARY KEY,
			parent_path text NOT NULL,
			collection  text NOT NULL,
			doc_id      text NOT NULL,
			data        jsonb NOT NULL,
			updated_at  timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("crear tabla documents: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS documents_parent_col_idx
		ON documents (parent_path, collection)`)
	if err != nil {
		return fmt.Errorf("crear índice documents: %w", err)
	}
	return nil
}

// Get devuelve el documento en la ruta, o (nil, nil) si no existe.
func (s *Docstore) Get(ctx context.Context, path string) (*docstore.Document, error) {
	return getDoc(ctx, s.pool, path, false)
}

// Add crea un documento con id generado dentro de la colección.
func (s *Docstore) Add(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	id := uuid.New().String()
	if err := setDoc(ctx, s.pool, collectionPath+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Set crea o reemplaza el documento en la ruta.
func (s *Docstore) Set(ctx context.Context, path string, data map[string]any) error {
	return setDoc(ctx, s.pool, path, data)
}

// Update fusiona campos sobre un documento existente.
func (s *Docstore) Update(ctx context.Context, path string, fields map[string]any) error {
	return updateDoc(ctx, s.pool, path, fields)
}

// GetAll devuelve los documentos de una colección ordenados por id.
func (s *Docstore) GetAll(ctx context.Context, collectionPath string) ([]docstore.Document, error) {
	parent, col, err := docstore.SplitCollectionPath(collectionPath)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT path, doc_id, data FROM documents
		WHERE parent_path = $1 AND collection = $2
		ORDER BY doc_id`, parent, col)
	if err != nil {
		return nil, fmt.Errorf("leer colección %s: %w", collectionPath, err)
	}
	return scanDocs(rows)
}

// Query filtra una colección por igualdad de campo (data->field = value).
func (s *Docstore) Query(ctx context.Context, collectionPath, field, op string, value any) ([]docstore.Document, error) {
	return queryDocs(ctx, s.pool, collectionPath, field, op, value, false)
}

// ListSubcollections enumera las subcolecciones con documentos bajo la ruta.
func (s *Docstore) ListSubcollections(ctx context.Context, docPath string) ([]string, error) {
	if _, _, _, err := docstore.SplitDocPath(docPath); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT collection FROM documents
		WHERE parent_path = $1
		ORDER BY collection`, docPath)
	if err != nil {
		return nil, fmt.Errorf("listar subcolecciones de %s: %w", docPath, err)
	}
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// RunTransaction ejecuta fn dentro de una transacción pgx. Las lecturas
// bloquean las filas leídas (SELECT ... FOR UPDATE) para cerrar la carrera
// leer-luego-escribir entre reconciliaciones concurrentes; las escrituras se
// preparan y se aplican justo antes del commit, de modo que las consultas de
// la transacción solo ven el estado previo.
func (s *Docstore) RunTransaction(ctx context.Context, fn func(tx docstore.Tx) error) error {
	pgtx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgtx.Rollback(ctx) }()

	t := &pgTx{ctx: ctx, q: pgtx}
	if err := fn(t); err != nil {
		return err
	}
	if err := applyOps(ctx, pgtx, t.ops); err != nil {
		return err
	}
	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Batch crea un lote de escrituras que se aplica en una sola transacción.
func (s *Docstore) Batch() docstore.WriteBatch {
	return &pgBatch{pool: s.pool}
}

// ── transacción ─────────────────────────────────────────────────────────────

type pgTx struct {
	ctx context.Context
	q   Querier
	ops []writeOp
}

func (t *pgTx) Get(path string) (*docstore.Document, error) {
	return getDoc(t.ctx, t.q, path, true)
}

func (t *pgTx) Query(collectionPath, field, op string, value any) ([]docstore.Document, error) {
	return queryDocs(t.ctx, t.q, collectionPath, field, op, value, true)
}

func (t *pgTx) Set(path string, data map[string]any) {
	t.ops = append(t.ops, writeOp{kind: opSet, path: path, data: data})
}

func (t *pgTx) Update(path string, fields map[string]any) {
	t.ops = append(t.ops, writeOp{kind: opUpdate, path: path, data: fields})
}

// ── lote ────────────────────────────────────────────────────────────────────

type pgBatch struct {
	pool *pgxpool.Pool
	ops  []writeOp
}

func (b *pgBatch) Set(path string, data map[string]any) {
	b.ops = append(b.ops, writeOp{kind: opSet, path: path, data: data})
}

func (b *pgBatch) Update(path string, fields map[string]any) {
	b.ops = append(b.ops, writeOp{kind: opUpdate, path: path, data: fields})
}

func (b *pgBatch) Commit(ctx context.Context) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := applyOps(ctx, tx, b.ops); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// ── escrituras compartidas ──────────────────────────────────────────────────

const (
	opSet = iota
	opUpdate
)

type writeOp struct {
	kind int
	path string
	data map[string]any
}

func applyOps(ctx context.Context, q Querier, ops []writeOp) error {
	staged := make(map[string]bool)
	for _, op := range ops {
		switch op.kind {
		case opSet:
			if err := setDoc(ctx, q, op.path, op.data); err != nil {
				return err
			}
			staged[op.path] = true
		case opUpdate:
			err := updateDoc(ctx, q, op.path, op.data)
			if errors.Is(err, domain.ErrNotFound) && staged[op.path] {
				// La ruta la creó un Set preparado antes en el mismo lote.
				err = nil
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func getDoc(ctx context.Context, q Querier, path string, forUpdate bool) (*docstore.Document, error) {
	if _, _, _, err := docstore.SplitDocPath(path); err != nil {
		return nil, err
	}
	sql := `SELECT doc_id, data FROM documents WHERE path = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	var id string
	var raw []byte
	err := q.QueryRow(ctx, sql, path).Scan(&id, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	data, err := unmarshalData(raw)
	if err != nil {
		return nil, err
	}
	return &docstore.Document{ID: id, Path: path, Data: data}, nil
}

func setDoc(ctx context.Context, q Querier, path string, data map[string]any) error {
	parent, col, id, err := docstore.SplitDocPath(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("serializar documento %s: %w", path, err)
	}
	_, err = q.Exec(ctx, `
		INSERT INTO documents (path, parent_path, collection, doc_id, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		path, parent, col, id, raw)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func updateDoc(ctx context.Context, q Querier, path string, fields map[string]any) error {
	if _, _, _, err := docstore.SplitDocPath(path); err != nil {
		return err
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("serializar campos %s: %w", path, err)
	}
	tag, err := q.Exec(ctx, `
		UPDATE documents SET data = data || $2::jsonb, updated_at = now()
		WHERE path = $1`, path, raw)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func queryDocs(ctx context.Context, q Querier, collectionPath, field, op string, value any, forUpdate bool) ([]docstore.Document, error) {
	if op != docstore.OpEqual {
		return nil, domain.ErrInvalidInput
	}
	parent, col, err := docstore.SplitCollectionPath(collectionPath)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("serializar valor de consulta: %w", err)
	}
	sql := `
		SELECT path, doc_id, data FROM documents
		WHERE parent_path = $1 AND collection = $2 AND data -> $3 = $4::jsonb
		ORDER BY doc_id`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, sql, parent, col, field, raw)
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", collectionPath, field, err)
	}
	return scanDocs(rows)
}

func scanDocs(rows pgx.Rows) ([]docstore.Document, error) {
	defer rows.Close()
	out := make([]docstore.Document, 0)
	for rows.Next() {
		var path, id string
		var raw []byte
		if err := rows.Scan(&path, &id, &raw); err != nil {
			return nil, err
		}
		data, err := unmarshalData(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, docstore.Document{ID: id, Path: path, Data: data})
	}
	return out, rows.Err()
}

func unmarshalData(raw []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("deserializar documento: %w", err)
	}
	return data, nil
}
