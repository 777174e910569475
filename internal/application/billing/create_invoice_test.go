package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/billing"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
)

func setupInvoices(t *testing.T) (*memstore.Memstore, *billing.InvoiceUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, entity.CustomerPath("c1"), map[string]any{
		entity.FieldName:     "Acme S.A.S.",
		entity.FieldDisabled: false,
	}))
	return store, billing.NewInvoiceUseCase(store)
}

func TestInvoice_CreateConSnapshotDeEmpresa(t *testing.T) {
	ctx := context.Background()
	store, uc := setupInvoices(t)

	id, err := uc.Create(ctx, entity.InvoiceIncoming, "alice", dto.CreateInvoiceRequest{
		CompanyID:   "c1",
		WarehouseID: "w1",
		Products: []dto.InvoiceLine{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: "3"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.Get(ctx, entity.ColIncomingInvoices+"/"+id)
	require.NoError(t, err)
	require.NotNil(t, doc)

	company, ok := doc.Data[entity.FieldCompany].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "c1", company["uid"])
	assert.Equal(t, "Acme S.A.S.", company[entity.FieldName])

	lines, ok := doc.Data[entity.FieldProducts].([]any)
	require.True(t, ok)
	require.Len(t, lines, 2)
	first := lines[0].(map[string]any)
	assert.Equal(t, "p1", first[entity.FieldProductID])
	assert.Equal(t, int64(5), first[entity.FieldQuantity])

	assert.Equal(t, "w1", doc.Data[entity.FieldWarehouseID])
	assert.Equal(t, "alice", doc.Data[entity.FieldCreatedBy])
	assert.Equal(t, false, doc.Data[entity.FieldDisabled])
	assert.NotEmpty(t, doc.Data[entity.FieldCreatedOn])
}

// El snapshot es del momento de creación: renombrar la empresa después no
// altera la factura.
func TestInvoice_SnapshotInmutable(t *testing.T) {
	ctx := context.Background()
	store, uc := setupInvoices(t)

	id, err := uc.Create(ctx, entity.InvoiceOutgoing, "alice", dto.CreateInvoiceRequest{
		CompanyID:   "c1",
		WarehouseID: "w1",
		Products:    []dto.InvoiceLine{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, entity.CustomerPath("c1"),
		map[string]any{entity.FieldName: "Acme Renombrada"}))

	doc, err := store.Get(ctx, entity.ColOutgoingInvoices+"/"+id)
	require.NoError(t, err)
	company := doc.Data[entity.FieldCompany].(map[string]any)
	assert.Equal(t, "Acme S.A.S.", company[entity.FieldName])
}

func TestInvoice_CreateEntradaInvalida(t *testing.T) {
	ctx := context.Background()
	store, uc := setupInvoices(t)

	// Empresa deshabilitada para el caso correspondiente.
	require.NoError(t, store.Set(ctx, entity.CustomerPath("c2"), map[string]any{
		entity.FieldName:     "Cerrada Ltda.",
		entity.FieldDisabled: true,
	}))

	linea := []dto.InvoiceLine{{ProductID: "p1", Quantity: 1}}
	cases := []struct {
		name string
		req  dto.CreateInvoiceRequest
	}{
		{"sin empresa", dto.CreateInvoiceRequest{WarehouseID: "w1", Products: linea}},
		{"sin bodega", dto.CreateInvoiceRequest{CompanyID: "c1", Products: linea}},
		{"sin renglones", dto.CreateInvoiceRequest{CompanyID: "c1", WarehouseID: "w1"}},
		{"empresa desconocida", dto.CreateInvoiceRequest{CompanyID: "fantasma", WarehouseID: "w1", Products: linea}},
		{"empresa deshabilitada", dto.CreateInvoiceRequest{CompanyID: "c2", WarehouseID: "w1", Products: linea}},
		{"cantidad no numérica", dto.CreateInvoiceRequest{CompanyID: "c1", WarehouseID: "w1",
			Products: []dto.InvoiceLine{{ProductID: "p1", Quantity: "varios"}}}},
		{"renglón sin producto", dto.CreateInvoiceRequest{CompanyID: "c1", WarehouseID: "w1",
			Products: []dto.InvoiceLine{{ProductID: "", Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, entity.InvoiceIncoming, "alice", tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Ninguna factura quedó persistida.
	docs, err := store.GetAll(ctx, entity.ColIncomingInvoices)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestInvoice_TipoInvalido(t *testing.T) {
	_, uc := setupInvoices(t)
	_, err := uc.Create(context.Background(), entity.InvoiceKind("sideways"), "alice", dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoice_ListExcluyeAnuladas(t *testing.T) {
	ctx := context.Background()
	_, uc := setupInvoices(t)

	req := dto.CreateInvoiceRequest{
		CompanyID:   "c1",
		WarehouseID: "w1",
		Products:    []dto.InvoiceLine{{ProductID: "p1", Quantity: 1}},
	}
	id1, err := uc.Create(ctx, entity.InvoiceIncoming, "alice", req)
	require.NoError(t, err)
	id2, err := uc.Create(ctx, entity.InvoiceIncoming, "alice", req)
	require.NoError(t, err)

	require.NoError(t, uc.Disable(ctx, entity.InvoiceIncoming, id1, "alice"))

	list, err := uc.List(ctx, entity.InvoiceIncoming)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id2, list[0]["id"])

	// La factura anulada sigue legible por id, con su rastro de anulación.
	doc, err := uc.GetByID(ctx, entity.InvoiceIncoming, id1)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, true, doc[entity.FieldDisabled])
	assert.Equal(t, "alice", doc[entity.FieldDisabledBy])
}

func TestInvoice_DisableAusente(t *testing.T) {
	_, uc := setupInvoices(t)
	err := uc.Disable(context.Background(), entity.InvoiceOutgoing, "no-existe", "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
