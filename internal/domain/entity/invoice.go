package entity

import "github.com/jhoicas/almacen-api/internal/domain"

// InvoiceKind distingue facturas de entrada (compras) y de salida (ventas).
type InvoiceKind string

const (
	InvoiceIncoming InvoiceKind = "incoming"
	InvoiceOutgoing InvoiceKind = "outgoing"
)

// Colecciones raíz de facturas. Inmutables salvo el soft-disable.
const (
	ColIncomingInvoices = "incomingInvoices"
	ColOutgoingInvoices = "outgoingInvoices"
)

// Campos propios de una factura.
const (
	FieldCompany     = "company"
	FieldProducts    = "products"
	FieldWarehouseID = "warehouseId"
	FieldCreatedOn   = "createdOn"
	FieldCreatedBy   = "createdBy"
)

// Collection devuelve la colección que corresponde al tipo de factura.
func (k InvoiceKind) Collection() (string, error) {
	switch k {
	case InvoiceIncoming:
		return ColIncomingInvoices, nil
	case InvoiceOutgoing:
		return ColOutgoingInvoices, nil
	default:
		return "", domain.ErrInvalidInput
	}
}
