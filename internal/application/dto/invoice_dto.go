package dto

// InvoiceLine renglón de factura. Quantity acepta número JSON o string
// numérico, igual que en la reconciliación.
type InvoiceLine struct {
	ProductID string `json:"productId"`
	Quantity  any    `json:"quantity"`
}

// CreateInvoiceRequest entrada para crear una factura de entrada o salida.
type CreateInvoiceRequest struct {
	CompanyID   string        `json:"companyId"`
	WarehouseID string        `json:"warehouseId"`
	Products    []InvoiceLine `json:"products"`
}
