package dto

// QuantityUpdate delta de cantidad para un producto. Quantity acepta número
// JSON o string numérico; la coerción a entero ocurre en el caso de uso.
type QuantityUpdate struct {
	ProductID string `json:"productId"`
	Quantity  any    `json:"quantity"`
}

// ReconcileRequest entrada de la reconciliación de inventario.
type ReconcileRequest struct {
	WarehouseID string           `json:"warehouseId"`
	Updates     []QuantityUpdate `json:"updates"`
}

// WarehouseInventoryResponse inventario de una bodega.
type WarehouseInventoryResponse struct {
	WarehouseID string             `json:"warehouseId"`
	Items       []DocumentResponse `json:"items"`
}
