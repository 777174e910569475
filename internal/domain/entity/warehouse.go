package entity

// ColWarehouses colección raíz de bodegas. Cada bodega posee la subcolección
// "inventory"; una bodega recién creada tiene la subcolección vacía (sin
// documentos marcador).
const (
	ColWarehouses = "warehouses"
	ColInventory  = "inventory"
)

// WarehousePath ruta del documento de una bodega.
func WarehousePath(warehouseID string) string {
	return ColWarehouses + "/" + warehouseID
}

// InventoryCol ruta de la subcolección de inventario de una bodega.
func InventoryCol(warehouseID string) string {
	return ColWarehouses + "/" + warehouseID + "/" + ColInventory
}
