package dto

import "github.com/jhoicas/almacen-api/internal/domain/docstore"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name string `json:"name"`
}

// WarehouseDetailResponse bodega con sus subcolecciones anidadas aplanadas
// (hoy solo "inventory", en orden de recorrido).
type WarehouseDetailResponse struct {
	Warehouse   DocumentResponse          `json:"warehouse"`
	Collections []docstore.CollectionDump `json:"collections"`
}
