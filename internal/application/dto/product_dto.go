package dto

// Los productos son documentos de forma libre: la creación recibe el cuerpo
// JSON tal cual (campos reservados id/disabled aparte). Solo la actualización
// tiene forma fija.

// UpdateProductRequest entrada para modificar un producto (solo el nombre,
// como el modifyProduct original).
type UpdateProductRequest struct {
	Name string `json:"name"`
}
