package entity

// ColProducts colección raíz de productos. Los documentos son de forma libre;
// la API solo gestiona name y disabled (soft-disable, nunca borrado físico).
const ColProducts = "products"

// Campos gestionados por la API en cualquier colección.
const (
	FieldName       = "name"
	FieldDisabled   = "disabled"
	FieldDisabledOn = "disabledOn"
	FieldDisabledBy = "disabledBy"
)
