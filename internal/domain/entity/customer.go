package entity

// ColCustomers colección raíz de clientes/empresas {name, disabled, createdAt}.
// Las facturas desnormalizan {uid, name} de esta colección al crearse.
const ColCustomers = "customers"

// FieldCreatedAt marca de creación asignada por el servidor.
const FieldCreatedAt = "createdAt"

// CustomerPath ruta del documento de un cliente.
func CustomerPath(customerID string) string {
	return ColCustomers + "/" + customerID
}
