package dto

// CreateCustomerRequest entrada para crear un cliente/empresa.
type CreateCustomerRequest struct {
	Name string `json:"name"`
}
