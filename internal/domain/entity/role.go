package entity

// Role rol efectivo de un usuario, resuelto por pertenencia en el documento
// singleton de asignación de roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// RolesDocPath ruta del documento singleton {admins: [...], users: [...]}.
// La ausencia de un userId en ambas listas implica rol guest.
const RolesDocPath = "config/roles"

// Campos del documento de roles.
const (
	FieldAdmins = "admins"
	FieldUsers  = "users"
)
