package dto

// MeResponse identidad y rol efectivo del portador del token.
type MeResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
