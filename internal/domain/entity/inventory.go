package entity

import (
	"encoding/json"
	"strconv"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Campos de una entrada de inventario {productId, quantity, name}.
// La entrada se localiza por igualdad sobre productId, no por clave primaria;
// se asume a lo sumo una entrada viva por (bodega, productId), sin enforcement.
const (
	FieldProductID = "productId"
	FieldQuantity  = "quantity"
)

// ParseQuantity coerciona una cantidad almacenada o recibida a entero.
// Acepta enteros, float64 sin parte fraccionaria (decodificación JSON),
// json.Number y strings numéricos. Cualquier otra cosa es ErrInvalidInput:
// las cantidades no numéricas se rechazan en la frontera, no se propagan.
func ParseQuantity(v any) (int64, error) {
	switch q := v.(type) {
	case int:
		return int64(q), nil
	case int64:
		return q, nil
	case float64:
		n := int64(q)
		if float64(n) != q {
			return 0, domain.ErrInvalidInput
		}
		return n, nil
	case json.Number:
		n, err := q.Int64()
		if err != nil {
			return 0, domain.ErrInvalidInput
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			return 0, domain.ErrInvalidInput
		}
		return n, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}
