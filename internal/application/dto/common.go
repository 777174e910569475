package dto

import "github.com/jhoicas/almacen-api/internal/domain/docstore"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// DocumentResponse documento aplanado: id + los campos del documento, como
// los devolvía la API original ({id, ...doc.data()}).
type DocumentResponse map[string]any

// NewDocumentResponse aplana un documento del almacén.
func NewDocumentResponse(doc docstore.Document) DocumentResponse {
	out := make(DocumentResponse, len(doc.Data)+1)
	for k, v := range doc.Data {
		out[k] = v
	}
	out["id"] = doc.ID
	return out
}

// NewDocumentList aplana una lista de documentos.
func NewDocumentList(docs []docstore.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewDocumentResponse(d))
	}
	return out
}
