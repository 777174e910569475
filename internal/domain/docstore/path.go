package docstore

import (
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Las rutas alternan colección/documento: una ruta de documento tiene un
// número par de segmentos ("products/p1"), una de colección impar
// ("warehouses/w1/inventory"). Segmentos vacíos no son válidos.

// SplitDocPath separa una ruta de documento en (ruta del documento padre,
// nombre de la colección inmediata, id). El padre de un documento raíz es "".
func SplitDocPath(path string) (parentDoc, collection, id string, err error) {
	segs, err := segments(path)
	if err != nil {
		return "", "", "", err
	}
	if len(segs)%2 != 0 {
		return "", "", "", domain.ErrInvalidInput
	}
	id = segs[len(segs)-1]
	collection = segs[len(segs)-2]
	parentDoc = strings.Join(segs[:len(segs)-2], "/")
	return parentDoc, collection, id, nil
}

// SplitCollectionPath separa una ruta de colección en (ruta del documento
// padre, nombre de la colección). El padre de una colección raíz es "".
func SplitCollectionPath(path string) (parentDoc, collection string, err error) {
	segs, err := segments(path)
	if err != nil {
		return "", "", err
	}
	if len(segs)%2 != 1 {
		return "", "", domain.ErrInvalidInput
	}
	collection = segs[len(segs)-1]
	parentDoc = strings.Join(segs[:len(segs)-1], "/")
	return parentDoc, collection, nil
}

func segments(path string) ([]string, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if s == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	return segs, nil
}
