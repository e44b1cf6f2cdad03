package bitacora

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Categorías de nota de bitácora.
const (
	CategoriaObservacion = "observacion"
	CategoriaAvance      = "avance"
	CategoriaIncidente   = "incidente"
	CategoriaResolucion  = "resolucion"
)

var categoriasValidas = map[string]struct{}{
	CategoriaObservacion: {},
	CategoriaAvance:      {},
	CategoriaIncidente:   {},
	CategoriaResolucion:  {},
}

// Nota es una anotación de trabajo inmutable: solo se lista, nunca se
// edita. No genera entrada de auditoría porque es informativa, no un
// evento de rendición de cuentas.
type Nota struct {
	ID          uuid.UUID `json:"id"`
	ReporteID   uuid.UUID `json:"reporte_id"`
	AutorID     uuid.UUID `json:"autor_id"`
	AutorNombre string    `json:"autor_nombre"`
	Categoria   string    `json:"categoria"`
	Contenido   string    `json:"contenido"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizarCategoria baja a minúsculas y recorta espacios.
func NormalizarCategoria(categoria string) string {
	categoria = strings.ToLower(strings.TrimSpace(categoria))
	if categoria == "" {
		return CategoriaObservacion
	}
	return categoria
}

// EsCategoriaValida indica si la categoría está enumerada.
func EsCategoriaValida(categoria string) bool {
	_, ok := categoriasValidas[categoria]
	return ok
}
