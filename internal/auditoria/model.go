package auditoria

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCambioInvalido = errors.New("tipo de cambio inválido")
)

// Tipos de cambio admitidos en la bitácora de auditoría. Los valores viajan
// tal cual en API y base de datos.
const (
	CambioAsignacionAgregada = "assignment_added"
	CambioAsignacionRemovida = "assignment_removed"
	CambioReasignado         = "reassigned"
	CambioCierreSolicitado   = "closure_requested"
	CambioCierreAprobado     = "closure_approved"
	CambioCierreRechazado    = "closure_rejected"
	CambioReabierto          = "reopened"
	CambioTipoModificado     = "type_changed"
)

var cambiosValidos = map[string]struct{}{
	CambioAsignacionAgregada: {},
	CambioAsignacionRemovida: {},
	CambioReasignado:         {},
	CambioCierreSolicitado:   {},
	CambioCierreAprobado:     {},
	CambioCierreRechazado:    {},
	CambioReabierto:          {},
	CambioTipoModificado:     {},
}

// Entrada es un registro inmutable del historial de un reporte. Una vez
// insertada nunca se actualiza ni se borra.
type Entrada struct {
	ID          uuid.UUID      `json:"id"`
	ReporteID   uuid.UUID      `json:"reporte_id"`
	Cambio      string         `json:"cambio"`
	ActorID     uuid.UUID      `json:"actor_id"`
	ActorNombre string         `json:"actor_nombre"`
	ActorRol    string         `json:"actor_rol"`
	Campo       *string        `json:"campo,omitempty"`
	Antes       *string        `json:"antes,omitempty"`
	Despues     *string        `json:"despues,omitempty"`
	Motivo      string         `json:"motivo"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EsCambioValido indica si el tipo de cambio está enumerado.
func EsCambioValido(cambio string) bool {
	_, ok := cambiosValidos[cambio]
	return ok
}
