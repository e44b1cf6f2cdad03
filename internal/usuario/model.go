package usuario

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("usuario no encontrado")
)

// Usuario es el directorio de personal municipal consultado por el motor
// para resolver rol y dependencia de destinatarios de asignación.
type Usuario struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Rol         string    `json:"rol"`
	Dependencia string    `json:"dependencia"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}
