package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Roles reconocidos por el motor.
const (
	RolCiudadano   = "ciudadano"
	RolFuncionario = "funcionario"
	RolSupervisor  = "supervisor"
	RolAdmin       = "admin"
)

var validRoles = map[string]struct{}{
	RolCiudadano:   {},
	RolFuncionario: {},
	RolSupervisor:  {},
	RolAdmin:       {},
}

// Identity es la identidad del llamador resuelta una vez por request a partir
// de los claims del token. El motor es stateless: toda operación la recibe
// como parámetro explícito.
type Identity struct {
	ID          uuid.UUID
	Nombre      string
	Rol         string
	Dependencia string
}

// IdentityFromClaims construye la identidad a partir de claims validados.
func IdentityFromClaims(claims *Claims) (Identity, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, errors.New("subject inválido")
	}

	rol := strings.ToLower(strings.TrimSpace(claims.Rol))
	if _, ok := validRoles[rol]; !ok {
		return Identity{}, errors.New("rol desconocido")
	}

	return Identity{
		ID:          id,
		Nombre:      strings.TrimSpace(claims.Nombre),
		Rol:         rol,
		Dependencia: strings.ToLower(strings.TrimSpace(claims.Dependencia)),
	}, nil
}

// EsAdmin indica autoridad transversal a dependencias.
func (i Identity) EsAdmin() bool {
	return i.Rol == RolAdmin
}

// EsPersonal indica si el llamador es personal municipal (no ciudadano).
func (i Identity) EsPersonal() bool {
	switch i.Rol {
	case RolFuncionario, RolSupervisor, RolAdmin:
		return true
	}
	return false
}

// PuedeSupervisar indica si el llamador puede resolver cierres de la
// dependencia dada: supervisor de esa dependencia o admin global.
func (i Identity) PuedeSupervisar(dependencia string) bool {
	if i.EsAdmin() {
		return true
	}
	return i.Rol == RolSupervisor && i.Dependencia == dependencia
}
