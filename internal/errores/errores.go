package errores

import (
	"errors"
	"fmt"
)

// Kinds de error que el motor reporta de forma síncrona al llamador.
const (
	KindNoEncontrado      = "not_found"
	KindEstadoInvalido    = "invalid_state"
	KindNoAutorizado      = "unauthorized"
	KindValidacionFallida = "validation_failed"
	KindConflicto         = "conflict"
)

// Error es un error de dominio con kind estable para mapear a HTTP y
// suficiente detalle para armar un mensaje de cara al usuario.
type Error struct {
	Kind    string
	Mensaje string
	Campo   string
}

func (e *Error) Error() string {
	if e.Campo != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Mensaje, e.Campo)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Mensaje)
}

// NoEncontrado construye un error de registro inexistente.
func NoEncontrado(mensaje string) *Error {
	return &Error{Kind: KindNoEncontrado, Mensaje: mensaje}
}

// EstadoInvalido construye un error de transición ilegal.
func EstadoInvalido(mensaje string) *Error {
	return &Error{Kind: KindEstadoInvalido, Mensaje: mensaje}
}

// NoAutorizado construye un error de permiso insuficiente.
func NoAutorizado(mensaje string) *Error {
	return &Error{Kind: KindNoAutorizado, Mensaje: mensaje}
}

// Validacion construye un error de entrada inválida sobre un campo.
func Validacion(campo, mensaje string) *Error {
	return &Error{Kind: KindValidacionFallida, Mensaje: mensaje, Campo: campo}
}

// Conflicto construye un error de concurrencia o duplicidad.
func Conflicto(mensaje string) *Error {
	return &Error{Kind: KindConflicto, Mensaje: mensaje}
}

// Es indica si err es un error de dominio del kind dado.
func Es(err error, kind string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// De extrae el error de dominio, si lo hay.
func De(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
