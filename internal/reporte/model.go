package reporte

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Estados del ciclo de vida de un reporte.
const (
	EstadoAbierto         = "abierto"
	EstadoAsignado        = "asignado"
	EstadoPendienteCierre = "pendiente_cierre"
	EstadoCerrado         = "cerrado"
)

// Resolución de una solicitud de cierre.
const (
	AprobacionPendiente = "pendiente"
	AprobacionAprobada  = "aprobada"
	AprobacionRechazada = "rechazada"
)

// Niveles de prioridad derivados del peso.
const (
	PrioridadAlta  = "alta"
	PrioridadMedia = "media"
	PrioridadBaja  = "baja"
)

// transiciones es la tabla de transiciones legales. Todo cambio de estado
// pasa por aquí; no existen escrituras directas de campo.
var transiciones = map[string][]string{
	EstadoAbierto:         {EstadoAsignado, EstadoPendienteCierre},
	EstadoAsignado:        {EstadoPendienteCierre},
	EstadoPendienteCierre: {EstadoCerrado, EstadoAsignado},
	EstadoCerrado:         {EstadoAbierto},
}

// TransicionValida indica si el paso desde→hacia está en la tabla.
func TransicionValida(desde, hacia string) bool {
	for _, permitido := range transiciones[desde] {
		if permitido == hacia {
			return true
		}
	}
	return false
}

// EsEstadoValido indica si el estado existe.
func EsEstadoValido(estado string) bool {
	switch estado {
	case EstadoAbierto, EstadoAsignado, EstadoPendienteCierre, EstadoCerrado:
		return true
	}
	return false
}

// PrioridadDePeso deriva el nivel de prioridad del peso 1–5.
func PrioridadDePeso(peso int) string {
	switch {
	case peso >= 4:
		return PrioridadAlta
	case peso >= 2:
		return PrioridadMedia
	default:
		return PrioridadBaja
	}
}

// Reporte es la entidad central del motor. Los campos de ubicación
// administrativa los llena el colaborador externo de geocodificación y el
// motor los trata como opacos; la dependencia se deriva del tipo vía
// catálogo.
type Reporte struct {
	ID               uuid.UUID `json:"id"`
	Tipo             string    `json:"tipo"`
	Dependencia      string    `json:"dependencia"`
	DescripcionCorta string    `json:"descripcion_corta"`
	DescripcionLarga string    `json:"descripcion_larga"`
	Latitud          float64   `json:"latitud"`
	Longitud         float64   `json:"longitud"`
	Peso             int       `json:"peso"`
	Prioridad        string    `json:"prioridad"`
	Colonia          string    `json:"colonia"`
	CodigoPostal     string    `json:"codigo_postal"`
	Municipio        string    `json:"municipio"`
	Entidad          string    `json:"entidad"`
	Pais             string    `json:"pais"`
	Estado           string    `json:"estado"`
	CreadoPor        uuid.UUID `json:"creado_por"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Asignacion vincula un funcionario con un reporte. Un usuario aparece a lo
// más una vez por reporte.
type Asignacion struct {
	ReporteID   uuid.UUID `json:"reporte_id"`
	UsuarioID   uuid.UUID `json:"usuario_id"`
	AsignadoPor uuid.UUID `json:"asignado_por"`
	Nota        string    `json:"nota"`
	CreatedAt   time.Time `json:"created_at"`
}

// SolicitudCierre es la petición de cierre de un funcionario, pendiente de
// resolución por un supervisor. A lo más una pendiente por reporte.
type SolicitudCierre struct {
	ID              uuid.UUID  `json:"id"`
	ReporteID       uuid.UUID  `json:"reporte_id"`
	FuncionarioID   uuid.UUID  `json:"funcionario_id"`
	Notas           string     `json:"notas"`
	FirmaRef        string     `json:"firma_ref"`
	Evidencias      []string   `json:"evidencias"`
	Aprobacion      string     `json:"aprobacion"`
	NotasSupervisor *string    `json:"notas_supervisor,omitempty"`
	ResueltaPor     *uuid.UUID `json:"resuelta_por,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ResueltaAt      *time.Time `json:"resuelta_at,omitempty"`
}

// Ubicacion agrupa los campos administrativos que entrega la
// geocodificación inversa externa.
type Ubicacion struct {
	Colonia      string `json:"colonia"`
	CodigoPostal string `json:"codigo_postal"`
	Municipio    string `json:"municipio"`
	Entidad      string `json:"entidad"`
	Pais         string `json:"pais"`
}

// CrearInput encapsula el alta de un reporte ciudadano.
type CrearInput struct {
	Tipo             string
	DescripcionCorta string
	DescripcionLarga string
	Latitud          float64
	Longitud         float64
	Peso             int
	Ubicacion        Ubicacion
	CreadoPor        uuid.UUID
}

// CierreInput encapsula una solicitud de cierre.
type CierreInput struct {
	Notas      string
	FirmaRef   string
	Evidencias []string
}

// ReasignarInput encapsula una reasignación interdepartamental.
type ReasignarInput struct {
	NuevoUsuarioID uuid.UUID
	Motivo         string
	NuevoTipo      string
	MantenerTipo   bool
}

// Filtro limita la consulta de reportes.
type Filtro struct {
	Estado      []string
	Dependencia string
	AsignadoA   *uuid.UUID
	Limit       int
	Offset      int
}

// Resumen consolida conteos para los tableros consumidores.
type Resumen struct {
	PorEstado      map[string]int `json:"por_estado"`
	PorPrioridad   map[string]int `json:"por_prioridad"`
	PorDependencia map[string]int `json:"por_dependencia"`
}

// NormalizarEstado baja a minúsculas y recorta espacios.
func NormalizarEstado(estado string) string {
	return strings.ToLower(strings.TrimSpace(estado))
}
