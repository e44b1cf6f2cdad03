package bitacora

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/muniatiende/reportes/internal/auth"
	"github.com/muniatiende/reportes/internal/errores"
	"github.com/muniatiende/reportes/internal/reporte"
)

// Notas es el acceso a datos de la bitácora.
type Notas interface {
	Crear(ctx context.Context, nota *Nota) error
	Listar(ctx context.Context, reporteID uuid.UUID) ([]Nota, error)
}

// ConsultorReportes resuelve estado del reporte y vigencia de asignación
// del autor. Lo implementa el repositorio de reportes.
type ConsultorReportes interface {
	EstadoAsignacion(ctx context.Context, reporteID, usuarioID uuid.UUID) (string, bool, error)
}

// Service aplica las reglas de la bitácora de trabajo.
type Service struct {
	notas    Notas
	reportes ConsultorReportes
}

// NewService crea una nueva instancia del servicio.
func NewService(notas Notas, reportes ConsultorReportes) *Service {
	return &Service{notas: notas, reportes: reportes}
}

// AgregarNota anexa una nota de trabajo. Solo asignados vigentes, y solo
// mientras el reporte no esté pendiente de cierre ni cerrado. No cambia
// estado ni escribe auditoría.
func (s *Service) AgregarNota(ctx context.Context, actor auth.Identity, reporteID uuid.UUID, categoria, contenido string) (*Nota, error) {
	categoria = NormalizarCategoria(categoria)
	if !EsCategoriaValida(categoria) {
		return nil, errores.Validacion("categoria", "categoría de nota desconocida")
	}

	contenido = strings.TrimSpace(contenido)
	if contenido == "" {
		return nil, errores.Validacion("contenido", "contenido obligatorio")
	}

	estado, asignado, err := s.reportes.EstadoAsignacion(ctx, reporteID, actor.ID)
	if err != nil {
		return nil, err
	}
	switch estado {
	case reporte.EstadoCerrado:
		return nil, errores.EstadoInvalido("el reporte está cerrado")
	case reporte.EstadoPendienteCierre:
		return nil, errores.EstadoInvalido("el reporte está pendiente de cierre")
	}
	if !asignado {
		return nil, errores.NoAutorizado("solo un asignado vigente puede anotar la bitácora")
	}

	nota := &Nota{
		ReporteID:   reporteID,
		AutorID:     actor.ID,
		AutorNombre: actor.Nombre,
		Categoria:   categoria,
		Contenido:   contenido,
	}

	if err := s.notas.Crear(ctx, nota); err != nil {
		return nil, err
	}

	return nota, nil
}

// ListarNotas devuelve la bitácora completa del reporte.
func (s *Service) ListarNotas(ctx context.Context, reporteID uuid.UUID) ([]Nota, error) {
	return s.notas.Listar(ctx, reporteID)
}
