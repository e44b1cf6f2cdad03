package bitacora

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/muniatiende/reportes/internal/auth"
	"github.com/muniatiende/reportes/internal/errores"
	"github.com/muniatiende/reportes/internal/reporte"
)

type memNotas struct {
	notas []Nota
}

func (m *memNotas) Crear(ctx context.Context, nota *Nota) error {
	nota.ID = uuid.New()
	m.notas = append(m.notas, *nota)
	return nil
}

func (m *memNotas) Listar(ctx context.Context, reporteID uuid.UUID) ([]Nota, error) {
	var out []Nota
	for _, n := range m.notas {
		if n.ReporteID == reporteID {
			out = append(out, n)
		}
	}
	return out, nil
}

type consultorFijo struct {
	estado   string
	asignado bool
}

func (c consultorFijo) EstadoAsignacion(ctx context.Context, reporteID, usuarioID uuid.UUID) (string, bool, error) {
	return c.estado, c.asignado, nil
}

func TestAgregarNota(t *testing.T) {
	notas := &memNotas{}
	s := NewService(notas, consultorFijo{estado: reporte.EstadoAsignado, asignado: true})
	actor := auth.Identity{ID: uuid.New(), Nombre: "Flor", Rol: auth.RolFuncionario, Dependencia: "obras_publicas"}
	reporteID := uuid.New()

	nota, err := s.AgregarNota(context.Background(), actor, reporteID, "Avance", "  se retiró el escombro  ")
	if err != nil {
		t.Fatalf("AgregarNota: %v", err)
	}
	if nota.Categoria != CategoriaAvance {
		t.Fatalf("categoría esperada avance, got %s", nota.Categoria)
	}
	if nota.Contenido != "se retiró el escombro" {
		t.Fatalf("contenido sin recortar: %q", nota.Contenido)
	}

	listadas, err := s.ListarNotas(context.Background(), reporteID)
	if err != nil {
		t.Fatalf("ListarNotas: %v", err)
	}
	if len(listadas) != 1 {
		t.Fatalf("esperaba 1 nota, got %d", len(listadas))
	}
}

func TestAgregarNotaValidaciones(t *testing.T) {
	actor := auth.Identity{ID: uuid.New(), Rol: auth.RolFuncionario}
	reporteID := uuid.New()

	casos := []struct {
		nombre    string
		consultor consultorFijo
		categoria string
		contenido string
		kind      string
	}{
		{"categoría desconocida", consultorFijo{reporte.EstadoAsignado, true}, "chistes", "hola", errores.KindValidacionFallida},
		{"contenido vacío", consultorFijo{reporte.EstadoAsignado, true}, "avance", "   ", errores.KindValidacionFallida},
		{"reporte cerrado", consultorFijo{reporte.EstadoCerrado, true}, "avance", "algo", errores.KindEstadoInvalido},
		{"pendiente de cierre", consultorFijo{reporte.EstadoPendienteCierre, true}, "avance", "algo", errores.KindEstadoInvalido},
		{"no asignado", consultorFijo{reporte.EstadoAsignado, false}, "avance", "algo", errores.KindNoAutorizado},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			s := NewService(&memNotas{}, tc.consultor)
			_, err := s.AgregarNota(context.Background(), actor, reporteID, tc.categoria, tc.contenido)
			if !errores.Es(err, tc.kind) {
				t.Fatalf("esperaba %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestCategoriaVaciaCaeEnObservacion(t *testing.T) {
	s := NewService(&memNotas{}, consultorFijo{reporte.EstadoAsignado, true})
	actor := auth.Identity{ID: uuid.New(), Rol: auth.RolFuncionario}

	nota, err := s.AgregarNota(context.Background(), actor, uuid.New(), "", "revisión inicial del sitio")
	if err != nil {
		t.Fatalf("AgregarNota: %v", err)
	}
	if nota.Categoria != CategoriaObservacion {
		t.Fatalf("categoría esperada observacion, got %s", nota.Categoria)
	}
}
