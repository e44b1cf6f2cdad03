package reporte

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/muniatiende/reportes/internal/auditoria"
	"github.com/muniatiende/reportes/internal/auth"
	"github.com/muniatiende/reportes/internal/catalogo"
	"github.com/muniatiende/reportes/internal/errores"
	"github.com/muniatiende/reportes/internal/usuario"
)

// MotivoMinimo es el piso de longitud para justificaciones que quedan como
// único sustento en la auditoría (reasignación y reapertura).
const MotivoMinimo = 10

// Store es el acceso a datos del motor. Las lecturas van directo al pool;
// las mutaciones corren dentro de EnTransaccion sobre una Unidad que
// bloquea la fila del reporte.
type Store interface {
	EnTransaccion(ctx context.Context, fn func(ctx context.Context, u Unidad) error) error
	ObtenerReporte(ctx context.Context, id uuid.UUID) (*Reporte, error)
	ListarReportes(ctx context.Context, filtro Filtro) ([]Reporte, error)
	ListarAsignaciones(ctx context.Context, reporteID uuid.UUID) ([]Asignacion, error)
	ObtenerSolicitud(ctx context.Context, id uuid.UUID) (*SolicitudCierre, error)
	Historial(ctx context.Context, reporteID uuid.UUID) ([]auditoria.Entrada, error)
	Resumen(ctx context.Context) (*Resumen, error)
}

// Unidad es la unidad de consistencia de un reporte: estado, asignaciones,
// solicitud pendiente y su entrada de auditoría comparten transacción.
type Unidad interface {
	CrearReporte(ctx context.Context, r *Reporte) error
	ReporteParaActualizar(ctx context.Context, id uuid.UUID) (*Reporte, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error
	ActualizarRuteo(ctx context.Context, id uuid.UUID, tipo, dependencia string) error
	CrearAsignacion(ctx context.Context, a Asignacion) (bool, error)
	EliminarAsignacion(ctx context.Context, reporteID, usuarioID uuid.UUID) (bool, error)
	ListarAsignaciones(ctx context.Context, reporteID uuid.UUID) ([]Asignacion, error)
	EstaAsignado(ctx context.Context, reporteID, usuarioID uuid.UUID) (bool, error)
	SolicitudPendiente(ctx context.Context, reporteID uuid.UUID) (*SolicitudCierre, error)
	CrearSolicitud(ctx context.Context, s *SolicitudCierre) error
	SolicitudParaActualizar(ctx context.Context, id uuid.UUID) (*SolicitudCierre, error)
	ResolverSolicitud(ctx context.Context, id uuid.UUID, aprobacion string, notas *string, resueltaPor uuid.UUID) error
	Auditar(ctx context.Context, entrada auditoria.Entrada) error
}

// Directorio resuelve personal municipal (rol y dependencia de destino).
type Directorio interface {
	Get(ctx context.Context, id uuid.UUID) (*usuario.Usuario, error)
}

// Service contiene las reglas del ciclo de vida de reportes. Es stateless:
// la identidad del llamador entra como parámetro en cada operación.
type Service struct {
	store    Store
	usuarios Directorio
	catalogo *catalogo.Catalogo
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService crea una nueva instancia del servicio.
func NewService(store Store, usuarios Directorio, cat *catalogo.Catalogo, cache *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{store: store, usuarios: usuarios, catalogo: cat, cache: cache, cacheTTL: cacheTTL}
}

// Crear da de alta un reporte ciudadano en estado abierto. La dependencia
// se deriva del tipo vía catálogo; los campos de ubicación llegan ya
// resueltos por la geocodificación externa.
func (s *Service) Crear(ctx context.Context, actor auth.Identity, input CrearInput) (*Reporte, error) {
	input.Tipo = strings.ToLower(strings.TrimSpace(input.Tipo))
	input.DescripcionCorta = strings.TrimSpace(input.DescripcionCorta)
	input.DescripcionLarga = strings.TrimSpace(input.DescripcionLarga)

	if input.DescripcionCorta == "" {
		return nil, errores.Validacion("descripcion_corta", "descripción obligatoria")
	}
	if input.Peso < 1 || input.Peso > 5 {
		return nil, errores.Validacion("peso", "peso debe estar entre 1 y 5")
	}

	dependencia, err := s.catalogo.DependenciaDeTipo(input.Tipo)
	if err != nil {
		return nil, errores.Validacion("tipo", "tipo fuera de catálogo")
	}

	r := &Reporte{
		ID:               uuid.New(),
		Tipo:             input.Tipo,
		Dependencia:      dependencia,
		DescripcionCorta: input.DescripcionCorta,
		DescripcionLarga: input.DescripcionLarga,
		Latitud:          input.Latitud,
		Longitud:         input.Longitud,
		Peso:             input.Peso,
		Prioridad:        PrioridadDePeso(input.Peso),
		Colonia:          input.Ubicacion.Colonia,
		CodigoPostal:     input.Ubicacion.CodigoPostal,
		Municipio:        input.Ubicacion.Municipio,
		Entidad:          input.Ubicacion.Entidad,
		Pais:             input.Ubicacion.Pais,
		Estado:           EstadoAbierto,
		CreadoPor:        actor.ID,
	}

	err = s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		return u.CrearReporte(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Obtener devuelve el reporte, con caché de lectura corta.
func (s *Service) Obtener(ctx context.Context, id uuid.UUID) (*Reporte, error) {
	key := claveReporte(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var r Reporte
			if json.Unmarshal(data, &r) == nil {
				return &r, nil
			}
		}
	}

	r, err := s.store.ObtenerReporte(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(r); err == nil {
			_ = s.cache.Set(ctx, key, payload, s.cacheTTL).Err()
		}
	}

	return r, nil
}

// Listar consulta reportes con filtros de tablero.
func (s *Service) Listar(ctx context.Context, filtro Filtro) ([]Reporte, error) {
	if len(filtro.Estado) > 0 {
		normalizados := make([]string, 0, len(filtro.Estado))
		for _, estado := range filtro.Estado {
			estado = NormalizarEstado(estado)
			if EsEstadoValido(estado) {
				normalizados = append(normalizados, estado)
			}
		}
		filtro.Estado = normalizados
	}
	return s.store.ListarReportes(ctx, filtro)
}

// Asignaciones lista los asignados vigentes del reporte.
func (s *Service) Asignaciones(ctx context.Context, reporteID uuid.UUID) ([]Asignacion, error) {
	return s.store.ListarAsignaciones(ctx, reporteID)
}

// Historial devuelve la auditoría del reporte, de la más antigua a la más
// reciente, con caché de lectura corta.
func (s *Service) Historial(ctx context.Context, reporteID uuid.UUID) ([]auditoria.Entrada, error) {
	key := claveHistorial(reporteID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var entradas []auditoria.Entrada
			if json.Unmarshal(data, &entradas) == nil {
				return entradas, nil
			}
		}
	}

	entradas, err := s.store.Historial(ctx, reporteID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entradas); err == nil {
			_ = s.cache.Set(ctx, key, payload, s.cacheTTL).Err()
		}
	}

	return entradas, nil
}

// Resumen consolida conteos para tableros.
func (s *Service) Resumen(ctx context.Context) (*Resumen, error) {
	return s.store.Resumen(ctx)
}

// Asignar agrega un funcionario al reporte. Idempotente: si ya está
// asignado, la operación es un no-op exitoso sin entrada de auditoría.
// La primera asignación avanza abierto→asignado.
func (s *Service) Asignar(ctx context.Context, actor auth.Identity, reporteID, usuarioID uuid.UUID, nota string) (*Reporte, error) {
	if !actor.EsPersonal() {
		return nil, errores.NoAutorizado("solo personal municipal puede asignar")
	}

	destino, err := s.resolverFuncionario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	var resultado *Reporte
	err = s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		r, err := u.ReporteParaActualizar(ctx, reporteID)
		if err != nil {
			return err
		}
		if err := rechazarSiInactivo(r); err != nil {
			return err
		}

		creada, err := u.CrearAsignacion(ctx, Asignacion{
			ReporteID:   reporteID,
			UsuarioID:   destino.ID,
			AsignadoPor: actor.ID,
			Nota:        strings.TrimSpace(nota),
		})
		if err != nil {
			return err
		}
		if !creada {
			resultado = r
			return nil
		}

		if r.Estado == EstadoAbierto {
			if err := transicionar(ctx, u, r, EstadoAsignado); err != nil {
				return err
			}
		}

		if err := u.Auditar(ctx, s.entrada(actor, reporteID, auditoria.CambioAsignacionAgregada, "", map[string]any{
			"usuario_id": destino.ID.String(),
			"usuario":    destino.Nombre,
		})); err != nil {
			return err
		}

		resultado = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, reporteID)
	return resultado, nil
}

// Desasignar retira un funcionario del reporte. No regresa el estado aunque
// quede sin asignados: el reporte puede esperar reasignación en asignado.
func (s *Service) Desasignar(ctx context.Context, actor auth.Identity, reporteID, usuarioID uuid.UUID) (*Reporte, error) {
	if !actor.EsPersonal() {
		return nil, errores.NoAutorizado("solo personal municipal puede desasignar")
	}

	var resultado *Reporte
	err := s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		r, err := u.ReporteParaActualizar(ctx, reporteID)
		if err != nil {
			return err
		}
		if r.Estado == EstadoCerrado {
			return errores.EstadoInvalido("el reporte está cerrado")
		}

		eliminada, err := u.EliminarAsignacion(ctx, reporteID, usuarioID)
		if err != nil {
			return err
		}
		if !eliminada {
			return errores.NoEncontrado("asignación inexistente")
		}

		if err := u.Auditar(ctx, s.entrada(actor, reporteID, auditoria.CambioAsignacionRemovida, "", map[string]any{
			"usuario_id": usuarioID.String(),
		})); err != nil {
			return err
		}

		resultado = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, reporteID)
	return resultado, nil
}

// Reasignar mueve el reporte a otro funcionario, posiblemente de otra
// dependencia. Si la dependencia cambia y no se pide conservar el tipo, se
// aplica el tipo sugerido del catálogo (o el indicado por el llamador) y se
// audita type_changed además de reassigned.
func (s *Service) Reasignar(ctx context.Context, actor auth.Identity, reporteID uuid.UUID, input ReasignarInput) (*Reporte, error) {
	if !actor.EsPersonal() {
		return nil, errores.NoAutorizado("solo personal municipal puede reasignar")
	}

	input.Motivo = strings.TrimSpace(input.Motivo)
	if len([]rune(input.Motivo)) < MotivoMinimo {
		return nil, errores.Validacion("motivo", fmt.Sprintf("motivo debe tener al menos %d caracteres", MotivoMinimo))
	}

	destino, err := s.resolverFuncionario(ctx, input.NuevoUsuarioID)
	if err != nil {
		return nil, err
	}

	var resultado *Reporte
	err = s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		r, err := u.ReporteParaActualizar(ctx, reporteID)
		if err != nil {
			return err
		}
		if err := rechazarSiInactivo(r); err != nil {
			return err
		}

		depAnterior := r.Dependencia
		cambiaDependencia := destino.Dependencia != r.Dependencia

		nuevoTipo := r.Tipo
		if cambiaDependencia && !input.MantenerTipo {
			if input.NuevoTipo != "" {
				candidato := strings.ToLower(strings.TrimSpace(input.NuevoTipo))
				if !s.catalogo.EsTipoValido(candidato, destino.Dependencia) {
					return errores.Validacion("nuevo_tipo", "tipo no válido para la dependencia destino")
				}
				nuevoTipo = candidato
			} else {
				sugerido, err := s.catalogo.TipoSugerido(destino.Dependencia)
				if err != nil {
					return errores.Validacion("dependencia", "dependencia destino fuera de catálogo")
				}
				nuevoTipo = sugerido
			}
		}

		// Retira asignaciones superadas y agrega la nueva con los
		// primitivos de asignación, sin auditorías sueltas: la
		// reasignación se audita como un todo.
		anteriores, err := u.ListarAsignaciones(ctx, reporteID)
		if err != nil {
			return err
		}
		removidos := make([]string, 0, len(anteriores))
		for _, a := range anteriores {
			if a.UsuarioID == destino.ID {
				continue
			}
			if _, err := u.EliminarAsignacion(ctx, reporteID, a.UsuarioID); err != nil {
				return err
			}
			removidos = append(removidos, a.UsuarioID.String())
		}
		if _, err := u.CrearAsignacion(ctx, Asignacion{
			ReporteID:   reporteID,
			UsuarioID:   destino.ID,
			AsignadoPor: actor.ID,
			Nota:        input.Motivo,
		}); err != nil {
			return err
		}

		if cambiaDependencia {
			if err := u.ActualizarRuteo(ctx, reporteID, nuevoTipo, destino.Dependencia); err != nil {
				return err
			}
		}

		if r.Estado == EstadoAbierto {
			if err := transicionar(ctx, u, r, EstadoAsignado); err != nil {
				return err
			}
		}

		reasignada := s.entrada(actor, reporteID, auditoria.CambioReasignado, input.Motivo, map[string]any{
			"usuario_id":           destino.ID.String(),
			"usuario":              destino.Nombre,
			"dependencia_anterior": depAnterior,
			"dependencia":          destino.Dependencia,
			"removidos":            removidos,
		})
		if err := u.Auditar(ctx, reasignada); err != nil {
			return err
		}

		if cambiaDependencia && nuevoTipo != r.Tipo {
			cambioTipo := s.entrada(actor, reporteID, auditoria.CambioTipoModificado, input.Motivo, map[string]any{
				"dependencia": destino.Dependencia,
			})
			campo := "tipo"
			antes := r.Tipo
			despues := nuevoTipo
			cambioTipo.Campo = &campo
			cambioTipo.Antes = &antes
			cambioTipo.Despues = &despues
			if err := u.Auditar(ctx, cambioTipo); err != nil {
				return err
			}
		}

		r.Tipo = nuevoTipo
		r.Dependencia = destino.Dependencia
		resultado = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, reporteID)
	return resultado, nil
}

// SolicitarCierre crea la solicitud de cierre de un asignado vigente y pasa
// el reporte a pendiente_cierre. Falla si ya existe una solicitud pendiente.
func (s *Service) SolicitarCierre(ctx context.Context, actor auth.Identity, reporteID uuid.UUID, input CierreInput) (*SolicitudCierre, error) {
	input.Notas = strings.TrimSpace(input.Notas)
	input.FirmaRef = strings.TrimSpace(input.FirmaRef)

	if input.Notas == "" {
		return nil, errores.Validacion("notas", "notas de cierre obligatorias")
	}
	if input.FirmaRef == "" {
		return nil, errores.Validacion("firma_ref", "firma digital obligatoria")
	}

	solicitud := &SolicitudCierre{
		ID:            uuid.New(),
		ReporteID:     reporteID,
		FuncionarioID: actor.ID,
		Notas:         input.Notas,
		FirmaRef:      input.FirmaRef,
		Evidencias:    input.Evidencias,
		Aprobacion:    AprobacionPendiente,
	}

	err := s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		r, err := u.ReporteParaActualizar(ctx, reporteID)
		if err != nil {
			return err
		}
		if r.Estado == EstadoCerrado {
			return errores.EstadoInvalido("el reporte está cerrado")
		}

		asignado, err := u.EstaAsignado(ctx, reporteID, actor.ID)
		if err != nil {
			return err
		}
		if !asignado {
			return errores.NoAutorizado("solo un asignado vigente puede solicitar el cierre")
		}

		pendiente, err := u.SolicitudPendiente(ctx, reporteID)
		if err != nil {
			return err
		}
		if pendiente != nil {
			return errores.Conflicto("ya existe una solicitud de cierre pendiente")
		}

		if err := u.CrearSolicitud(ctx, solicitud); err != nil {
			return err
		}
		if err := transicionar(ctx, u, r, EstadoPendienteCierre); err != nil {
			return err
		}

		return u.Auditar(ctx, s.entrada(actor, reporteID, auditoria.CambioCierreSolicitado, input.Notas, map[string]any{
			"solicitud_id": solicitud.ID.String(),
			"evidencias":   len(input.Evidencias),
		}))
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, reporteID)
	return solicitud, nil
}

// AprobarCierre resuelve la solicitud pendiente y cierra el reporte. Solo
// supervisores de la dependencia del reporte o admins.
func (s *Service) AprobarCierre(ctx context.Context, actor auth.Identity, solicitudID uuid.UUID, notas string) (*Reporte, error) {
	return s.resolverCierre(ctx, actor, solicitudID, notas, true)
}

// RechazarCierre devuelve el reporte a asignado. Las notas del supervisor
// son obligatorias: un rechazo sin razón declarada lo rechaza el motor.
func (s *Service) RechazarCierre(ctx context.Context, actor auth.Identity, solicitudID uuid.UUID, notas string) (*Reporte, error) {
	if strings.TrimSpace(notas) == "" {
		return nil, errores.Validacion("notas", "notas del supervisor obligatorias al rechazar")
	}
	return s.resolverCierre(ctx, actor, solicitudID, notas, false)
}

func (s *Service) resolverCierre(ctx context.Context, actor auth.Identity, solicitudID uuid.UUID, notas string, aprobar bool) (*Reporte, error) {
	notas = strings.TrimSpace(notas)

	var resultado *Reporte
	err := s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		solicitud, err := u.SolicitudParaActualizar(ctx, solicitudID)
		if err != nil {
			return err
		}

		r, err := u.ReporteParaActualizar(ctx, solicitud.ReporteID)
		if err != nil {
			return err
		}

		if !actor.PuedeSupervisar(r.Dependencia) {
			return errores.NoAutorizado("requiere supervisor de la dependencia o admin")
		}
		if solicitud.Aprobacion != AprobacionPendiente {
			return errores.Conflicto("la solicitud ya fue resuelta")
		}
		if r.Estado != EstadoPendienteCierre {
			return errores.EstadoInvalido("el reporte no está pendiente de cierre")
		}

		var notasPtr *string
		if notas != "" {
			notasPtr = &notas
		}

		if aprobar {
			if err := u.ResolverSolicitud(ctx, solicitudID, AprobacionAprobada, notasPtr, actor.ID); err != nil {
				return err
			}
			if err := transicionar(ctx, u, r, EstadoCerrado); err != nil {
				return err
			}
			if err := u.Auditar(ctx, s.entrada(actor, r.ID, auditoria.CambioCierreAprobado, notas, map[string]any{
				"solicitud_id": solicitudID.String(),
			})); err != nil {
				return err
			}
		} else {
			if err := u.ResolverSolicitud(ctx, solicitudID, AprobacionRechazada, notasPtr, actor.ID); err != nil {
				return err
			}
			if err := transicionar(ctx, u, r, EstadoAsignado); err != nil {
				return err
			}
			if err := u.Auditar(ctx, s.entrada(actor, r.ID, auditoria.CambioCierreRechazado, notas, map[string]any{
				"solicitud_id": solicitudID.String(),
			})); err != nil {
				return err
			}
		}

		resultado = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, resultado.ID)
	return resultado, nil
}

// Reabrir regresa un reporte cerrado a abierto. Frontera dura de
// autorización: exclusivo de admins, con motivo auditado.
func (s *Service) Reabrir(ctx context.Context, actor auth.Identity, reporteID uuid.UUID, motivo string) (*Reporte, error) {
	if !actor.EsAdmin() {
		return nil, errores.NoAutorizado("solo un admin puede reabrir reportes")
	}

	motivo = strings.TrimSpace(motivo)
	if len([]rune(motivo)) < MotivoMinimo {
		return nil, errores.Validacion("motivo", fmt.Sprintf("motivo debe tener al menos %d caracteres", MotivoMinimo))
	}

	var resultado *Reporte
	err := s.store.EnTransaccion(ctx, func(ctx context.Context, u Unidad) error {
		r, err := u.ReporteParaActualizar(ctx, reporteID)
		if err != nil {
			return err
		}
		if r.Estado != EstadoCerrado {
			return errores.EstadoInvalido("solo un reporte cerrado puede reabrirse")
		}

		if err := transicionar(ctx, u, r, EstadoAbierto); err != nil {
			return err
		}

		if err := u.Auditar(ctx, s.entrada(actor, reporteID, auditoria.CambioReabierto, motivo, nil)); err != nil {
			return err
		}

		resultado = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, reporteID)
	return resultado, nil
}

// ObtenerSolicitud consulta una solicitud de cierre.
func (s *Service) ObtenerSolicitud(ctx context.Context, id uuid.UUID) (*SolicitudCierre, error) {
	return s.store.ObtenerSolicitud(ctx, id)
}

func (s *Service) resolverFuncionario(ctx context.Context, id uuid.UUID) (*usuario.Usuario, error) {
	destino, err := s.usuarios.Get(ctx, id)
	if err != nil {
		if errors.Is(err, usuario.ErrNotFound) {
			return nil, errores.NoEncontrado("funcionario destino inexistente")
		}
		return nil, err
	}
	if !destino.Activo {
		return nil, errores.Validacion("usuario_id", "el funcionario destino está inactivo")
	}
	if destino.Rol != auth.RolFuncionario && destino.Rol != auth.RolSupervisor {
		return nil, errores.Validacion("usuario_id", "el destino debe ser funcionario")
	}
	return destino, nil
}

// transicionar valida el paso contra la tabla de transiciones y lo aplica.
func transicionar(ctx context.Context, u Unidad, r *Reporte, hacia string) error {
	if !TransicionValida(r.Estado, hacia) {
		return errores.EstadoInvalido(fmt.Sprintf("transición %s→%s no permitida", r.Estado, hacia))
	}
	if err := u.ActualizarEstado(ctx, r.ID, hacia); err != nil {
		return err
	}
	r.Estado = hacia
	return nil
}

// rechazarSiInactivo bloquea altas de asignación fuera de estados de
// trabajo: cerrado es terminal y pendiente_cierre espera al supervisor.
func rechazarSiInactivo(r *Reporte) error {
	switch r.Estado {
	case EstadoCerrado:
		return errores.EstadoInvalido("el reporte está cerrado")
	case EstadoPendienteCierre:
		return errores.EstadoInvalido("el reporte está pendiente de cierre")
	}
	return nil
}

func (s *Service) entrada(actor auth.Identity, reporteID uuid.UUID, cambio, motivo string, metadata map[string]any) auditoria.Entrada {
	return auditoria.Entrada{
		ReporteID:   reporteID,
		Cambio:      cambio,
		ActorID:     actor.ID,
		ActorNombre: actor.Nombre,
		ActorRol:    actor.Rol,
		Motivo:      motivo,
		Metadata:    metadata,
	}
}

func (s *Service) invalidar(ctx context.Context, reporteID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, claveReporte(reporteID), claveHistorial(reporteID)).Err()
}

func claveReporte(id uuid.UUID) string {
	return "reporte:" + id.String()
}

func claveHistorial(id uuid.UUID) string {
	return "auditoria:" + id.String()
}
