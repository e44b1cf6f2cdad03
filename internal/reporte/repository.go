package reporte

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muniatiende/reportes/internal/auditoria"
	"github.com/muniatiende/reportes/internal/db"
	"github.com/muniatiende/reportes/internal/errores"
)

const columnasReporte = `id, tipo, dependencia, descripcion_corta, descripcion_larga, latitud, longitud, peso, prioridad, colonia, codigo_postal, municipio, entidad, pais, estado, creado_por, created_at, updated_at`

const columnasSolicitud = `id, reporte_id, funcionario_id, notas, firma_ref, evidencias, aprobacion, notas_supervisor, resuelta_por, created_at, resuelta_at`

// Repository implementa Store sobre Postgres. Las mutaciones corren dentro
// de una transacción que bloquea la fila del reporte (SELECT ... FOR
// UPDATE), de modo que estado, asignaciones, solicitud pendiente y
// auditoría forman una sola unidad serial por reporte.
type Repository struct {
	pool     *pgxpool.Pool
	auditora *auditoria.Repository
}

// NewRepository crea instancia del repositorio.
func NewRepository(pool *pgxpool.Pool, auditora *auditoria.Repository) *Repository {
	return &Repository{pool: pool, auditora: auditora}
}

// EnTransaccion ejecuta fn dentro de una transacción explícita.
func (r *Repository) EnTransaccion(ctx context.Context, fn func(ctx context.Context, u Unidad) error) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &unidad{tx: tx, auditora: r.auditora})
	})
}

// ObtenerReporte busca un reporte por id.
func (r *Repository) ObtenerReporte(ctx context.Context, id uuid.UUID) (*Reporte, error) {
	query := fmt.Sprintf(`SELECT %s FROM reportes WHERE id = $1`, columnasReporte)
	row := r.pool.QueryRow(ctx, query, id)
	return scanReporte(row)
}

// ListarReportes lista reportes aplicando filtros simples.
func (r *Repository) ListarReportes(ctx context.Context, filtro Filtro) ([]Reporte, error) {
	base := fmt.Sprintf(`SELECT %s FROM reportes`, columnasReporte)

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if len(filtro.Estado) > 0 {
		clauses = append(clauses, fmt.Sprintf("estado = ANY($%d)", idx))
		args = append(args, filtro.Estado)
		idx++
	}

	if filtro.Dependencia != "" {
		clauses = append(clauses, fmt.Sprintf("dependencia = $%d", idx))
		args = append(args, strings.ToLower(strings.TrimSpace(filtro.Dependencia)))
		idx++
	}

	if filtro.AsignadoA != nil {
		clauses = append(clauses, fmt.Sprintf("id IN (SELECT reporte_id FROM asignaciones WHERE usuario_id = $%d)", idx))
		args = append(args, *filtro.AsignadoA)
		idx++
	}

	query := base
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit := filtro.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filtro.Offset
	if offset < 0 {
		offset = 0
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reportes []Reporte
	for rows.Next() {
		rep, err := scanReporte(rows)
		if err != nil {
			return nil, err
		}
		reportes = append(reportes, *rep)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return reportes, nil
}

// ListarAsignaciones lista los asignados vigentes del reporte.
func (r *Repository) ListarAsignaciones(ctx context.Context, reporteID uuid.UUID) ([]Asignacion, error) {
	return listarAsignaciones(ctx, r.pool, reporteID)
}

// ObtenerSolicitud busca una solicitud de cierre por id.
func (r *Repository) ObtenerSolicitud(ctx context.Context, id uuid.UUID) (*SolicitudCierre, error) {
	query := fmt.Sprintf(`SELECT %s FROM solicitudes_cierre WHERE id = $1`, columnasSolicitud)
	row := r.pool.QueryRow(ctx, query, id)
	return scanSolicitud(row)
}

// Historial devuelve la auditoría del reporte vía el registrador.
func (r *Repository) Historial(ctx context.Context, reporteID uuid.UUID) ([]auditoria.Entrada, error) {
	return r.auditora.Historial(ctx, reporteID)
}

// Resumen consolida conteos por estado, prioridad y dependencia.
func (r *Repository) Resumen(ctx context.Context) (*Resumen, error) {
	resumen := &Resumen{
		PorEstado:      map[string]int{},
		PorPrioridad:   map[string]int{},
		PorDependencia: map[string]int{},
	}

	conteos := []struct {
		query   string
		destino map[string]int
	}{
		{`SELECT estado, COUNT(*) FROM reportes GROUP BY estado`, resumen.PorEstado},
		{`SELECT prioridad, COUNT(*) FROM reportes GROUP BY prioridad`, resumen.PorPrioridad},
		{`SELECT dependencia, COUNT(*) FROM reportes GROUP BY dependencia`, resumen.PorDependencia},
	}

	for _, c := range conteos {
		rows, err := r.pool.Query(ctx, c.query)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var clave string
			var total int
			if err := rows.Scan(&clave, &total); err != nil {
				rows.Close()
				return nil, err
			}
			c.destino[clave] = total
		}
		rows.Close()
		if rows.Err() != nil {
			return nil, rows.Err()
		}
	}

	return resumen, nil
}

// EstadoAsignacion devuelve el estado del reporte y si el usuario figura
// como asignado vigente. Lo consume el servicio de bitácora.
func (r *Repository) EstadoAsignacion(ctx context.Context, reporteID, usuarioID uuid.UUID) (string, bool, error) {
	const query = `
        SELECT r.estado, EXISTS (
            SELECT 1 FROM asignaciones a WHERE a.reporte_id = r.id AND a.usuario_id = $2
        )
        FROM reportes r
        WHERE r.id = $1
    `

	var estado string
	var asignado bool
	if err := r.pool.QueryRow(ctx, query, reporteID, usuarioID).Scan(&estado, &asignado); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, errores.NoEncontrado("reporte inexistente")
		}
		return "", false, err
	}
	return estado, asignado, nil
}

// unidad implementa Unidad sobre una transacción abierta.
type unidad struct {
	tx       pgx.Tx
	auditora *auditoria.Repository
}

func (u *unidad) CrearReporte(ctx context.Context, r *Reporte) error {
	const query = `
        INSERT INTO reportes (id, tipo, dependencia, descripcion_corta, descripcion_larga, latitud, longitud, peso, prioridad, colonia, codigo_postal, municipio, entidad, pais, estado, creado_por)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING created_at, updated_at
    `

	row := u.tx.QueryRow(ctx, query,
		r.ID, r.Tipo, r.Dependencia, r.DescripcionCorta, r.DescripcionLarga,
		r.Latitud, r.Longitud, r.Peso, r.Prioridad,
		r.Colonia, r.CodigoPostal, r.Municipio, r.Entidad, r.Pais,
		r.Estado, r.CreadoPor,
	)
	return row.Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (u *unidad) ReporteParaActualizar(ctx context.Context, id uuid.UUID) (*Reporte, error) {
	query := fmt.Sprintf(`SELECT %s FROM reportes WHERE id = $1 FOR UPDATE`, columnasReporte)
	row := u.tx.QueryRow(ctx, query, id)
	return scanReporte(row)
}

func (u *unidad) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	const query = `UPDATE reportes SET estado = $2, updated_at = now() WHERE id = $1`
	_, err := u.tx.Exec(ctx, query, id, estado)
	return err
}

func (u *unidad) ActualizarRuteo(ctx context.Context, id uuid.UUID, tipo, dependencia string) error {
	const query = `UPDATE reportes SET tipo = $2, dependencia = $3, updated_at = now() WHERE id = $1`
	_, err := u.tx.Exec(ctx, query, id, tipo, dependencia)
	return err
}

func (u *unidad) CrearAsignacion(ctx context.Context, a Asignacion) (bool, error) {
	const query = `
        INSERT INTO asignaciones (reporte_id, usuario_id, asignado_por, nota)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (reporte_id, usuario_id) DO NOTHING
    `

	res, err := u.tx.Exec(ctx, query, a.ReporteID, a.UsuarioID, a.AsignadoPor, a.Nota)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (u *unidad) EliminarAsignacion(ctx context.Context, reporteID, usuarioID uuid.UUID) (bool, error) {
	const query = `DELETE FROM asignaciones WHERE reporte_id = $1 AND usuario_id = $2`
	res, err := u.tx.Exec(ctx, query, reporteID, usuarioID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (u *unidad) ListarAsignaciones(ctx context.Context, reporteID uuid.UUID) ([]Asignacion, error) {
	return listarAsignaciones(ctx, u.tx, reporteID)
}

func (u *unidad) EstaAsignado(ctx context.Context, reporteID, usuarioID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM asignaciones WHERE reporte_id = $1 AND usuario_id = $2)`
	var existe bool
	if err := u.tx.QueryRow(ctx, query, reporteID, usuarioID).Scan(&existe); err != nil {
		return false, err
	}
	return existe, nil
}

func (u *unidad) SolicitudPendiente(ctx context.Context, reporteID uuid.UUID) (*SolicitudCierre, error) {
	query := fmt.Sprintf(`SELECT %s FROM solicitudes_cierre WHERE reporte_id = $1 AND aprobacion = $2`, columnasSolicitud)
	row := u.tx.QueryRow(ctx, query, reporteID, AprobacionPendiente)
	solicitud, err := scanSolicitud(row)
	if err != nil {
		if errores.Es(err, errores.KindNoEncontrado) {
			return nil, nil
		}
		return nil, err
	}
	return solicitud, nil
}

func (u *unidad) CrearSolicitud(ctx context.Context, s *SolicitudCierre) error {
	const query = `
        INSERT INTO solicitudes_cierre (id, reporte_id, funcionario_id, notas, firma_ref, evidencias, aprobacion)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `

	evidencias := s.Evidencias
	if evidencias == nil {
		evidencias = []string{}
	}

	row := u.tx.QueryRow(ctx, query, s.ID, s.ReporteID, s.FuncionarioID, s.Notas, s.FirmaRef, evidencias, s.Aprobacion)
	if err := row.Scan(&s.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// índice único parcial: una sola solicitud pendiente por reporte
			return errores.Conflicto("ya existe una solicitud de cierre pendiente")
		}
		return err
	}
	return nil
}

func (u *unidad) SolicitudParaActualizar(ctx context.Context, id uuid.UUID) (*SolicitudCierre, error) {
	query := fmt.Sprintf(`SELECT %s FROM solicitudes_cierre WHERE id = $1 FOR UPDATE`, columnasSolicitud)
	row := u.tx.QueryRow(ctx, query, id)
	return scanSolicitud(row)
}

func (u *unidad) ResolverSolicitud(ctx context.Context, id uuid.UUID, aprobacion string, notas *string, resueltaPor uuid.UUID) error {
	const query = `
        UPDATE solicitudes_cierre
        SET aprobacion = $2, notas_supervisor = $3, resuelta_por = $4, resuelta_at = now()
        WHERE id = $1
    `
	_, err := u.tx.Exec(ctx, query, id, aprobacion, notas, resueltaPor)
	return err
}

func (u *unidad) Auditar(ctx context.Context, entrada auditoria.Entrada) error {
	_, err := u.auditora.Registrar(ctx, u.tx, entrada)
	return err
}

type consultante interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listarAsignaciones(ctx context.Context, q consultante, reporteID uuid.UUID) ([]Asignacion, error) {
	const query = `
        SELECT reporte_id, usuario_id, asignado_por, nota, created_at
        FROM asignaciones
        WHERE reporte_id = $1
        ORDER BY created_at ASC
    `

	rows, err := q.Query(ctx, query, reporteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var asignaciones []Asignacion
	for rows.Next() {
		var a Asignacion
		if err := rows.Scan(&a.ReporteID, &a.UsuarioID, &a.AsignadoPor, &a.Nota, &a.CreatedAt); err != nil {
			return nil, err
		}
		asignaciones = append(asignaciones, a)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return asignaciones, nil
}

func scanReporte(row pgx.Row) (*Reporte, error) {
	var r Reporte
	err := row.Scan(
		&r.ID, &r.Tipo, &r.Dependencia, &r.DescripcionCorta, &r.DescripcionLarga,
		&r.Latitud, &r.Longitud, &r.Peso, &r.Prioridad,
		&r.Colonia, &r.CodigoPostal, &r.Municipio, &r.Entidad, &r.Pais,
		&r.Estado, &r.CreadoPor, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errores.NoEncontrado("reporte inexistente")
		}
		return nil, err
	}
	return &r, nil
}

func scanSolicitud(row pgx.Row) (*SolicitudCierre, error) {
	var s SolicitudCierre
	err := row.Scan(
		&s.ID, &s.ReporteID, &s.FuncionarioID, &s.Notas, &s.FirmaRef,
		&s.Evidencias, &s.Aprobacion, &s.NotasSupervisor, &s.ResueltaPor,
		&s.CreatedAt, &s.ResueltaAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errores.NoEncontrado("solicitud inexistente")
		}
		return nil, err
	}
	return &s, nil
}
