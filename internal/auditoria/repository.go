package auditoria

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository es el registrador de auditoría. Solo expone inserción y
// lectura: el paquete no contiene sentencias UPDATE ni DELETE a propósito.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository crea instancia del repositorio.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Registrar inserta una entrada dentro de la transacción del llamador, de
// modo que el cambio de estado y su auditoría comparten destino: ambos se
// confirman o ninguno.
func (r *Repository) Registrar(ctx context.Context, tx pgx.Tx, entrada Entrada) (*Entrada, error) {
	if !EsCambioValido(entrada.Cambio) {
		return nil, ErrCambioInvalido
	}

	metadata := entrada.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	payload, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	const query = `
        INSERT INTO auditoria (reporte_id, cambio, actor_id, actor_nombre, actor_rol, campo, antes, despues, motivo, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at
    `

	row := tx.QueryRow(ctx, query,
		entrada.ReporteID,
		entrada.Cambio,
		entrada.ActorID,
		entrada.ActorNombre,
		entrada.ActorRol,
		entrada.Campo,
		entrada.Antes,
		entrada.Despues,
		entrada.Motivo,
		payload,
	)

	if err := row.Scan(&entrada.ID, &entrada.CreatedAt); err != nil {
		return nil, err
	}

	entrada.Metadata = metadata
	return &entrada, nil
}

// Historial devuelve las entradas del reporte de la más antigua a la más
// reciente.
func (r *Repository) Historial(ctx context.Context, reporteID uuid.UUID) ([]Entrada, error) {
	const query = `
        SELECT id, reporte_id, cambio, actor_id, actor_nombre, actor_rol, campo, antes, despues, motivo, metadata, created_at
        FROM auditoria
        WHERE reporte_id = $1
        ORDER BY created_at ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query, reporteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entradas []Entrada
	for rows.Next() {
		var e Entrada
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.ReporteID, &e.Cambio, &e.ActorID, &e.ActorNombre, &e.ActorRol, &e.Campo, &e.Antes, &e.Despues, &e.Motivo, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, err
			}
		}
		entradas = append(entradas, e)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return entradas, nil
}
