package bitacora

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provee acceso a la bitácora. Solo inserta y lista: las notas
// son inmutables una vez escritas.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository crea instancia del repositorio.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Crear inserta una nota.
func (r *Repository) Crear(ctx context.Context, nota *Nota) error {
	const query = `
        INSERT INTO bitacora (reporte_id, autor_id, autor_nombre, categoria, contenido)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `

	row := r.pool.QueryRow(ctx, query, nota.ReporteID, nota.AutorID, nota.AutorNombre, nota.Categoria, nota.Contenido)
	return row.Scan(&nota.ID, &nota.CreatedAt)
}

// Listar devuelve las notas del reporte de la más antigua a la más reciente.
func (r *Repository) Listar(ctx context.Context, reporteID uuid.UUID) ([]Nota, error) {
	const query = `
        SELECT id, reporte_id, autor_id, autor_nombre, categoria, contenido, created_at
        FROM bitacora
        WHERE reporte_id = $1
        ORDER BY created_at ASC, id ASC
    `

	rows, err := r.pool.Query(ctx, query, reporteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notas []Nota
	for rows.Next() {
		var n Nota
		if err := rows.Scan(&n.ID, &n.ReporteID, &n.AutorID, &n.AutorNombre, &n.Categoria, &n.Contenido, &n.CreatedAt); err != nil {
			return nil, err
		}
		notas = append(notas, n)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return notas, nil
}
