package usuario

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provee acceso de solo lectura al directorio de usuarios.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository crea instancia del repositorio.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get busca un usuario por id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	const query = `
        SELECT id, nombre, rol, dependencia, activo, created_at
        FROM usuarios
        WHERE id = $1
    `

	row := r.pool.QueryRow(ctx, query, id)
	return scanUsuario(row)
}

// ListByDependencia lista personal activo de una dependencia.
func (r *Repository) ListByDependencia(ctx context.Context, dependencia string) ([]Usuario, error) {
	const query = `
        SELECT id, nombre, rol, dependencia, activo, created_at
        FROM usuarios
        WHERE dependencia = $1 AND activo
        ORDER BY nombre ASC
    `

	rows, err := r.pool.Query(ctx, query, strings.ToLower(strings.TrimSpace(dependencia)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, *u)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return usuarios, nil
}

func scanUsuario(row pgx.Row) (*Usuario, error) {
	var u Usuario
	if err := row.Scan(&u.ID, &u.Nombre, &u.Rol, &u.Dependencia, &u.Activo, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
