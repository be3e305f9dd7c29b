package vaccine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacinafacil/api/internal/repo"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso aos dados de vacinas.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const vaccineColumns = `id, name, type, manufacturer, description, contra_indication, created_at`

func scanVaccine(row pgx.Row) (repo.Vaccine, error) {
	var v repo.Vaccine
	err := row.Scan(&v.ID, &v.Name, &v.Type, &v.Manufacturer, &v.Description, &v.ContraIndication, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.Vaccine{}, repo.ErrNotFound
	}
	return v, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (repo.Vaccine, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanVaccine(r.db.QueryRow(ctx, `SELECT `+vaccineColumns+` FROM vaccines WHERE id = $1`, id))
}

func (r *Repository) GetByName(ctx context.Context, name string) (repo.Vaccine, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanVaccine(r.db.QueryRow(ctx, `SELECT `+vaccineColumns+` FROM vaccines WHERE name = $1`, name))
}

func (r *Repository) List(ctx context.Context) ([]repo.Vaccine, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+vaccineColumns+` FROM vaccines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vaccines []repo.Vaccine
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		vaccines = append(vaccines, v)
	}
	return vaccines, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, v repo.Vaccine) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO vaccines (id, name, type, manufacturer, description, contra_indication)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.Name, v.Type, v.Manufacturer, v.Description, v.ContraIndication)
	return err
}

func (r *Repository) Update(ctx context.Context, v repo.Vaccine) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE vaccines
		SET name = $2, type = $3, manufacturer = $4, description = $5, contra_indication = $6
		WHERE id = $1
	`, v.ID, v.Name, v.Type, v.Manufacturer, v.Description, v.ContraIndication)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM vaccines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
