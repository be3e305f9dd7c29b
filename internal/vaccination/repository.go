package vaccination

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacinafacil/api/internal/db"
	"github.com/vacinafacil/api/internal/repo"
)

const dbTimeout = 3 * time.Second

// Repository fornece acesso aos registros de vacinação.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]repo.VaccinationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, vaccine_id, date, quantity_applied, created_at
		FROM vaccinations
		WHERE user_id = $1
		ORDER BY date
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []repo.VaccinationRecord
	for rows.Next() {
		var rec repo.VaccinationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.VaccineID, &rec.Date, &rec.QuantityApplied, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create insere o registro dentro de uma transação que primeiro confere se já
// existe dose da mesma vacina no mesmo dia. O índice único funcional do
// schema cobre a corrida entre transações concorrentes.
func (r *Repository) Create(ctx context.Context, rec repo.VaccinationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM vaccinations
				WHERE user_id = $1 AND vaccine_id = $2
				  AND (date AT TIME ZONE 'UTC')::date = ($3 AT TIME ZONE 'UTC')::date
			)
		`, rec.UserID, rec.VaccineID, rec.Date).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return repo.ErrConflict
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO vaccinations (id, user_id, vaccine_id, date, quantity_applied)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.ID, rec.UserID, rec.VaccineID, rec.Date, rec.QuantityApplied)
		return err
	})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) || repo.IsUniqueViolation(err) {
			return repo.ErrConflict
		}
		return err
	}
	return nil
}
