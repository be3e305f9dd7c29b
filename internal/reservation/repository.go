package reservation

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

// Repository fornece acesso aos pedidos de reserva.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const reservationColumns = `id, user_id, calendar_id, date, status, created_at`

func scanReservation(row pgx.Row) (repo.Reservation, error) {
	var res repo.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.CalendarID, &res.Date, &res.Status, &res.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.Reservation{}, repo.ErrNotFound
	}
	return res, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (repo.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanReservation(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM request_reservations WHERE id = $1`, id))
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]repo.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM request_reservations
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []repo.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// ExistsByUserCalendar informa se o usuário já tem reserva para o evento,
// independente da data pedida.
func (r *Repository) ExistsByUserCalendar(ctx context.Context, userID, calendarID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM request_reservations
			WHERE user_id = $1 AND calendar_id = $2
		)
	`, userID, calendarID).Scan(&exists)
	return exists, err
}

func (r *Repository) Insert(ctx context.Context, res repo.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO request_reservations (id, user_id, calendar_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
	`, res.ID, res.UserID, res.CalendarID, res.Date, res.Status)
	return err
}

// UpdateDate troca a data pedida; a reserva continua sendo a mesma para o
// par (usuário, evento).
func (r *Repository) UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE request_reservations SET date = $2 WHERE id = $1`, id, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE request_reservations SET status = $2 WHERE id = $1`, id, status)
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

	tag, err := r.db.Exec(ctx, `DELETE FROM request_reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
