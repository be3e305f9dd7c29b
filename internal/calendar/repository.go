package calendar

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

// Repository fornece acesso aos eventos do calendário de vacinação.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, local, date, places, responsible, status, observation, latitude, longitude, vaccine_id, created_at`

func scanEvent(row pgx.Row) (repo.CalendarEvent, error) {
	var e repo.CalendarEvent
	err := row.Scan(&e.ID, &e.Local, &e.Date, &e.Places, &e.Responsible, &e.Status,
		&e.Observation, &e.Latitude, &e.Longitude, &e.VaccineID, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.CalendarEvent{}, repo.ErrNotFound
	}
	return e, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (repo.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM vaccination_calendars WHERE id = $1`, id))
}

func (r *Repository) List(ctx context.Context) ([]repo.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM vaccination_calendars ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []repo.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ExistsByLocalDate informa se há outro evento no mesmo local e horário.
func (r *Repository) ExistsByLocalDate(ctx context.Context, local string, date time.Time, exclude uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vaccination_calendars
			WHERE local = $1 AND date = $2 AND id <> $3
		)
	`, local, date, exclude).Scan(&exists)
	return exists, err
}

func (r *Repository) Insert(ctx context.Context, e repo.CalendarEvent) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO vaccination_calendars
			(id, local, date, places, responsible, status, observation, latitude, longitude, vaccine_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, e.Local, e.Date, e.Places, e.Responsible, e.Status, e.Observation,
		e.Latitude, e.Longitude, e.VaccineID)
	return err
}

func (r *Repository) Update(ctx context.Context, e repo.CalendarEvent) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE vaccination_calendars
		SET local = $2, date = $3, places = $4, responsible = $5, status = $6,
			observation = $7, latitude = $8, longitude = $9, vaccine_id = $10
		WHERE id = $1
	`, e.ID, e.Local, e.Date, e.Places, e.Responsible, e.Status, e.Observation,
		e.Latitude, e.Longitude, e.VaccineID)
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

	tag, err := r.db.Exec(ctx, `DELETE FROM vaccination_calendars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
