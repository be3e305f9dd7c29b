package user

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

// Repository fornece acesso aos dados de usuários.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, name, password_hash, email, telefone, latitude, longitude, image, created_at`

func scanUser(row pgx.Row) (repo.User, error) {
	var u repo.User
	err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Email, &u.Telefone,
		&u.Latitude, &u.Longitude, &u.Image, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.User{}, repo.ErrNotFound
	}
	return u, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (repo.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (repo.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *Repository) GetByTelefone(ctx context.Context, telefone string) (repo.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telefone = $1`, telefone))
}

func (r *Repository) List(ctx context.Context) ([]repo.User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []repo.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, u repo.User) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, password_hash, email, telefone, latitude, longitude, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Name, u.PasswordHash, u.Email, u.Telefone, u.Latitude, u.Longitude, u.Image)
	return err
}

func (r *Repository) Update(ctx context.Context, u repo.User) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, telefone = $4, latitude = $5, longitude = $6
		WHERE id = $1
	`, u.ID, u.Name, u.Email, u.Telefone, u.Latitude, u.Longitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE users SET image = $2 WHERE id = $1`, id, image)
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

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ListReservations devolve as reservas pertencentes ao usuário.
func (r *Repository) ListReservations(ctx context.Context, userID uuid.UUID) ([]repo.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, calendar_id, date, status, created_at
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
		var res repo.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.CalendarID, &res.Date, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// ListVaccinations devolve os registros de vacinação do usuário.
func (r *Repository) ListVaccinations(ctx context.Context, userID uuid.UUID) ([]repo.VaccinationRecord, error) {
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
