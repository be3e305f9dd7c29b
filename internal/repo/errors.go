package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound é retornado quando nenhum registro é encontrado.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrConflict é retornado quando uma unicidade do domínio seria violada.
	ErrConflict = errors.New("registro já existe")
)

// IsUniqueViolation identifica violação de constraint de unicidade (23505).
// O pré-check dos handlers existe só para mensagens amigáveis; a constraint
// é quem decide o conflito.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
