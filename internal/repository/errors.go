// internal/repository/errors.go
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation は PostgreSQL の unique_violation
const pgUniqueViolation = "23505"

// isUniqueViolation は一意制約違反かどうかを判定します。
// TranslateError が有効なら gorm.ErrDuplicatedKey、無効なら pgconn のエラーで来る。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
