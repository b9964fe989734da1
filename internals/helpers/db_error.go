package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// --- PG error mapping (pgx/libpq) ---

// IsUniqueViolation reports a duplicate key from any of the drivers in use.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}

// MapDBError turns a persistence error into an HTTP status and message.
func MapDBError(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "record not found"
	}
	if IsUniqueViolation(err) {
		return http.StatusConflict, "duplicate data (unique violation)"
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return http.StatusBadRequest, "referenced record not found"
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		switch pgxErr.Code {
		case "23503":
			return http.StatusBadRequest, "referenced record not found"
		case "23514":
			return http.StatusBadRequest, "check constraint violated"
		default:
			return http.StatusInternalServerError, pgxErr.Message
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "23503":
			return http.StatusBadRequest, "referenced record not found"
		case "23514":
			return http.StatusBadRequest, "check constraint violated"
		default:
			return http.StatusInternalServerError, pqErr.Message
		}
	}
	return http.StatusInternalServerError, err.Error()
}
