package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Коды ошибок Postgres, которые репозитории переводят в свои ошибки.
const (
	pqUniqueViolation           = "23505"
	pqInvalidTextRepresentation = "22P02" // например, id не является uuid
)

// pqCode возвращает SQLSTATE из ошибки драйвера или пустую строку.
func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// checkAffectedRows возвращает notFoundError, если запрос не затронул ни одной строки.
func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
