package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/noteful/internal/errs"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name: "foreign key on note folder",
			err: &pgconn.PgError{
				Severity:       "ERROR",
				Code:           pgerrcode.ForeignKeyViolation,
				Message:        `insert or update on table "notes" violates foreign key constraint "notes_folderid_fkey"`,
				TableName:      "notes",
				ConstraintName: "notes_folderid_fkey",
			},
			status:  http.StatusBadRequest,
			code:    "FOLDER_NOT_FOUND",
			message: "The referenced Folder does not exist",
		},
		{
			name: "unique violation",
			err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				TableName:      "folders",
				ConstraintName: "folders_folder_name_key",
			},
			status:  http.StatusBadRequest,
			code:    "FOLDER_ALREADY_EXISTS",
			message: "A Folder with this Name already exists",
		},
		{
			name: "not null violation",
			err: &pgconn.PgError{
				Code:       pgerrcode.NotNullViolation,
				TableName:  "notes",
				ColumnName: "note_text",
			},
			status:  http.StatusBadRequest,
			code:    "NOTE_REQUIRED",
			message: "The Note Text is required",
		},
		{
			name:    "out of range",
			err:     &pgconn.PgError{Code: pgerrcode.NumericValueOutOfRange, TableName: "notes"},
			status:  http.StatusBadRequest,
			code:    "NOTE_INVALID",
			message: "One or more values have an invalid format",
		},
		{
			name:    "unhandled sqlstate",
			err:     &pgconn.PgError{Code: pgerrcode.DeadlockDetected},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
		{
			name:    "pgx no rows",
			err:     fmt.Errorf("select: %w", pgx.ErrNoRows),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Resource not found",
		},
		{
			name:    "sql no rows",
			err:     sql.ErrNoRows,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Resource not found",
		},
		{
			name:    "unknown error",
			err:     errors.New("connection reset by peer"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.True(t, errors.As(HandleError(tt.err), &httpErr))

			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Note doesn't exist", nil)
	assert.Same(t, original, HandleError(fmt.Errorf("wrapped: %w", original)))
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: pgerrcode.CheckViolation, Severity: "ERROR"})
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("ctx: %w", converted)))
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, Other, ErrCode(errors.New("plain")))

	var pgerr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgerr))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Folder", getEntityName("", "folderid"))
	assert.Equal(t, "Folder", getEntityName("", "folder_id"))
	assert.Equal(t, "Note", getEntityName("notes", ""))
	assert.Equal(t, "record", getEntityName("", ""))
}
