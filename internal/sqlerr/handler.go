package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/noteful/internal/errs"
)

var (
	uniqueConstraintRe     = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	foreignKeyConstraintRe = regexp.MustCompile(`_([^_]+)_fkey$`)
)

// ErrCode reports the Code of err if it is (or wraps) an *Error, Other
// otherwise.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw PostgreSQL error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds machine codes like NOTE_ALREADY_EXISTS or
// FOLDER_NOT_FOUND. They end up in logs only.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "RECORD"
	}
	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextRepresentation, NumericValueOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		// notes_folderid_fkey -> "folderid" -> "Folder"
		column := sqlErr.ColumnName
		if column == "" {
			column = extractColumn(foreignKeyConstraintRe, sqlErr.ConstraintName)
		}
		return fmt.Sprintf("The referenced %s does not exist", getEntityName("", column))

	case UniqueViolation:
		entityName := getEntityName(sqlErr.TableName, "")
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidTextRepresentation, NumericValueOutOfRange:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity from a reference column (folder_id and
// folderid both give "Folder") or, failing that, from the table name.
func getEntityName(tableName, columnName string) string {
	column := strings.ToLower(columnName)
	switch {
	case strings.HasSuffix(column, "_id"):
		return humanizeText(strings.TrimSuffix(column, "_id"))
	case len(column) > 2 && strings.HasSuffix(column, "id"):
		return humanizeText(strings.TrimSuffix(column, "id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func extractColumn(re *regexp.Regexp, constraintName string) string {
	matches := re.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// extractColumnForUniqueViolation supports unique_<table>_<column> and
// <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	return extractColumn(uniqueConstraintRe, constraintName)
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through unchanged
//   - constraint and input violations become 400 with a readable message
//   - pgx.ErrNoRows / sql.ErrNoRows become 404
//   - everything else becomes a generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			column := sqlErr.ColumnName
			if column == "" {
				column = extractColumn(foreignKeyConstraintRe, sqlErr.ConstraintName)
			}
			errorCode := generateErrorCode(getEntityName("", column), sqlErr.Code)
			return errs.NewBadRequestError(userMessage, &errorCode)

		case UniqueViolation, NotNullViolation, CheckViolation,
			InvalidTextRepresentation, NumericValueOutOfRange:
			errorCode := generateErrorCode(getEntityName(sqlErr.TableName, ""), sqlErr.Code)
			return errs.NewBadRequestError(userMessage, &errorCode)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}
