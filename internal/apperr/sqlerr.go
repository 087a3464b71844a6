package apperr

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// SQLSTATE codes this service reacts to.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	notNullViolation    = "23502"
	checkViolation      = "23514"
)

var constraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// HandleDB converts a datastore error raised while working on entity into an
// *Error. Errors that are not understood are logged with the request logger
// and reported as a generic 500.
func HandleDB(ctx context.Context, entity string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if e := fromPgError(pgErr); e != nil {
			return e
		}
	}

	zerolog.Ctx(ctx).Error().Err(err).Str("entity", entity).Msg("datastore failure")
	return Internal()
}

func fromPgError(pgErr *pgconn.PgError) *Error {
	entity := entityName(pgErr.TableName, pgErr.ColumnName)

	var e *Error
	switch pgErr.Code {
	case uniqueViolation:
		column := "identifier"
		if c := uniqueColumn(pgErr.TableName, pgErr.ConstraintName); c != "" {
			column = humanize(c)
		}
		e = BadRequest(fmt.Sprintf("A %s with this %s already exists", entity, column), nil)
		e.Code = errorCode(pgErr.TableName, "ALREADY_EXISTS")
	case foreignKeyViolation:
		e = BadRequest(fmt.Sprintf("The referenced %s does not exist", entity), nil)
		e.Code = errorCode(pgErr.TableName, "NOT_FOUND")
	case notNullViolation:
		field := strings.ToLower(pgErr.ColumnName)
		e = BadRequest(fmt.Sprintf("The %s is required", humanize(field)), map[string]string{field: "is required"})
		e.Code = errorCode(pgErr.TableName, "REQUIRED")
	case checkViolation:
		e = BadRequest("One or more values do not meet required conditions", nil)
		e.Code = errorCode(pgErr.TableName, "INVALID")
	}
	return e
}

// errorCode builds codes such as CUSTOMER_ACCOUNT_ALREADY_EXISTS.
func errorCode(table, action string) string {
	domain := strings.ToUpper(singular(table))
	if domain == "" {
		domain = "RECORD"
	}
	return domain + "_" + action
}

// entityName prefers a *_id column (foreign keys), then the table name.
func entityName(table, column string) string {
	column = strings.ToLower(column)
	if strings.HasSuffix(column, "_id") {
		return humanize(strings.TrimSuffix(column, "_id"))
	}
	if table != "" {
		return humanize(singular(table))
	}
	return "record"
}

// uniqueColumn recovers the column from gorm index names (idx_<table>_<column>)
// and from Postgres defaults (<table>_<column>_key).
func uniqueColumn(table, constraint string) string {
	if constraint == "" {
		return ""
	}
	if prefix := "idx_" + table + "_"; table != "" && strings.HasPrefix(constraint, prefix) {
		return strings.TrimPrefix(constraint, prefix)
	}
	if m := constraintColumn.FindStringSubmatch(constraint); len(m) > 1 {
		return m[1]
	}
	return ""
}

func singular(table string) string {
	if len(table) > 1 && strings.HasSuffix(table, "s") {
		return table[:len(table)-1]
	}
	return table
}

// humanize turns snake_case identifiers into Title Case.
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
