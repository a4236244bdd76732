package cli

import (
	"errors"

	"github.com/aidanlsb/tagr/internal/database"
	"github.com/aidanlsb/tagr/internal/query"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Database errors
	ErrDatabaseNotFound = "DATABASE_NOT_FOUND"
	ErrDatabaseExists   = "DATABASE_EXISTS"
	ErrDatabaseError    = "DATABASE_ERROR"

	// Query errors
	ErrQueryInvalid = "QUERY_INVALID"
	ErrUnknownTag   = "UNKNOWN_TAG"
	ErrUnknownValue = "UNKNOWN_VALUE"

	// Input errors
	ErrInvalidInput  = "INVALID_INPUT"
	ErrConfigInvalid = "CONFIG_INVALID"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// errReported marks an error whose JSON response has already been written.
var errReported = errors.New("error already reported")

// inputError is a usage mistake, such as conflicting flags.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

// configError wraps a failure to load the config file.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

// classifyError maps err to a stable code, a suggestion for the user and
// structured details for JSON output.
func classifyError(err error) (code, suggestion string, details interface{}) {
	var (
		syntaxErr    *query.SyntaxError
		validation   *query.ValidationError
		migrationErr *database.MigrationError
		inputErr     *inputError
		cfgErr       *configError
	)

	switch {
	case errors.As(err, &validation):
		details := map[string]interface{}{
			"unknown_tags":   nonNil(validation.UnknownTags()),
			"unknown_values": nonNil(validation.UnknownValues()),
			"errors":         validation.Lines(),
		}
		if len(validation.UnknownTags()) == 0 {
			return ErrUnknownValue, "Run 'tagr values' to see stored values", details
		}
		return ErrUnknownTag, "Run 'tagr tags' to see stored tags", details
	case errors.As(err, &syntaxErr):
		return ErrQueryInvalid, "Run 'tagr docs' for the query syntax", map[string]interface{}{
			"position": syntaxErr.Pos,
			"fragment": syntaxErr.Fragment,
		}
	case errors.Is(err, database.ErrDatabaseNotFound):
		return ErrDatabaseNotFound, "Run 'tagr init' to create a database, or pass --database", nil
	case errors.Is(err, database.ErrDatabaseExists):
		return ErrDatabaseExists, "", nil
	case errors.As(err, &migrationErr):
		return ErrDatabaseError, "", map[string]interface{}{"schema_version": migrationErr.Version}
	case errors.As(err, &inputErr):
		return ErrInvalidInput, "", nil
	case errors.As(err, &cfgErr):
		return ErrConfigInvalid, "", nil
	default:
		return ErrDatabaseError, "", nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
