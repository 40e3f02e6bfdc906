// errors.go
package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes attached to logged failures so an operator can grep for them.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeStorage     = "STORAGE_ERROR"
	ErrCodePersistence = "PERSISTENCE_ERROR"
)

// ValidationError carries the ordered, user-facing messages for a rejected
// submission. It is shown inline on the form and never logged as a failure.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field error(s)", len(e.Messages))
}

// StorageError is a file-system write failure that survived the temp-dir
// fallback. The wrapped cause is logged; the user sees a generic message.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "file storage failed: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// PersistError is a database failure at the persistence stage. SchemaMissing
// marks the case where a required table does not exist, which is reported
// explicitly rather than as a generic database error.
type PersistError struct {
	Err           error
	SchemaMissing bool
}

func (e *PersistError) Error() string {
	if e.SchemaMissing {
		return "persistence failed: required table is missing: " + e.Err.Error()
	}
	return "persistence failed: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error { return e.Err }

// OperatorDetail is the admin-facing summary: more than the public message,
// still free of credentials.
func (e *PersistError) OperatorDetail() string {
	if e.SchemaMissing {
		return "A required database table is missing. Run the server once with valid credentials so the schema can be created."
	}
	return "The database rejected the write or is unreachable. Check the server log for the full error."
}

// renderError shows the generic error page. detail is only included for
// authenticated admin requests; everyone else gets the safe summary.
func renderError(c *gin.Context, status int, message, detail string) {
	c.HTML(status, "error.html", gin.H{
		"Message": message,
		"Detail":  detail,
	})
}

// renderServerError is the public-facing 500: generic message, no internals.
func renderServerError(c *gin.Context) {
	renderError(c, http.StatusInternalServerError,
		"Something went wrong on our side. Please try again shortly.", "")
}
