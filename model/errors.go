package model

import (
	"fmt"
	"time"
)

var (
	ErrNotFound                 = fmt.Errorf("not found")
	ErrAlreadyExists            = fmt.Errorf("already exists")
	ErrBadVersion               = fmt.Errorf("bad version")
	ErrScopeMismatch            = fmt.Errorf("scope ids are inconsistent")
	ErrInsufficientRole         = fmt.Errorf("no role of the required type at the requested scope")
	ErrPermissionNotGranted     = fmt.Errorf("permission is not granted by any role")
	ErrSchemaNotFound           = fmt.Errorf("provider schema not found")
	ErrManagedResourceImmutable = fmt.Errorf("managed resource can not be modified, disable its schedule first")
	ErrGenerateKey              = fmt.Errorf("error on generate key")
)

// SchemaViolationError is returned when a data payload fails provider
// schema validation. Fields lists the violated field names.
type SchemaViolationError struct {
	Fields []string
	Err    error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation (fields = %v): %s", e.Fields, e.Err)
}

func (e *SchemaViolationError) Unwrap() error { return e.Err }

// ExpiredLimitError is returned when a requested api key expiration
// exceeds the one year cap. ExpiredAt carries the offending timestamp.
type ExpiredLimitError struct {
	ExpiredAt UnixTime
}

func (e *ExpiredLimitError) Error() string {
	return fmt.Sprintf("api key expiration limit exceeded (expired_at = %s)",
		time.Unix(e.ExpiredAt, 0).UTC().Format("2006-01-02T15:04:05"))
}

// ResourceNotFoundError carries the offending key/reason pair for
// lookups of referenced entities (trusted accounts, users, projects).
type ResourceNotFoundError struct {
	Key    string
	Reason string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found (key = %s, reason = %s)", e.Key, e.Reason)
}

func (e *ResourceNotFoundError) Unwrap() error { return ErrNotFound }
