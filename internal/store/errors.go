package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrReferentialViolation = errors.New("referential violation")
	ErrConstraintViolation  = errors.New("constraint violation")
)

// Error describes a rejected operation on one entity.
type Error struct {
	Kind    error
	Entity  string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, msg)
	}
	return fmt.Sprintf("%s: %s", e.Entity, msg)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindName returns a stable label for err's kind, used in metrics and logs.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrReferentialViolation):
		return "referential_violation"
	case errors.Is(err, ErrConstraintViolation):
		return "constraint_violation"
	default:
		return "internal"
	}
}

func notFound(entity string) *Error {
	return &Error{Kind: ErrNotFound, Entity: entity, Message: "not found"}
}

func missingParent(entity, field string, id uint) *Error {
	return &Error{
		Kind:    ErrReferentialViolation,
		Entity:  entity,
		Field:   field,
		Message: fmt.Sprintf("referenced row %d does not exist", id),
	}
}

// uniqueFields names the column behind each entity's unique index.
var uniqueFields = map[string]string{
	entityEmployer:  "email",
	entityApplicant: "email",
}

// translate maps driver and gorm errors onto the error kinds. Errors it does
// not recognise are returned unchanged.
func translate(entity string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		e := notFound(entity)
		e.Err = err
		return e
	case errors.Is(err, gorm.ErrDuplicatedKey) || messageContains(err, "unique constraint", "duplicate key"):
		field := uniqueFields[entity]
		return &Error{Kind: ErrDuplicateKey, Entity: entity, Field: field, Message: "already exists", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated) || messageContains(err, "foreign key constraint"):
		return &Error{Kind: ErrReferentialViolation, Entity: entity, Message: "referenced row does not exist", Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated) || messageContains(err, "check constraint"):
		return &Error{Kind: ErrConstraintViolation, Entity: entity, Message: "check constraint violated", Err: err}
	}
	return err
}

// messageContains covers drivers whose errors gorm cannot translate.
func messageContains(err error, fragments ...string) bool {
	lower := strings.ToLower(err.Error())
	for _, fragment := range fragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
