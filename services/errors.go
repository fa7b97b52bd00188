package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrSelfRoleChange     = errors.New("you cannot change your own role")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
	ErrUserHasOrders      = errors.New("user has orders and cannot be deleted")
	ErrNoFields           = errors.New("at least one valid field must be provided for update")
)

// NotFoundError names the missing entity. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d does not exist", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidInputError is a field-level validation failure detected by a service.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Field + ": " + e.Message
}

// MissingItemsError lists requested menu item ids that do not exist.
type MissingItemsError struct {
	IDs []uint
}

func (e *MissingItemsError) Error() string {
	return "one or more menu items do not exist"
}

// UnavailableItemsError lists the names of menu items that cannot be ordered right now.
type UnavailableItemsError struct {
	Names []string
}

func (e *UnavailableItemsError) Error() string {
	return "some items are currently unavailable: " + strings.Join(e.Names, ", ")
}

// MaxLineQuantity caps the quantity of a single cart or order line.
const MaxLineQuantity = 99

func checkQuantity(field string, quantity int) error {
	if quantity < 1 {
		return &InvalidInputError{Field: field, Message: "Quantity must be at least 1"}
	}
	if quantity > MaxLineQuantity {
		return &InvalidInputError{Field: field, Message: fmt.Sprintf("Quantity must be at most %d", MaxLineQuantity)}
	}
	return nil
}

// trimmedMin trims value and requires at least min characters to remain.
func trimmedMin(field, value string, min int) (string, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) < min {
		return "", &InvalidInputError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)}
	}
	return v, nil
}

func notFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
