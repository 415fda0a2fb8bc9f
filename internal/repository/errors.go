package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateRecord wraps unique-constraint violations reported by the
	// database, such as a second account with the same email.
	ErrDuplicateRecord = errors.New("record already exists")
	// ErrInvalidReference wraps foreign-key violations.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateRecord, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return err
}
