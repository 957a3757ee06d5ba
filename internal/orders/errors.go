package orders

import (
	"fmt"

	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

// NotFoundError reports which referenced record was missing. It unwraps to
// store.ErrNotFound so callers can branch with errors.Is.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %d", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}
