package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyCart is returned by checkout when the cart has no items.
var ErrEmptyCart = errors.New("cart is empty")

// StockError reports a requested quantity beyond what a variant holds.
type StockError struct {
	VariantID uuid.UUID
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("variant %s: requested %d, available %d", e.VariantID, e.Requested, e.Available)
}

// offset converts a 1-based page into a row offset.
func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
