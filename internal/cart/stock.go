package cart

import "fmt"

// InsufficientStockError reports a rejected quantity along with the stock
// that remains available.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// CheckStock validates a requested quantity against the current available
// stock. Pure and fail-closed: requesting more than available is rejected,
// requesting exactly the available amount is accepted. Stock is only read
// here, never reserved.
func CheckStock(requested, available int) error {
	if requested > available {
		return &InsufficientStockError{Requested: requested, Available: available}
	}
	return nil
}
