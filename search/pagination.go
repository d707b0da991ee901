package search

import "fmt"

// PageOutOfRangeError se devuelve antes de llamar al backend si la página no existe
type PageOutOfRangeError struct {
	Page       int
	TotalPages int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d out of range [0, %d)", e.Page, e.TotalPages)
}

// ValidatePage acepta solo 0 <= p < totalPages
func ValidatePage(p, totalPages int) error {
	if p < 0 || p >= totalPages {
		return &PageOutOfRangeError{Page: p, TotalPages: totalPages}
	}
	return nil
}
