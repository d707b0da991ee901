package domain

// Page es el sobre de paginación de Spring que devuelve el listing service
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// HasPage reports whether p is a valid zero-based index for this page set
func (p Page[T]) HasPage(page int) bool {
	return page >= 0 && page < p.TotalPages
}
