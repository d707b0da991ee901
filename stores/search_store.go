package stores

import (
	"context"
	"sync"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/search"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

// SearchState es la foto del buscador de una sesión
type SearchState struct {
	Filter        search.Filter     `json:"filter"`
	Query         string            `json:"query"`
	Results       []domain.Property `json:"results"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	Loading       bool              `json:"loading"`
	Error         string            `json:"error,omitempty"`
}

// SearchStore guarda filtro y resultados del buscador.
// Cada fetch lleva un número de secuencia y solo se aplica la respuesta del último.
type SearchStore struct {
	props services.PropertyService

	mu            sync.Mutex
	filter        search.Filter
	results       []domain.Property
	totalPages    int
	totalElements int64
	loading       bool
	err           error
	seq           uint64
}

func NewSearchStore(props services.PropertyService) *SearchStore {
	return &SearchStore{props: props, filter: search.NewFilter()}
}

// Search aplica un filtro nuevo; siempre arranca en la página 0
func (s *SearchStore) Search(ctx context.Context, filter search.Filter) error {
	return s.fetch(ctx, filter.Normalize().WithPage(0))
}

// GoToPage valida la página contra el último total antes de llamar al backend
func (s *SearchStore) GoToPage(ctx context.Context, page int) error {
	s.mu.Lock()
	filter := s.filter
	total := s.totalPages
	s.mu.Unlock()

	if err := search.ValidatePage(page, total); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeValidation, err.Error(), err)
	}
	return s.fetch(ctx, filter.WithPage(page))
}

// Reset vuelve al filtro por defecto en la página 0
func (s *SearchStore) Reset(ctx context.Context) error {
	return s.fetch(ctx, search.NewFilter())
}

func (s *SearchStore) fetch(ctx context.Context, filter search.Filter) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.mu.Unlock()

	page, err := s.props.Search(ctx, filter, nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	// llegó la respuesta de un pedido viejo
	if seq != s.seq {
		return nil
	}
	s.loading = false
	s.err = err
	if err != nil {
		// filtro, resultados y totalPages quedan del último fetch que salió bien
		return err
	}
	s.filter = filter
	s.results = page.Content
	s.totalPages = page.TotalPages
	s.totalElements = page.TotalElements
	return nil
}

func (s *SearchStore) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SearchState{
		Filter:        s.filter,
		Query:         search.EncodeString(s.filter),
		Results:       append([]domain.Property(nil), s.results...),
		TotalPages:    s.totalPages,
		TotalElements: s.totalElements,
		Loading:       s.loading,
		Error:         apperrors.Message(s.err),
	}
}
