package services

import (
	"errors"
	"strings"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/repositories"
	"github.com/appLSI/decentralized-rental-app-sub000/search"
)

const maxSavedSearchName = 100

// SavedSearchService maneja las búsquedas guardadas de un usuario
type SavedSearchService interface {
	List(userID string) ([]domain.SavedSearch, error)
	Create(userID, name, query string) (*domain.SavedSearch, error)
	Delete(userID string, id uint) error
}

type savedSearchService struct {
	repo repositories.SavedSearchRepository
}

func NewSavedSearchService(repo repositories.SavedSearchRepository) SavedSearchService {
	return &savedSearchService{repo: repo}
}

func (s *savedSearchService) List(userID string) ([]domain.SavedSearch, error) {
	searches, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load saved searches", err)
	}
	return searches, nil
}

// Create guarda la búsqueda con el query ya normalizado,
// así al reabrirla la URL es la misma que produce el buscador
func (s *savedSearchService) Create(userID, name, query string) (*domain.SavedSearch, error) {
	// 1. Validar nombre
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if len(name) > maxSavedSearchName {
		return nil, apperrors.NewValidationError("name cannot exceed 100 characters")
	}

	// 2. Validar y normalizar el query
	filter, err := search.DecodeString(query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorTypeValidation, err.Error(), err)
	}

	// 3. Guardar
	saved := &domain.SavedSearch{
		UserID: userID,
		Name:   name,
		Query:  search.EncodeString(filter.WithPage(0)),
	}
	if err := s.repo.Create(saved); err != nil {
		return nil, apperrors.NewInternalError("Failed to save search", err)
	}
	return saved, nil
}

func (s *savedSearchService) Delete(userID string, id uint) error {
	if err := s.repo.Delete(userID, id); err != nil {
		if errors.Is(err, repositories.ErrSavedSearchNotFound) {
			return apperrors.NewNotFoundError("Saved search not found")
		}
		return apperrors.NewInternalError("Failed to delete saved search", err)
	}
	return nil
}
