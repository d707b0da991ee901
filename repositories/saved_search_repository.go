package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
)

// ErrSavedSearchNotFound se devuelve cuando la búsqueda no existe o no es del usuario
var ErrSavedSearchNotFound = errors.New("saved search not found")

// SavedSearchRepository define el acceso a las búsquedas guardadas
type SavedSearchRepository interface {
	Create(search *domain.SavedSearch) error
	ListByUser(userID string) ([]domain.SavedSearch, error)
	GetByID(userID string, id uint) (*domain.SavedSearch, error)
	Delete(userID string, id uint) error
}

type savedSearchRepository struct {
	db *gorm.DB
}

// NewSavedSearchRepository recibe la conexión ya migrada
func NewSavedSearchRepository(db *gorm.DB) SavedSearchRepository {
	return &savedSearchRepository{db: db}
}

// Migrate crea la tabla saved_searches si no existe
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.SavedSearch{})
}

func (r *savedSearchRepository) Create(search *domain.SavedSearch) error {
	return r.db.Create(search).Error
}

// ListByUser devuelve las búsquedas del usuario, la más reciente primero
func (r *savedSearchRepository) ListByUser(userID string) ([]domain.SavedSearch, error) {
	var searches []domain.SavedSearch
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&searches).Error
	return searches, err
}

func (r *savedSearchRepository) GetByID(userID string, id uint) (*domain.SavedSearch, error) {
	var search domain.SavedSearch
	err := r.db.Where("user_id = ?", userID).First(&search, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavedSearchNotFound
		}
		return nil, err
	}
	return &search, nil
}

// Delete borra solo si la búsqueda es del usuario
func (r *savedSearchRepository) Delete(userID string, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&domain.SavedSearch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedSearchNotFound
	}
	return nil
}
