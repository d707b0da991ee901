package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/geo"
	"github.com/appLSI/decentralized-rental-app-sub000/repositories"
	"github.com/appLSI/decentralized-rental-app-sub000/search"
)

const propertyCacheTTL = 5 * time.Minute

// PropertyCacheKey es la clave del detalle de una propiedad en el caché
func PropertyCacheKey(propertyID string) string {
	return "property:" + propertyID
}

// PropertyService define las operaciones sobre propiedades del BFF.
// Todos los errores salen como *apperrors.AppError.
type PropertyService interface {
	// Públicas
	Search(ctx context.Context, filter search.Filter, characteristics []int64) (*domain.Page[domain.Property], error)
	Nearby(ctx context.Context, req dto.NearbyRequest) (*domain.Page[domain.Property], error)
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
	CountProperties(ctx context.Context) (int64, error)

	// Host
	MyProperties(ctx context.Context) ([]domain.Property, error)
	CountOwnerProperties(ctx context.Context, ownerID string) (int64, error)
	CountOwnerActiveProperties(ctx context.Context, ownerID string) (int64, error)
	CreateProperty(ctx context.Context, req dto.PropertyRequest) (*domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID string, req dto.PropertyRequest) (*domain.Property, error)
	UploadImages(ctx context.Context, propertyID string, files []dto.ImageFile) ([]string, error)
	Submit(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error)
	Hide(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error)
	Show(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error)
	Delete(ctx context.Context, propertyID string, current domain.PropertyStatus) error

	// Admin
	PendingProperties(ctx context.Context, page, size int) (*domain.Page[domain.Property], error)
	GetPropertyForAdmin(ctx context.Context, propertyID string) (*domain.Property, error)
	Validate(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error)
	Reject(ctx context.Context, propertyID string, current domain.PropertyStatus, reason string) (*dto.PropertyActionResponse, error)

	// InvalidateProperty borra el detalle cacheado (lo usa el consumer de eventos)
	InvalidateProperty(propertyID string)
}

type propertyService struct {
	listings  clients.ListingsClient
	cacheRepo repositories.CacheRepository
}

// NewPropertyService crea el servicio sobre el cliente del listing service
func NewPropertyService(listings clients.ListingsClient, cacheRepo repositories.CacheRepository) PropertyService {
	return &propertyService{listings: listings, cacheRepo: cacheRepo}
}

// upstreamError traduce el error de un cliente al mensaje que ve el usuario
func upstreamError(op apperrors.Operation, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if apiErr, ok := clients.AsAPIError(err); ok {
		return apperrors.FromUpstream(op, apiErr.StatusCode, apiErr.Message, err)
	}
	return apperrors.FromUpstream(op, 0, "", err)
}

// checkTransition rechaza localmente una transición que no está en la tabla
func checkTransition(current, target domain.PropertyStatus) error {
	if err := current.CheckTransition(target); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeValidation,
			fmt.Sprintf("Cannot change status from %s to %s", current, target), err)
	}
	return nil
}

// Search decide el endpoint: sin criterios se listan todas, con alguno se usa /search
func (s *propertyService) Search(ctx context.Context, filter search.Filter, characteristics []int64) (*domain.Page[domain.Property], error) {
	if err := filter.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	req := filter.ToSearchRequest(characteristics)
	if !req.HasCriteria() {
		page, err := s.listings.ListProperties(ctx, req)
		return page, upstreamError(apperrors.OpListProperties, err)
	}

	page, err := s.listings.SearchProperties(ctx, req)
	return page, upstreamError(apperrors.OpSearch, err)
}

// Nearby busca alrededor de un punto; si el backend no manda la distancia la calculamos
func (s *propertyService) Nearby(ctx context.Context, req dto.NearbyRequest) (*domain.Page[domain.Property], error) {
	req.ApplyDefaults()
	origin := geo.Point{Lat: req.Latitude, Lng: req.Longitude}
	if !geo.ValidCoordinates(origin) {
		return nil, apperrors.NewValidationError("Latitude must be between -90 and 90 and longitude between -180 and 180")
	}

	page, err := s.listings.NearbyProperties(ctx, req)
	if err != nil {
		return nil, upstreamError(apperrors.OpSearch, err)
	}

	for i := range page.Content {
		p := &page.Content[i]
		if p.Distance == nil {
			d := geo.Haversine(origin, geo.Point{Lat: p.Latitude, Lng: p.Longitude})
			p.Distance = &d
		}
	}
	return page, nil
}

// GetProperty con caché: 1. caché 2. listing service 3. guardar
func (s *propertyService) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, apperrors.NewValidationError("property ID is required")
	}

	key := PropertyCacheKey(propertyID)
	var cached domain.Property
	if s.cacheRepo.Get(key, &cached) {
		log.Debug().Str("key", key).Msg("Property cache HIT")
		return &cached, nil
	}

	property, err := s.listings.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, upstreamError(apperrors.OpGetProperty, err)
	}

	// solo se cachea lo que es público
	if property.Status.IsPubliclyVisible() {
		s.cacheRepo.Set(key, property, propertyCacheTTL)
	}
	return property, nil
}

func (s *propertyService) CountProperties(ctx context.Context) (int64, error) {
	count, err := s.listings.CountProperties(ctx)
	return count, upstreamError(apperrors.OpListProperties, err)
}

func (s *propertyService) MyProperties(ctx context.Context) ([]domain.Property, error) {
	props, err := s.listings.MyProperties(ctx)
	return props, upstreamError(apperrors.OpListProperties, err)
}

func (s *propertyService) CountOwnerProperties(ctx context.Context, ownerID string) (int64, error) {
	count, err := s.listings.CountOwnerProperties(ctx, ownerID)
	return count, upstreamError(apperrors.OpListProperties, err)
}

func (s *propertyService) CountOwnerActiveProperties(ctx context.Context, ownerID string) (int64, error) {
	count, err := s.listings.CountOwnerActiveProperties(ctx, ownerID)
	return count, upstreamError(apperrors.OpListProperties, err)
}

func (s *propertyService) CreateProperty(ctx context.Context, req dto.PropertyRequest) (*domain.Property, error) {
	resp, err := s.listings.CreateProperty(ctx, req)
	if err != nil {
		return nil, upstreamError(apperrors.OpCreate, err)
	}
	log.Info().Str("property_id", resp.Property.PropertyID).Msg("Property created")
	return &resp.Property, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, propertyID string, req dto.PropertyRequest) (*domain.Property, error) {
	property, err := s.listings.UpdateProperty(ctx, propertyID, req)
	if err != nil {
		return nil, upstreamError(apperrors.OpUpdate, err)
	}
	s.InvalidateProperty(propertyID)
	return property, nil
}

func (s *propertyService) UploadImages(ctx context.Context, propertyID string, files []dto.ImageFile) ([]string, error) {
	resp, err := s.listings.UploadImages(ctx, propertyID, files)
	if err != nil {
		return nil, upstreamError(apperrors.OpUploadImages, err)
	}
	s.InvalidateProperty(propertyID)
	return resp.ImagePaths, nil
}

// action aplica el guard local, llama al backend e invalida el caché
func (s *propertyService) action(
	ctx context.Context,
	op apperrors.Operation,
	propertyID string,
	current, target domain.PropertyStatus,
	call func() (*dto.PropertyActionResponse, error),
) (*dto.PropertyActionResponse, error) {
	if err := checkTransition(current, target); err != nil {
		return nil, err
	}

	resp, err := call()
	if err != nil {
		log.Warn().Err(err).Str("property_id", propertyID).Str("op", string(op)).Msg("Property action rejected upstream")
		return nil, upstreamError(op, err)
	}

	s.InvalidateProperty(propertyID)
	log.Info().Str("property_id", propertyID).Str("from", string(current)).Str("to", string(resp.Status)).Msg("Property status changed")
	return resp, nil
}

func (s *propertyService) Submit(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error) {
	return s.action(ctx, apperrors.OpSubmit, propertyID, current, domain.StatusPending, func() (*dto.PropertyActionResponse, error) {
		return s.listings.SubmitProperty(ctx, propertyID)
	})
}

func (s *propertyService) Hide(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error) {
	return s.action(ctx, apperrors.OpHide, propertyID, current, domain.StatusHidden, func() (*dto.PropertyActionResponse, error) {
		return s.listings.HideProperty(ctx, propertyID)
	})
}

func (s *propertyService) Show(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error) {
	return s.action(ctx, apperrors.OpShow, propertyID, current, domain.StatusActive, func() (*dto.PropertyActionResponse, error) {
		return s.listings.ShowProperty(ctx, propertyID)
	})
}

func (s *propertyService) Delete(ctx context.Context, propertyID string, current domain.PropertyStatus) error {
	_, err := s.action(ctx, apperrors.OpDelete, propertyID, current, domain.StatusDeleted, func() (*dto.PropertyActionResponse, error) {
		if err := s.listings.DeleteProperty(ctx, propertyID); err != nil {
			return nil, err
		}
		return &dto.PropertyActionResponse{PropertyID: propertyID, Status: domain.StatusDeleted}, nil
	})
	return err
}

func (s *propertyService) PendingProperties(ctx context.Context, page, size int) (*domain.Page[domain.Property], error) {
	result, err := s.listings.PendingProperties(ctx, page, size)
	return result, upstreamError(apperrors.OpListProperties, err)
}

func (s *propertyService) GetPropertyForAdmin(ctx context.Context, propertyID string) (*domain.Property, error) {
	property, err := s.listings.GetPropertyForAdmin(ctx, propertyID)
	return property, upstreamError(apperrors.OpGetProperty, err)
}

func (s *propertyService) Validate(ctx context.Context, propertyID string, current domain.PropertyStatus) (*dto.PropertyActionResponse, error) {
	return s.action(ctx, apperrors.OpValidate, propertyID, current, domain.StatusActive, func() (*dto.PropertyActionResponse, error) {
		return s.listings.ValidateProperty(ctx, propertyID)
	})
}

// Reject devuelve la propiedad a DRAFT con el motivo; el motivo es obligatorio
func (s *propertyService) Reject(ctx context.Context, propertyID string, current domain.PropertyStatus, reason string) (*dto.PropertyActionResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("A rejection reason is required")
	}
	return s.action(ctx, apperrors.OpReject, propertyID, current, domain.StatusDraft, func() (*dto.PropertyActionResponse, error) {
		return s.listings.RejectProperty(ctx, propertyID, reason)
	})
}

func (s *propertyService) InvalidateProperty(propertyID string) {
	s.cacheRepo.Delete(PropertyCacheKey(propertyID))
}
