package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

const propertiesPath = "/listings/properties"

// ListingsClient define las operaciones contra el listing service
type ListingsClient interface {
	// Públicas
	ListProperties(ctx context.Context, req dto.SearchRequest) (*domain.Page[domain.Property], error)
	CountProperties(ctx context.Context) (int64, error)
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
	SearchProperties(ctx context.Context, req dto.SearchRequest) (*domain.Page[domain.Property], error)
	NearbyProperties(ctx context.Context, req dto.NearbyRequest) (*domain.Page[domain.Property], error)
	ListCharacteristics(ctx context.Context) ([]domain.Characteristic, error)
	ListCharacteristicTypes(ctx context.Context) ([]domain.CharacteristicType, error)

	// Host
	CreateProperty(ctx context.Context, req dto.PropertyRequest) (*dto.CreatePropertyResponse, error)
	UpdateProperty(ctx context.Context, propertyID string, req dto.PropertyRequest) (*domain.Property, error)
	MyProperties(ctx context.Context) ([]domain.Property, error)
	SubmitProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error)
	HideProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error)
	ShowProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error)
	DeleteProperty(ctx context.Context, propertyID string) error
	CountOwnerProperties(ctx context.Context, ownerID string) (int64, error)
	CountOwnerActiveProperties(ctx context.Context, ownerID string) (int64, error)
	UploadImages(ctx context.Context, propertyID string, files []dto.ImageFile) (*dto.ImageUploadResponse, error)

	// Admin
	PendingProperties(ctx context.Context, page, size int) (*domain.Page[domain.Property], error)
	ValidateProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error)
	RejectProperty(ctx context.Context, propertyID, reason string) (*dto.PropertyActionResponse, error)
	GetPropertyForAdmin(ctx context.Context, propertyID string) (*domain.Property, error)
}

type listingsClient struct {
	restClient
}

// NewListingsClient crea el cliente; baseURL es la raíz del gateway (http://localhost:8082/api)
func NewListingsClient(baseURL string, timeout time.Duration) ListingsClient {
	return &listingsClient{restClient: newRestClient(baseURL, timeout)}
}

func propertyPath(propertyID string, suffix string) string {
	return fmt.Sprintf("%s/%s%s", propertiesPath, url.PathEscape(propertyID), suffix)
}

func (c *listingsClient) ListProperties(ctx context.Context, req dto.SearchRequest) (*domain.Page[domain.Property], error) {
	var page domain.Page[domain.Property]
	if err := c.doJSON(ctx, http.MethodGet, propertiesPath, req.PageValues(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *listingsClient) CountProperties(ctx context.Context) (int64, error) {
	var count dto.CountResponse
	if err := c.doJSON(ctx, http.MethodGet, propertiesPath+"/count", nil, nil, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

func (c *listingsClient) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	var property domain.Property
	if err := c.doJSON(ctx, http.MethodGet, propertyPath(propertyID, ""), nil, nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *listingsClient) SearchProperties(ctx context.Context, req dto.SearchRequest) (*domain.Page[domain.Property], error) {
	var page domain.Page[domain.Property]
	if err := c.doJSON(ctx, http.MethodGet, propertiesPath+"/search", req.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *listingsClient) NearbyProperties(ctx context.Context, req dto.NearbyRequest) (*domain.Page[domain.Property], error) {
	req.ApplyDefaults()
	var page domain.Page[domain.Property]
	if err := c.doJSON(ctx, http.MethodGet, propertiesPath+"/nearby", req.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *listingsClient) ListCharacteristics(ctx context.Context) ([]domain.Characteristic, error) {
	var chars []domain.Characteristic
	if err := c.doJSON(ctx, http.MethodGet, "/listings/characteristics", nil, nil, &chars); err != nil {
		return nil, err
	}
	return chars, nil
}

func (c *listingsClient) ListCharacteristicTypes(ctx context.Context) ([]domain.CharacteristicType, error) {
	var types []domain.CharacteristicType
	if err := c.doJSON(ctx, http.MethodGet, "/listings/type-caracteristiques", nil, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *listingsClient) CreateProperty(ctx context.Context, req dto.PropertyRequest) (*dto.CreatePropertyResponse, error) {
	var resp dto.CreatePropertyResponse
	if err := c.doJSON(ctx, http.MethodPost, propertiesPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *listingsClient) UpdateProperty(ctx context.Context, propertyID string, req dto.PropertyRequest) (*domain.Property, error) {
	var property domain.Property
	if err := c.doJSON(ctx, http.MethodPut, propertyPath(propertyID, ""), nil, req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *listingsClient) MyProperties(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := c.doJSON(ctx, http.MethodGet, propertiesPath+"/my-properties", nil, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func (c *listingsClient) action(ctx context.Context, method, propertyID, suffix string, body interface{}) (*dto.PropertyActionResponse, error) {
	var resp dto.PropertyActionResponse
	if err := c.doJSON(ctx, method, propertyPath(propertyID, suffix), nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *listingsClient) SubmitProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error) {
	return c.action(ctx, http.MethodPost, propertyID, "/submit", nil)
}

func (c *listingsClient) HideProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error) {
	return c.action(ctx, http.MethodPost, propertyID, "/hide", nil)
}

func (c *listingsClient) ShowProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error) {
	return c.action(ctx, http.MethodPost, propertyID, "/show", nil)
}

func (c *listingsClient) DeleteProperty(ctx context.Context, propertyID string) error {
	return c.doJSON(ctx, http.MethodDelete, propertyPath(propertyID, ""), nil, nil, nil)
}

func (c *listingsClient) ownerCount(ctx context.Context, ownerID, suffix string) (int64, error) {
	var count dto.CountResponse
	path := fmt.Sprintf("%s/owner/%s%s", propertiesPath, url.PathEscape(ownerID), suffix)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

func (c *listingsClient) CountOwnerProperties(ctx context.Context, ownerID string) (int64, error) {
	return c.ownerCount(ctx, ownerID, "/count")
}

func (c *listingsClient) CountOwnerActiveProperties(ctx context.Context, ownerID string) (int64, error) {
	return c.ownerCount(ctx, ownerID, "/active-count")
}

func (c *listingsClient) UploadImages(ctx context.Context, propertyID string, files []dto.ImageFile) (*dto.ImageUploadResponse, error) {
	var resp dto.ImageUploadResponse
	if err := c.doMultipart(ctx, propertyPath(propertyID, "/images"), "images", files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *listingsClient) PendingProperties(ctx context.Context, page, size int) (*domain.Page[domain.Property], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result domain.Page[domain.Property]
	if err := c.doJSON(ctx, http.MethodGet, propertiesPath+"/pending", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *listingsClient) ValidateProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error) {
	return c.action(ctx, http.MethodPatch, propertyID, "/validate", nil)
}

func (c *listingsClient) RejectProperty(ctx context.Context, propertyID, reason string) (*dto.PropertyActionResponse, error) {
	return c.action(ctx, http.MethodPost, propertyID, "/reject", dto.RejectRequest{Reason: reason})
}

func (c *listingsClient) GetPropertyForAdmin(ctx context.Context, propertyID string) (*domain.Property, error) {
	var property domain.Property
	if err := c.doJSON(ctx, http.MethodGet, propertyPath(propertyID, "/admin"), nil, nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}
