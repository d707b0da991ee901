package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/search"
)

// ============================================
// MOCKS
// ============================================

// mockListings implementa solo lo que usan los tests; el resto entra en pánico
type mockListings struct {
	clients.ListingsClient

	mu         sync.Mutex
	calls      []string
	properties map[string]*domain.Property
	page       *domain.Page[domain.Property]
	lastReq    dto.SearchRequest
	err        error
	chars      []domain.Characteristic
	types      []domain.CharacteristicType
	typesErr   error
}

func newMockListings() *mockListings {
	return &mockListings{properties: make(map[string]*domain.Property)}
}

func (m *mockListings) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockListings) count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockListings) ListProperties(ctx context.Context, req dto.SearchRequest) (*domain.Page[domain.Property], error) {
	m.record("list")
	m.lastReq = req
	return m.page, m.err
}

func (m *mockListings) SearchProperties(ctx context.Context, req dto.SearchRequest) (*domain.Page[domain.Property], error) {
	m.record("search")
	m.lastReq = req
	return m.page, m.err
}

func (m *mockListings) NearbyProperties(ctx context.Context, req dto.NearbyRequest) (*domain.Page[domain.Property], error) {
	m.record("nearby")
	return m.page, m.err
}

func (m *mockListings) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	m.record("get")
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.properties[propertyID]
	if !ok {
		return nil, &clients.APIError{StatusCode: http.StatusNotFound}
	}
	cp := *p
	return &cp, nil
}

func (m *mockListings) HideProperty(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error) {
	m.record("hide")
	if m.err != nil {
		return nil, m.err
	}
	return &dto.PropertyActionResponse{PropertyID: propertyID, Status: domain.StatusHidden}, nil
}

func (m *mockListings) DeleteProperty(ctx context.Context, propertyID string) error {
	m.record("delete")
	return m.err
}

func (m *mockListings) CreateProperty(ctx context.Context, req dto.PropertyRequest) (*dto.CreatePropertyResponse, error) {
	m.record("create")
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CreatePropertyResponse{Message: "created", Property: domain.Property{PropertyID: "new-1", Title: req.Title}}, nil
}

func (m *mockListings) RejectProperty(ctx context.Context, propertyID, reason string) (*dto.PropertyActionResponse, error) {
	m.record("reject")
	return &dto.PropertyActionResponse{PropertyID: propertyID, Status: domain.StatusDraft}, nil
}

func (m *mockListings) ListCharacteristics(ctx context.Context) ([]domain.Characteristic, error) {
	m.record("characteristics")
	return m.chars, nil
}

func (m *mockListings) ListCharacteristicTypes(ctx context.Context) ([]domain.CharacteristicType, error) {
	m.record("types")
	return m.types, m.typesErr
}

// mockCache guarda JSON en un map, igual que el caché real
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(key string, out interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *mockCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, _ := json.Marshal(value)
	c.data[key] = raw
}

func (c *mockCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

func (c *mockCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// ============================================
// TESTS
// ============================================

func TestSearch_EmptyFilterListsAll(t *testing.T) {
	listings := newMockListings()
	listings.page = &domain.Page[domain.Property]{TotalPages: 1}
	svc := NewPropertyService(listings, newMockCache())

	_, err := svc.Search(context.Background(), search.NewFilter(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, listings.count("list"))
	assert.Equal(t, 0, listings.count("search"))
}

func TestSearch_AnyCriterionUsesSearchEndpoint(t *testing.T) {
	listings := newMockListings()
	listings.page = &domain.Page[domain.Property]{}
	svc := NewPropertyService(listings, newMockCache())

	f := search.NewFilter()
	f.Price = "$100 - $200"
	_, err := svc.Search(context.Background(), f, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, listings.count("search"))
	require.NotNil(t, listings.lastReq.MinPrice)
	assert.Equal(t, 100.0, *listings.lastReq.MinPrice)
	assert.Equal(t, 200.0, *listings.lastReq.MaxPrice)

	_, err = svc.Search(context.Background(), search.NewFilter(), []int64{5})
	require.NoError(t, err)
	assert.Equal(t, 2, listings.count("search"))
}

func TestSearch_InvalidFilterNeverCallsUpstream(t *testing.T) {
	listings := newMockListings()
	svc := NewPropertyService(listings, newMockCache())

	_, err := svc.Search(context.Background(), search.Filter{Price: "$5 - $6"}, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, listings.calls)
}

func TestGetProperty_CachesActiveOnly(t *testing.T) {
	listings := newMockListings()
	listings.properties["a"] = &domain.Property{PropertyID: "a", Status: domain.StatusActive}
	listings.properties["d"] = &domain.Property{PropertyID: "d", Status: domain.StatusDraft}
	cache := newMockCache()
	svc := NewPropertyService(listings, cache)

	for i := 0; i < 3; i++ {
		p, err := svc.GetProperty(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "a", p.PropertyID)
	}
	assert.Equal(t, 1, listings.count("get"))

	_, err := svc.GetProperty(context.Background(), "d")
	require.NoError(t, err)
	assert.False(t, cache.has(PropertyCacheKey("d")))

	svc.InvalidateProperty("a")
	_, err = svc.GetProperty(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 3, listings.count("get"))
}

func TestGetProperty_NotFoundMessage(t *testing.T) {
	svc := NewPropertyService(newMockListings(), newMockCache())

	_, err := svc.GetProperty(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.Equal(t, "Property not found", apperrors.Message(err))
}

func TestHide_InvalidTransitionRejectedLocally(t *testing.T) {
	listings := newMockListings()
	svc := NewPropertyService(listings, newMockCache())

	_, err := svc.Hide(context.Background(), "p1", domain.StatusDraft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, 0, listings.count("hide"))
}

func TestHide_ServerRejectionIsSurfaced(t *testing.T) {
	listings := newMockListings()
	listings.err = &clients.APIError{StatusCode: http.StatusBadRequest, Message: "bad state"}
	svc := NewPropertyService(listings, newMockCache())

	_, err := svc.Hide(context.Background(), "p1", domain.StatusActive)
	require.Error(t, err)
	assert.Equal(t, "Only ACTIVE properties can be hidden", apperrors.Message(err))
	assert.Equal(t, 1, listings.count("hide"))
}

func TestHide_InvalidatesCache(t *testing.T) {
	cache := newMockCache()
	cache.Set(PropertyCacheKey("p1"), domain.Property{PropertyID: "p1"}, time.Minute)
	svc := NewPropertyService(newMockListings(), cache)

	resp, err := svc.Hide(context.Background(), "p1", domain.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHidden, resp.Status)
	assert.False(t, cache.has(PropertyCacheKey("p1")))
}

func TestDelete_ConflictMessage(t *testing.T) {
	listings := newMockListings()
	listings.err = &clients.APIError{StatusCode: http.StatusConflict}
	svc := NewPropertyService(listings, newMockCache())

	err := svc.Delete(context.Background(), "p1", domain.StatusActive)
	assert.Equal(t, "Cannot delete property with active bookings", apperrors.Message(err))

	err = svc.Delete(context.Background(), "p1", domain.StatusDeleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCreate_WalletRequiredMessage(t *testing.T) {
	listings := newMockListings()
	listings.err = &clients.APIError{StatusCode: http.StatusForbidden}
	svc := NewPropertyService(listings, newMockCache())

	_, err := svc.CreateProperty(context.Background(), dto.PropertyRequest{Title: "x"})
	assert.Equal(t, http.StatusForbidden, apperrors.StatusOf(err))
	assert.Equal(t, "You must connect your wallet to create a property", apperrors.Message(err))
}

func TestReject_RequiresReason(t *testing.T) {
	listings := newMockListings()
	svc := NewPropertyService(listings, newMockCache())

	_, err := svc.Reject(context.Background(), "p1", domain.StatusPending, "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, 0, listings.count("reject"))

	resp, err := svc.Reject(context.Background(), "p1", domain.StatusPending, "Photos are blurry")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, resp.Status)
}

func TestNearby_ComputesMissingDistance(t *testing.T) {
	listings := newMockListings()
	known := 0.5
	listings.page = &domain.Page[domain.Property]{Content: []domain.Property{
		{PropertyID: "a", Latitude: 48.8566, Longitude: 2.3522},
		{PropertyID: "b", Latitude: 45.7640, Longitude: 4.8357, Distance: &known},
	}}
	svc := NewPropertyService(listings, newMockCache())

	page, err := svc.Nearby(context.Background(), dto.NearbyRequest{Latitude: 48.8566, Longitude: 2.3522})
	require.NoError(t, err)
	require.NotNil(t, page.Content[0].Distance)
	assert.InDelta(t, 0, *page.Content[0].Distance, 1e-9)
	assert.Equal(t, 0.5, *page.Content[1].Distance)

	_, err = svc.Nearby(context.Background(), dto.NearbyRequest{Latitude: 120})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestCatalogGroups_CachedAndAllOrNothing(t *testing.T) {
	listings := newMockListings()
	listings.types = []domain.CharacteristicType{{ID: 1, Name: "Cuisine"}}
	listings.chars = []domain.Characteristic{
		{ID: 1, Name: "Oven", IsActive: true, TypeCaracteristiqueID: 1},
		{ID: 2, Name: "Sauna", IsActive: true, TypeCaracteristiqueID: 99},
	}
	cache := newMockCache()
	svc := NewCatalogService(listings, cache, time.Minute)

	groups, err := svc.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cuisine", groups[0].Name)
	assert.Equal(t, domain.OtherGroup, groups[1].Name)

	_, err = svc.Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, listings.count("characteristics"))

	svc.Invalidate()
	listings.typesErr = &clients.APIError{StatusCode: http.StatusServiceUnavailable}
	_, err = svc.Groups(context.Background())
	require.Error(t, err)
	assert.False(t, cache.has(CharacteristicsCacheKey))
}
