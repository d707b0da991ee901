package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

func newTestListings(t *testing.T, handler http.HandlerFunc) ListingsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewListingsClient(srv.URL+"/api", 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSearchProperties_SendsQueryAndToken(t *testing.T) {
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/listings/properties/search", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "Paris", q.Get("city"))
		assert.Equal(t, "100", q.Get("minPrice"))
		assert.Equal(t, "200", q.Get("maxPrice"))
		assert.Equal(t, "3,7", q.Get("characteristics"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "12", q.Get("size"))
		assert.Equal(t, "createdAt", q.Get("sortBy"))
		assert.Equal(t, "DESC", q.Get("sortDir"))
		assert.False(t, q.Has("nbOfGuests"))

		writeJSON(w, http.StatusOK, domain.Page[domain.Property]{
			Content:       []domain.Property{{PropertyID: "p-1", Status: domain.StatusActive}},
			TotalPages:    3,
			TotalElements: 25,
			Number:        2,
			Size:          12,
			Last:          true,
		})
	})

	minPrice, maxPrice := 100.0, 200.0
	ctx := WithToken(context.Background(), "tok-1")
	page, err := client.SearchProperties(ctx, dto.SearchRequest{
		City: "Paris", MinPrice: &minPrice, MaxPrice: &maxPrice,
		Characteristics: []int64{3, 7}, Page: 2, Size: 12, SortBy: "createdAt", SortDir: "DESC",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "p-1", page.Content[0].PropertyID)
}

func TestNearbyProperties_AppliesDefaults(t *testing.T) {
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/listings/properties/nearby", r.URL.Path)
		assert.Equal(t, "10", q.Get("radius"))
		assert.Equal(t, "20", q.Get("size"))
		assert.Equal(t, "48.85", q.Get("latitude"))
		writeJSON(w, http.StatusOK, domain.Page[domain.Property]{})
	})

	_, err := client.NearbyProperties(context.Background(), dto.NearbyRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)
}

func TestDeleteProperty_ConflictBecomesAPIError(t *testing.T) {
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/listings/properties/p-9", r.URL.Path)
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Property has active bookings"})
	})

	err := client.DeleteProperty(context.Background(), "p-9")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Property has active bookings", apiErr.Message)
}

func TestPropertyActions_HitLifecycleEndpoints(t *testing.T) {
	var calls []string
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/api/listings/properties/p-1/reject" {
			var body dto.RejectRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Photos are blurry", body.Reason)
		}
		writeJSON(w, http.StatusOK, dto.PropertyActionResponse{PropertyID: "p-1", Status: domain.StatusPending})
	})
	ctx := context.Background()

	_, err := client.SubmitProperty(ctx, "p-1")
	require.NoError(t, err)
	_, err = client.HideProperty(ctx, "p-1")
	require.NoError(t, err)
	_, err = client.ShowProperty(ctx, "p-1")
	require.NoError(t, err)
	_, err = client.ValidateProperty(ctx, "p-1")
	require.NoError(t, err)
	resp, err := client.RejectProperty(ctx, "p-1", "Photos are blurry")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, []string{
		"POST /api/listings/properties/p-1/submit",
		"POST /api/listings/properties/p-1/hide",
		"POST /api/listings/properties/p-1/show",
		"PATCH /api/listings/properties/p-1/validate",
		"POST /api/listings/properties/p-1/reject",
	}, calls)
}

func TestUploadImages_Multipart(t *testing.T) {
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/listings/properties/p-1/images", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))

		f, err := files[1].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "png-bytes", string(data))

		writeJSON(w, http.StatusOK, dto.ImageUploadResponse{Message: "ok", ImagePaths: []string{"x/a.jpg", "x/b.png"}})
	})

	resp, err := client.UploadImages(context.Background(), "p-1", []dto.ImageFile{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpg-bytes")},
		{Filename: "b.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Len(t, resp.ImagePaths, 2)
}

func TestOwnerCounts(t *testing.T) {
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/listings/properties/owner/u-1/count":
			writeJSON(w, http.StatusOK, dto.CountResponse{Count: 7})
		case "/api/listings/properties/owner/u-1/active-count":
			writeJSON(w, http.StatusOK, dto.CountResponse{Count: 3})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	total, err := client.CountOwnerProperties(ctx, "u-1")
	require.NoError(t, err)
	active, err := client.CountOwnerActiveProperties(ctx, "u-1")
	require.NoError(t, err)

	assert.Equal(t, int64(7), total)
	assert.Equal(t, int64(3), active)
}

func TestAPIError_PlainTextBody(t *testing.T) {
	client := newTestListings(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "gateway down")
	})

	_, err := client.CountProperties(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "gateway down", apiErr.Message)
}
