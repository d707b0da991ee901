package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
)

func TestHaversine(t *testing.T) {
	paris := Point{Lat: 48.8566, Lng: 2.3522}
	lyon := Point{Lat: 45.7640, Lng: 4.8357}

	assert.InDelta(t, 392.0, Haversine(paris, lyon), 2.0)
	assert.InDelta(t, Haversine(paris, lyon), Haversine(lyon, paris), 1e-9)
	assert.Zero(t, Haversine(paris, paris))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "850 m", FormatDistance(0.85))
	assert.Equal(t, "0 m", FormatDistance(0))
	assert.Equal(t, "1.0 km", FormatDistance(1))
	assert.Equal(t, "12.3 km", FormatDistance(12.34))
}

func TestPlanViewport(t *testing.T) {
	assert.Equal(t, ActionNone, PlanViewport(nil).Action)

	clustered := []Point{{Lat: 48.8566, Lng: 2.3522}, {Lat: 48.8570, Lng: 2.3530}}
	v := PlanViewport(clustered)
	assert.Equal(t, ActionFlyTo, v.Action)
	assert.Equal(t, ClusterZoom, v.Zoom)
	assert.Equal(t, clustered[0], v.Center)

	spread := []Point{{Lat: 48.85, Lng: 2.35}, {Lat: 45.76, Lng: 4.83}, {Lat: 43.29, Lng: 5.37}}
	v = PlanViewport(spread)
	assert.Equal(t, ActionFitBounds, v.Action)
	assert.Equal(t, FitPadding, v.Padding)
	require.NotNil(t, v.Bounds)
	assert.Equal(t, Point{Lat: 43.29, Lng: 2.35}, v.Bounds.SouthWest)
	assert.Equal(t, Point{Lat: 48.85, Lng: 5.37}, v.Bounds.NorthEast)
}

func TestFocusMarker(t *testing.T) {
	v := FocusMarker(Point{Lat: 1, Lng: 2})
	assert.Equal(t, ActionFlyTo, v.Action)
	assert.Equal(t, MarkerZoom, v.Zoom)
}

func TestPropertyPoints_SkipsMissingCoordinates(t *testing.T) {
	points := PropertyPoints([]domain.Property{
		{PropertyID: "a", Latitude: 48.1, Longitude: 2.2},
		{PropertyID: "b"},
	})
	assert.Equal(t, []Point{{Lat: 48.1, Lng: 2.2}}, points)
}
