package geo

import "github.com/appLSI/decentralized-rental-app-sub000/domain"

const (
	// por debajo de esta dispersión (en grados) todos los marcadores están en el mismo lugar
	clusterSpread = 0.01

	ClusterZoom  = 13
	MarkerZoom   = 15
	FitPadding   = 80
	flyDuration  = 1.5
	markerFlyDur = 1.2
)

// ViewportAction es lo que el mapa tiene que hacer
type ViewportAction string

const (
	ActionNone      ViewportAction = "none"
	ActionFlyTo     ViewportAction = "flyTo"
	ActionFitBounds ViewportAction = "fitBounds"
)

// Bounds es la caja sur-oeste / nor-este
type Bounds struct {
	SouthWest Point `json:"southWest"`
	NorthEast Point `json:"northEast"`
}

// Viewport describe la transición animada que debe ejecutar el mapa
type Viewport struct {
	Action   ViewportAction `json:"action"`
	Center   Point          `json:"center,omitempty"`
	Zoom     int            `json:"zoom,omitempty"`
	Bounds   *Bounds        `json:"bounds,omitempty"`
	Padding  int            `json:"padding,omitempty"`
	Duration float64        `json:"duration,omitempty"`
}

// PlanViewport decide cómo encuadrar un conjunto de marcadores:
// si están prácticamente en el mismo lugar vuela al primero con zoom 13,
// si no ajusta la caja con padding 80.
func PlanViewport(points []Point) Viewport {
	if len(points) == 0 {
		return Viewport{Action: ActionNone}
	}

	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b.SouthWest.Lat = min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lng = min(b.SouthWest.Lng, p.Lng)
		b.NorthEast.Lat = max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lng = max(b.NorthEast.Lng, p.Lng)
	}

	latSpread := b.NorthEast.Lat - b.SouthWest.Lat
	lngSpread := b.NorthEast.Lng - b.SouthWest.Lng
	if latSpread < clusterSpread && lngSpread < clusterSpread {
		return Viewport{Action: ActionFlyTo, Center: points[0], Zoom: ClusterZoom, Duration: flyDuration}
	}

	return Viewport{Action: ActionFitBounds, Bounds: &b, Padding: FitPadding, Duration: flyDuration}
}

// FocusMarker es el fly-to al hacer click en un marcador
func FocusMarker(p Point) Viewport {
	return Viewport{Action: ActionFlyTo, Center: p, Zoom: MarkerZoom, Duration: markerFlyDur}
}

// PropertyPoints extrae las coordenadas de las propiedades que tienen ubicación
func PropertyPoints(props []domain.Property) []Point {
	points := make([]Point, 0, len(props))
	for _, p := range props {
		if p.Latitude == 0 && p.Longitude == 0 {
			continue
		}
		points = append(points, Point{Lat: p.Latitude, Lng: p.Longitude})
	}
	return points
}
