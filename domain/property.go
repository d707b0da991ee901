package domain

import "strings"

// PropertyType es una enumeración abierta: el backend puede agregar tipos nuevos
type PropertyType string

const (
	TypeVilla     PropertyType = "VILLA"
	TypeApartment PropertyType = "APARTMENT"
	TypeHouse     PropertyType = "HOUSE"
	TypeCondo     PropertyType = "CONDO"
	TypeCabin     PropertyType = "CABIN"
	TypeTinyHouse PropertyType = "TINY_HOUSE"
	TypeCastle    PropertyType = "CASTLE"
	TypeTreehouse PropertyType = "TREEHOUSE"
	TypeBoat      PropertyType = "BOAT"
	TypeCamper    PropertyType = "CAMPER"
)

// KnownPropertyTypes en el orden del catálogo del backend
var KnownPropertyTypes = []PropertyType{
	TypeVilla, TypeApartment, TypeHouse, TypeCondo, TypeCabin,
	TypeTinyHouse, TypeCastle, TypeTreehouse, TypeBoat, TypeCamper,
}

func (t PropertyType) IsKnown() bool {
	for _, known := range KnownPropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Property representa una propiedad tal como la devuelve el listing service.
// Las fechas vienen sin zona horaria ("2024-05-01T10:00:00"), por eso quedan como string.
type Property struct {
	PropertyID      string           `json:"propertyId"`
	Title           string           `json:"title"`
	Type            PropertyType     `json:"type"`
	Description     string           `json:"description"`
	AddressName     string           `json:"addressName"`
	City            string           `json:"city"`
	Country         string           `json:"country"`
	State           string           `json:"state,omitempty"`
	CodePostale     string           `json:"codePostale,omitempty"`
	Latitude        float64          `json:"latitude"`
	Longitude       float64          `json:"longitude"`
	PricePerNight   float64          `json:"pricePerNight"`
	NbOfGuests      int              `json:"nbOfGuests"`
	NbOfBedrooms    int              `json:"nbOfBedrooms"`
	NbOfBeds        int              `json:"nbOfBeds"`
	NbOfBathrooms   int              `json:"nbOfBathrooms"`
	Status          PropertyStatus   `json:"status"`
	OwnerID         string           `json:"ownerId"`
	ImageFolderPath []string         `json:"imageFolderPath"`
	Characteristics []Characteristic `json:"characteristics"`
	CreatedAt       string           `json:"createdAt,omitempty"`
	LastUpdateAt    string           `json:"lastUpdateAt,omitempty"`
	Distance        *float64         `json:"distance,omitempty"`
}

// OwnerStats resume las propiedades de un host por status
type OwnerStats struct {
	TotalProperties   int `json:"totalProperties"`
	ActiveProperties  int `json:"activeProperties"`
	DraftProperties   int `json:"draftProperties"`
	PendingProperties int `json:"pendingProperties"`
	HiddenProperties  int `json:"hiddenProperties"`
}

// ComputeOwnerStats cuenta por status; las DELETED no entran en el total
func ComputeOwnerStats(properties []Property) OwnerStats {
	var stats OwnerStats
	for _, p := range properties {
		switch p.Status {
		case StatusActive:
			stats.ActiveProperties++
		case StatusDraft:
			stats.DraftProperties++
		case StatusPending:
			stats.PendingProperties++
		case StatusHidden:
			stats.HiddenProperties++
		default:
			continue
		}
		stats.TotalProperties++
	}
	return stats
}

const PlaceholderImage = "/images/property-placeholder.jpg"

// ResolveImageURL arma la URL pública de una imagen guardada por el listing service
func ResolveImageURL(imagePath, baseURL string) string {
	if imagePath == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(imagePath, "http") || strings.HasPrefix(imagePath, "/") {
		return imagePath
	}
	if baseURL == "" {
		return imagePath
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + imagePath
}
