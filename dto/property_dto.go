package dto

import "github.com/appLSI/decentralized-rental-app-sub000/domain"

// CharacteristicRef es como el listing service recibe las amenities: [{ "id": 3 }]
type CharacteristicRef struct {
	ID int64 `json:"id"`
}

// PropertyRequest es el body de POST /listings/properties y PUT /listings/properties/{id}.
// Nunca lleva archivos: las imágenes se suben aparte, con el id devuelto.
type PropertyRequest struct {
	Title           string              `json:"title"`
	Type            domain.PropertyType `json:"type"`
	Description     string              `json:"description"`
	AddressName     string              `json:"addressName"`
	City            string              `json:"city"`
	Country         string              `json:"country"`
	State           string              `json:"state,omitempty"`
	CodePostale     string              `json:"codePostale,omitempty"`
	Latitude        float64             `json:"latitude"`
	Longitude       float64             `json:"longitude"`
	PricePerNight   float64             `json:"pricePerNight"`
	NbOfGuests      int                 `json:"nbOfGuests"`
	NbOfBedrooms    int                 `json:"nbOfBedrooms"`
	NbOfBeds        int                 `json:"nbOfBeds"`
	NbOfBathrooms   int                 `json:"nbOfBathrooms"`
	Characteristics []CharacteristicRef `json:"characteristics"`
}

// CreatePropertyResponse representa la respuesta de la creación
type CreatePropertyResponse struct {
	Message  string          `json:"message"`
	Property domain.Property `json:"property"`
}

// PropertyActionResponse es la respuesta de submit/hide/show/validate/reject
type PropertyActionResponse struct {
	PropertyID string                `json:"propertyId"`
	Status     domain.PropertyStatus `json:"status"`
	Message    string                `json:"message"`
}

// ImageUploadResponse representa la respuesta de POST /{id}/images
type ImageUploadResponse struct {
	Message    string   `json:"message"`
	ImagePaths []string `json:"imagePaths"`
}

// CountResponse es {count} de los endpoints de conteo
type CountResponse struct {
	Count int64 `json:"count"`
}

// RejectRequest es el body del rechazo de un admin
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ImageFile es una imagen elegida localmente que todavía no se subió
type ImageFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// OwnerCounts junta los dos conteos del backend para un host
type OwnerCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}
