package wizard

import (
	"strings"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// FormData acumula los campos del formulario entre pasos
type FormData struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        domain.PropertyType `json:"type"`

	AddressName string  `json:"addressName"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	State       string  `json:"state"`
	CodePostale string  `json:"codePostale"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	PricePerNight float64 `json:"pricePerNight"`
	NbOfGuests    int     `json:"nbOfGuests"`
	NbOfBedrooms  int     `json:"nbOfBedrooms"`
	NbOfBeds      int     `json:"nbOfBeds"`
	NbOfBathrooms int     `json:"nbOfBathrooms"`

	Characteristics []int64 `json:"characteristics"`
}

// fromProperty precarga el formulario en modo edición
func fromProperty(p domain.Property) FormData {
	f := FormData{
		Title:         p.Title,
		Description:   p.Description,
		Type:          p.Type,
		AddressName:   p.AddressName,
		City:          p.City,
		Country:       p.Country,
		State:         p.State,
		CodePostale:   p.CodePostale,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		PricePerNight: p.PricePerNight,
		NbOfGuests:    p.NbOfGuests,
		NbOfBedrooms:  p.NbOfBedrooms,
		NbOfBeds:      p.NbOfBeds,
		NbOfBathrooms: p.NbOfBathrooms,
	}
	for _, c := range p.Characteristics {
		f.Characteristics = append(f.Characteristics, c.ID)
	}
	return f
}

// ToRequest arma el body de create/update. Las imágenes nunca van acá.
func (f FormData) ToRequest() dto.PropertyRequest {
	req := dto.PropertyRequest{
		Title:           strings.TrimSpace(f.Title),
		Type:            f.Type,
		Description:     strings.TrimSpace(f.Description),
		AddressName:     strings.TrimSpace(f.AddressName),
		City:            strings.TrimSpace(f.City),
		Country:         strings.TrimSpace(f.Country),
		State:           strings.TrimSpace(f.State),
		CodePostale:     strings.TrimSpace(f.CodePostale),
		Latitude:        f.Latitude,
		Longitude:       f.Longitude,
		PricePerNight:   f.PricePerNight,
		NbOfGuests:      f.NbOfGuests,
		NbOfBedrooms:    f.NbOfBedrooms,
		NbOfBeds:        f.NbOfBeds,
		NbOfBathrooms:   f.NbOfBathrooms,
		Characteristics: make([]dto.CharacteristicRef, 0, len(f.Characteristics)),
	}
	for _, id := range f.Characteristics {
		req.Characteristics = append(req.Characteristics, dto.CharacteristicRef{ID: id})
	}
	return req
}

// Patch es una actualización parcial; los campos nil no se tocan
type Patch struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Type        *domain.PropertyType `json:"type"`

	AddressName *string  `json:"addressName"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	State       *string  `json:"state"`
	CodePostale *string  `json:"codePostale"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	PricePerNight *float64 `json:"pricePerNight"`
	NbOfGuests    *int     `json:"nbOfGuests"`
	NbOfBedrooms  *int     `json:"nbOfBedrooms"`
	NbOfBeds      *int     `json:"nbOfBeds"`
	NbOfBathrooms *int     `json:"nbOfBathrooms"`

	Characteristics []int64 `json:"characteristics"`
}

func setIfChanged[T comparable](dst *T, src *T) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src
	return true
}

// Apply aplica el patch y devuelve true si cambió algún dato que usa la predicción de precio
func (p Patch) Apply(f *FormData) bool {
	setIfChanged(&f.Title, p.Title)
	setIfChanged(&f.Description, p.Description)
	setIfChanged(&f.AddressName, p.AddressName)
	setIfChanged(&f.State, p.State)
	setIfChanged(&f.CodePostale, p.CodePostale)
	setIfChanged(&f.Latitude, p.Latitude)
	setIfChanged(&f.Longitude, p.Longitude)
	setIfChanged(&f.PricePerNight, p.PricePerNight)
	if p.Characteristics != nil {
		f.Characteristics = append([]int64(nil), p.Characteristics...)
	}

	if p.Type != nil {
		t := domain.PropertyType(strings.ToUpper(strings.TrimSpace(string(*p.Type))))
		p.Type = &t
	}

	changed := false
	for _, c := range []bool{
		setIfChanged(&f.Type, p.Type),
		setIfChanged(&f.City, p.City),
		setIfChanged(&f.Country, p.Country),
		setIfChanged(&f.NbOfGuests, p.NbOfGuests),
		setIfChanged(&f.NbOfBedrooms, p.NbOfBedrooms),
		setIfChanged(&f.NbOfBeds, p.NbOfBeds),
		setIfChanged(&f.NbOfBathrooms, p.NbOfBathrooms),
	} {
		changed = changed || c
	}
	return changed
}
