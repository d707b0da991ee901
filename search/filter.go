package search

import (
	"fmt"
	"strings"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// DefaultPageSize es el tamaño de página de la grilla de búsqueda
const DefaultPageSize = 12

// PriceBand es una franja de precio de la lista cerrada que ofrece la UI
type PriceBand struct {
	Label string
	Min   float64
	Max   float64
	Any   bool
}

const (
	AnyPrice = "Any Price"
	Newest   = "Newest"
	Oldest   = "Oldest"
	AnyType  = "Any Type"
)

// PriceBands en el orden del selector
var PriceBands = []PriceBand{
	{Label: AnyPrice, Any: true},
	{Label: "$0 - $100", Min: 0, Max: 100},
	{Label: "$100 - $200", Min: 100, Max: 200},
	{Label: "$200 - $300", Min: 200, Max: 300},
	{Label: "$300+", Min: 300, Max: 1000000},
}

// SortOption mapea la etiqueta del selector a sortBy/sortDir del backend
type SortOption struct {
	Label   string
	SortBy  string
	SortDir string
}

var SortOptions = []SortOption{
	{Label: Newest, SortBy: "createdAt", SortDir: "DESC"},
	{Label: Oldest, SortBy: "createdAt", SortDir: "ASC"},
}

// TypeOptions son los tipos que ofrece el filtro; "" es "Any Type"
var TypeOptions = []domain.PropertyType{
	"",
	domain.TypeApartment,
	domain.TypeHouse,
	domain.TypeCondo,
	domain.TypeVilla,
	domain.TypeCabin,
}

func BandByLabel(label string) (PriceBand, bool) {
	for _, b := range PriceBands {
		if b.Label == label {
			return b, true
		}
	}
	return PriceBand{}, false
}

func SortByLabel(label string) (SortOption, bool) {
	for _, s := range SortOptions {
		if s.Label == label {
			return s, true
		}
	}
	return SortOption{}, false
}

func isTypeOption(t domain.PropertyType) bool {
	for _, opt := range TypeOptions {
		if opt == t {
			return true
		}
	}
	return false
}

// TypeLabel devuelve la etiqueta del selector de tipo
func TypeLabel(t domain.PropertyType) string {
	if t == "" {
		return AnyType
	}
	return string(t)
}

// Filter es el estado del buscador. Es efímero: vive en la URL y en la sesión.
type Filter struct {
	City   string              `json:"city"`
	Type   domain.PropertyType `json:"type"`
	Guests int                 `json:"guests"`
	Price  string              `json:"price"`
	Sort   string              `json:"sort"`
	Page   int                 `json:"page"`
	Size   int                 `json:"size"`
}

// NewFilter devuelve el filtro vacío: sin criterios, más nuevas primero, página 0
func NewFilter() Filter {
	return Filter{Price: AnyPrice, Sort: Newest, Size: DefaultPageSize}
}

// Normalize completa los valores por defecto que falten
func (f Filter) Normalize() Filter {
	f.City = strings.TrimSpace(f.City)
	if f.Price == "" {
		f.Price = AnyPrice
	}
	if f.Sort == "" {
		f.Sort = Newest
	}
	if f.Size <= 0 {
		f.Size = DefaultPageSize
	}
	if f.Page < 0 {
		f.Page = 0
	}
	return f
}

// Validate rechaza valores fuera de las listas cerradas
func (f Filter) Validate() error {
	f = f.Normalize()
	if _, ok := BandByLabel(f.Price); !ok {
		return fmt.Errorf("unknown price band %q", f.Price)
	}
	if _, ok := SortByLabel(f.Sort); !ok {
		return fmt.Errorf("unknown sort option %q", f.Sort)
	}
	if !isTypeOption(f.Type) {
		return fmt.Errorf("unknown property type %q", f.Type)
	}
	if f.Guests < 0 {
		return fmt.Errorf("guests cannot be negative")
	}
	return nil
}

// WithPage devuelve una copia en la página p; el resto de los filtros no cambia
func (f Filter) WithPage(p int) Filter {
	f.Page = p
	return f
}

// ToSearchRequest traduce el filtro a los parámetros del listing service
func (f Filter) ToSearchRequest(characteristics []int64) dto.SearchRequest {
	f = f.Normalize()
	req := dto.SearchRequest{
		City:            f.City,
		Type:            string(f.Type),
		NbOfGuests:      f.Guests,
		Characteristics: characteristics,
		Page:            f.Page,
		Size:            f.Size,
	}

	if band, ok := BandByLabel(f.Price); ok && !band.Any {
		minPrice, maxPrice := band.Min, band.Max
		req.MinPrice = &minPrice
		req.MaxPrice = &maxPrice
	}

	sort, ok := SortByLabel(f.Sort)
	if !ok {
		sort = SortOptions[0]
	}
	req.SortBy = sort.SortBy
	req.SortDir = sort.SortDir
	return req
}
