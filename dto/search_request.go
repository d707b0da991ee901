package dto

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchRequest representa los parámetros que espera GET /listings/properties/search
type SearchRequest struct {
	City            string   `json:"city,omitempty"`
	Type            string   `json:"type,omitempty"`
	MinPrice        *float64 `json:"minPrice,omitempty"`
	MaxPrice        *float64 `json:"maxPrice,omitempty"`
	NbOfGuests      int      `json:"nbOfGuests,omitempty"`
	Characteristics []int64  `json:"characteristics,omitempty"`
	Page            int      `json:"page"`
	Size            int      `json:"size"`
	SortBy          string   `json:"sortBy"`
	SortDir         string   `json:"sortDir"`
}

// HasCriteria indica si hay algún filtro además de paginación y orden
func (r SearchRequest) HasCriteria() bool {
	return r.City != "" || r.Type != "" || r.MinPrice != nil || r.MaxPrice != nil ||
		r.NbOfGuests > 0 || len(r.Characteristics) > 0
}

// Values arma el query string; los campos vacíos no se mandan
func (r SearchRequest) Values() url.Values {
	v := r.PageValues()
	if r.City != "" {
		v.Set("city", r.City)
	}
	if r.Type != "" {
		v.Set("type", r.Type)
	}
	if r.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*r.MinPrice, 'f', -1, 64))
	}
	if r.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*r.MaxPrice, 'f', -1, 64))
	}
	if r.NbOfGuests > 0 {
		v.Set("nbOfGuests", strconv.Itoa(r.NbOfGuests))
	}
	if len(r.Characteristics) > 0 {
		ids := make([]string, len(r.Characteristics))
		for i, id := range r.Characteristics {
			ids[i] = strconv.FormatInt(id, 10)
		}
		v.Set("characteristics", strings.Join(ids, ","))
	}
	return v
}

// PageValues solo paginación y orden, para GET /listings/properties
func (r SearchRequest) PageValues() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(r.Page))
	v.Set("size", strconv.Itoa(r.Size))
	if r.SortBy != "" {
		v.Set("sortBy", r.SortBy)
	}
	if r.SortDir != "" {
		v.Set("sortDir", r.SortDir)
	}
	return v
}

// NearbyRequest para GET /listings/properties/nearby
type NearbyRequest struct {
	Latitude  float64 `form:"latitude"`
	Longitude float64 `form:"longitude"`
	Radius    float64 `form:"radius"`
	Page      int     `form:"page"`
	Size      int     `form:"size"`
}

const (
	DefaultNearbyRadius = 10.0
	DefaultNearbySize   = 20
)

// ApplyDefaults aplica radio 10km y tamaño 20 si no vinieron
func (r *NearbyRequest) ApplyDefaults() {
	if r.Radius <= 0 {
		r.Radius = DefaultNearbyRadius
	}
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultNearbySize
	}
}

func (r NearbyRequest) Values() url.Values {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	v.Set("radius", strconv.FormatFloat(r.Radius, 'f', -1, 64))
	v.Set("page", strconv.Itoa(r.Page))
	v.Set("size", strconv.Itoa(r.Size))
	return v
}
