package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
)

// Nombres de los parámetros en la URL compartible
const (
	ParamCity   = "city"
	ParamGuests = "guests"
	ParamType   = "type"
	ParamPrice  = "price"
	ParamSort   = "sort"
	ParamPage   = "page"
	ParamSize   = "size"
)

// Encode escribe el filtro como query string. Los valores por defecto no se escriben
// y la página solo aparece si es > 0. El tamaño solo viaja si no es el de la grilla.
func Encode(f Filter) url.Values {
	f = f.Normalize()
	v := url.Values{}
	if f.City != "" {
		v.Set(ParamCity, f.City)
	}
	if f.Guests > 0 {
		v.Set(ParamGuests, strconv.Itoa(f.Guests))
	}
	if f.Type != "" {
		v.Set(ParamType, string(f.Type))
	}
	if f.Price != AnyPrice {
		v.Set(ParamPrice, f.Price)
	}
	if f.Sort != Newest {
		v.Set(ParamSort, f.Sort)
	}
	if f.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(f.Page))
	}
	if f.Size != DefaultPageSize {
		v.Set(ParamSize, strconv.Itoa(f.Size))
	}
	return v
}

// Decode es la inversa de Encode. Los parámetros ausentes toman el valor por defecto;
// los valores mal formados o fuera de las listas cerradas son un error.
func Decode(v url.Values) (Filter, error) {
	f := NewFilter()

	f.City = strings.TrimSpace(v.Get(ParamCity))

	if raw := v.Get(ParamGuests); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil || guests < 0 {
			return Filter{}, fmt.Errorf("invalid %s parameter %q", ParamGuests, raw)
		}
		f.Guests = guests
	}

	if raw := v.Get(ParamType); raw != "" {
		f.Type = domain.PropertyType(strings.ToUpper(raw))
	}
	if raw := v.Get(ParamPrice); raw != "" {
		f.Price = raw
	}
	if raw := v.Get(ParamSort); raw != "" {
		f.Sort = raw
	}

	if raw := v.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return Filter{}, fmt.Errorf("invalid %s parameter %q", ParamPage, raw)
		}
		f.Page = page
	}

	if raw := v.Get(ParamSize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Filter{}, fmt.Errorf("invalid %s parameter %q", ParamSize, raw)
		}
		f.Size = size
	}

	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// EncodeString es Encode en forma de query string ("city=Paris&price=%24300%2B")
func EncodeString(f Filter) string {
	return Encode(f).Encode()
}

// DecodeString parsea un query string guardado (con o sin "?")
func DecodeString(raw string) (Filter, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Filter{}, fmt.Errorf("invalid query string: %w", err)
	}
	return Decode(values)
}
