package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// Reglas del formulario de propiedad. Son las mismas que aplica el listing service,
// chequearlas acá evita un round-trip que igual terminaría en 400.
const (
	TitleMinLength       = 5
	TitleMaxLength       = 100
	DescriptionMinLength = 50
	DescriptionMaxLength = 2000
	MinPrice             = 0.01
	MinGuests            = 1
	MinRooms             = 0

	MaxImages         = 10
	MaxImageSize      = 10 * 1024 * 1024
	MaxTotalImageSize = 50 * 1024 * 1024
)

const (
	MsgTitleMin       = "Title must be at least 5 characters"
	MsgTitleMax       = "Title cannot exceed 100 characters"
	MsgDescriptionMin = "Description must be at least 50 characters"
	MsgDescriptionMax = "Description cannot exceed 2000 characters"
	MsgPrice          = "Price per night must be greater than 0"
	MsgGuests         = "Number of guests must be at least 1"
	MsgRooms          = "Cannot be negative"
	MsgLatitude       = "Latitude must be between -90 and 90"
	MsgLongitude      = "Longitude must be between -180 and 180"
	MsgMaxImages      = "Maximum 10 images per property"
	MsgImageSize      = "Maximum file size is 10MB"
	MsgTotalSize      = "Total size cannot exceed 50MB"
	MsgImageType      = "Only JPEG, PNG, and WebP images are allowed"
)

// AllowedImageTypes son los content types que acepta el upload
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// ValidationError es el error de un campo del formulario
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors junta todos los errores de un paso
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field devuelve el mensaje de un campo, o "" si no tiene error
func (v ValidationErrors) Field(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

type validator struct {
	errs ValidationErrors
}

func (v *validator) add(field, message string) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: message})
}

func (v *validator) basics(f FormData) {
	title := utf8.RuneCountInString(strings.TrimSpace(f.Title))
	switch {
	case title < TitleMinLength:
		v.add("title", MsgTitleMin)
	case title > TitleMaxLength:
		v.add("title", MsgTitleMax)
	}

	desc := utf8.RuneCountInString(strings.TrimSpace(f.Description))
	switch {
	case desc < DescriptionMinLength:
		v.add("description", MsgDescriptionMin)
	case desc > DescriptionMaxLength:
		v.add("description", MsgDescriptionMax)
	}
}

func (v *validator) location(f FormData) {
	if f.Latitude < -90 || f.Latitude > 90 {
		v.add("latitude", MsgLatitude)
	}
	if f.Longitude < -180 || f.Longitude > 180 {
		v.add("longitude", MsgLongitude)
	}
}

func (v *validator) details(f FormData) {
	if f.NbOfGuests < MinGuests {
		v.add("nbOfGuests", MsgGuests)
	}
	if f.NbOfBedrooms < MinRooms {
		v.add("nbOfBedrooms", MsgRooms)
	}
	if f.NbOfBeds < MinRooms {
		v.add("nbOfBeds", MsgRooms)
	}
	if f.NbOfBathrooms < MinRooms {
		v.add("nbOfBathrooms", MsgRooms)
	}
}

func (v *validator) pricing(f FormData) {
	if f.PricePerNight < MinPrice {
		v.add("pricePerNight", MsgPrice)
	}
}

func isAllowedImageType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range AllowedImageTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// images valida las imágenes nuevas; las existentes cuentan para el máximo
func (v *validator) images(files []dto.ImageFile, existing int) {
	if len(files)+existing > MaxImages {
		v.add("images", MsgMaxImages)
	}

	var total int64
	for _, f := range files {
		if !isAllowedImageType(f.ContentType) {
			v.add("images", MsgImageType)
			break
		}
	}
	for _, f := range files {
		if f.Size > MaxImageSize {
			v.add("images", MsgImageSize)
			break
		}
	}
	for _, f := range files {
		total += f.Size
	}
	if total > MaxTotalImageSize {
		v.add("images", MsgTotalSize)
	}
}

// ValidateImages aplica las reglas de upload a un conjunto de archivos nuevos
func ValidateImages(files []dto.ImageFile, existing int) error {
	var v validator
	v.images(files, existing)
	return v.errs.orNil()
}
