package wizard

import "strings"

// Step identifica un paso del formulario
type Step int

const (
	StepBasics Step = iota
	StepLocation
	StepDetails
	StepPricing
	StepPhotos
)

var stepNames = map[Step]string{
	StepBasics:   "basics",
	StepLocation: "location",
	StepDetails:  "details",
	StepPricing:  "pricing",
	StepPhotos:   "photos",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func defaultSteps() []Step {
	return []Step{StepBasics, StepLocation, StepDetails, StepPricing, StepPhotos}
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

// complete es el predicado de completitud de cada paso: solo mira que los campos
// requeridos estén cargados, los rangos los chequea la validación.
// foldPrice indica la variante de 4 pasos, donde el precio se pide en Details.
func complete(s Step, f FormData, images int, foldPrice bool) bool {
	switch s {
	case StepBasics:
		return notBlank(f.Title) && notBlank(f.Description) && notBlank(string(f.Type))
	case StepLocation:
		return notBlank(f.AddressName) && notBlank(f.City) && notBlank(f.Country)
	case StepDetails:
		ok := f.NbOfGuests != 0 && f.NbOfBedrooms != 0 && f.NbOfBeds != 0 && f.NbOfBathrooms != 0
		if foldPrice {
			ok = ok && f.PricePerNight > 0
		}
		return ok
	case StepPricing:
		return f.PricePerNight > 0
	case StepPhotos:
		return images >= 1
	}
	return false
}

func validate(s Step, f FormData, w *Wizard) error {
	var v validator
	switch s {
	case StepBasics:
		v.basics(f)
	case StepLocation:
		v.location(f)
	case StepDetails:
		v.details(f)
		if !w.hasPricingStep() {
			v.pricing(f)
		}
	case StepPricing:
		v.pricing(f)
	case StepPhotos:
		v.images(w.newImages, len(w.existingImages))
	}
	return v.errs.orNil()
}
