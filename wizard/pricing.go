package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

const (
	defaultPredictionCountry = "France"
	defaultPredictionCity    = "Paris"
)

var (
	ErrPredictionInputs = errors.New("guests, bedrooms, beds, bathrooms and type are required for a price suggestion")
	ErrStalePrediction  = errors.New("price suggestion superseded by a newer request")
)

// PricePredictor es el servicio de sugerencia de precio
type PricePredictor interface {
	PredictPrice(ctx context.Context, req dto.PredictionRequest) (*dto.PredictionResponse, error)
}

// CanPredict indica si están todos los datos que usa el modelo
func (f FormData) CanPredict() bool {
	return f.NbOfGuests > 0 && f.NbOfBedrooms > 0 && f.NbOfBeds > 0 && f.NbOfBathrooms > 0 &&
		strings.TrimSpace(string(f.Type)) != ""
}

// PredictionRequest arma el body para el modelo. País y ciudad tienen default
// porque se cargan en el paso de ubicación y la predicción puede pedirse antes.
func (f FormData) PredictionRequest() dto.PredictionRequest {
	country := strings.TrimSpace(f.Country)
	if country == "" {
		country = defaultPredictionCountry
	}
	city := strings.TrimSpace(f.City)
	if city == "" {
		city = defaultPredictionCity
	}
	return dto.PredictionRequest{
		NbOfGuests:    f.NbOfGuests,
		NbOfBedrooms:  f.NbOfBedrooms,
		NbOfBeds:      f.NbOfBeds,
		NbOfBathrooms: f.NbOfBathrooms,
		Country:       country,
		City:          city,
		Type:          strings.ToLower(string(f.Type)),
	}
}

// RequestPrediction pide una sugerencia de precio. Cada pedido lleva un número de
// secuencia: si llega la respuesta de un pedido viejo se descarta con ErrStalePrediction.
// El precio se completa con la sugerencia salvo que el usuario lo haya fijado a mano.
func (w *Wizard) RequestPrediction(ctx context.Context) (*dto.PredictionResponse, error) {
	w.mu.Lock()
	if w.predictor == nil {
		w.mu.Unlock()
		return nil, ErrPredictionDisabled
	}
	if !w.form.CanPredict() {
		w.mu.Unlock()
		return nil, ErrPredictionInputs
	}
	w.predictionSeq++
	seq := w.predictionSeq
	req := w.form.PredictionRequest()
	w.mu.Unlock()

	resp, err := w.predictor.PredictPrice(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.predictionSeq {
		return nil, ErrStalePrediction
	}
	if err != nil {
		return nil, err
	}

	suggestion := *resp
	w.suggestion = &suggestion
	if !w.priceOverridden && w.mutable() == nil {
		w.form.PricePerNight = suggestion.SuggestedPrice
	}
	return &suggestion, nil
}

// OverridePrice fija el precio a mano; las sugerencias dejan de aplicarse
func (w *Wizard) OverridePrice(price float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if price < MinPrice {
		return ValidationErrors{{Field: "pricePerNight", Message: MsgPrice}}
	}
	w.form.PricePerNight = price
	w.priceOverridden = true
	return nil
}

// ResetPrice vuelve a usar la sugerencia y re-aplica la última recibida
func (w *Wizard) ResetPrice() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	w.priceOverridden = false
	if w.suggestion != nil {
		w.form.PricePerNight = w.suggestion.SuggestedPrice
	}
	return nil
}
