package dto

// PredictionRequest es el body de POST /predict del servicio de precios (snake_case)
type PredictionRequest struct {
	NbOfGuests    int    `json:"nb_of_guests"`
	NbOfBedrooms  int    `json:"nb_of_bedrooms"`
	NbOfBeds      int    `json:"nb_of_beds"`
	NbOfBathrooms int    `json:"nb_of_bathrooms"`
	Country       string `json:"country"`
	City          string `json:"city"`
	Type          string `json:"type"`
}

// PredictionResponse representa la sugerencia del modelo
type PredictionResponse struct {
	SuggestedPrice   float64 `json:"suggested_price"`
	YieldOptimized15 float64 `json:"yield_optimized_15"`
}
