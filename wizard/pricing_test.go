package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// blockingPredictor deja colgado el primer pedido hasta que se cierre release
type blockingPredictor struct {
	started chan struct{}
	release chan struct{}
	first   bool
}

func (b *blockingPredictor) PredictPrice(ctx context.Context, req dto.PredictionRequest) (*dto.PredictionResponse, error) {
	if !b.first {
		b.first = true
		close(b.started)
		<-b.release
		return &dto.PredictionResponse{SuggestedPrice: 50}, nil
	}
	return &dto.PredictionResponse{SuggestedPrice: 140}, nil
}

func capacityPatch() Patch {
	return Patch{
		Type:          ptr(domain.TypeCabin),
		NbOfGuests:    ptr(4),
		NbOfBedrooms:  ptr(2),
		NbOfBeds:      ptr(3),
		NbOfBathrooms: ptr(1),
	}
}

func TestRequestPrediction_DefaultsAndLowercaseType(t *testing.T) {
	predictor := &stubPredictor{price: 110}
	w := New(newMockSaver(), predictor)

	_, err := w.RequestPrediction(context.Background())
	assert.ErrorIs(t, err, ErrPredictionInputs)

	changed, err := w.Update(capacityPatch())
	require.NoError(t, err)
	assert.True(t, changed)

	resp, err := w.RequestPrediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 110.0, resp.SuggestedPrice)

	require.Len(t, predictor.calls, 1)
	assert.Equal(t, dto.PredictionRequest{
		NbOfGuests: 4, NbOfBedrooms: 2, NbOfBeds: 3, NbOfBathrooms: 1,
		Country: "France", City: "Paris", Type: "cabin",
	}, predictor.calls[0])

	assert.Equal(t, 110.0, w.State().Form.PricePerNight)
}

func TestOverrideAndResetPrice(t *testing.T) {
	predictor := &stubPredictor{price: 110}
	w := New(newMockSaver(), predictor)
	_, err := w.Update(capacityPatch())
	require.NoError(t, err)

	require.NoError(t, w.OverridePrice(99))
	_, err = w.RequestPrediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99.0, w.State().Form.PricePerNight, "override wins over the suggestion")

	require.NoError(t, w.ResetPrice())
	assert.Equal(t, 110.0, w.State().Form.PricePerNight)
	assert.False(t, w.State().PriceOverridden)

	assert.Error(t, w.OverridePrice(0))
}

func TestRequestPrediction_StaleResponseDiscarded(t *testing.T) {
	predictor := &blockingPredictor{started: make(chan struct{}), release: make(chan struct{})}
	w := New(newMockSaver(), predictor)
	_, err := w.Update(capacityPatch())
	require.NoError(t, err)

	firstErr := make(chan error, 1)
	go func() {
		_, err := w.RequestPrediction(context.Background())
		firstErr <- err
	}()
	<-predictor.started

	resp, err := w.RequestPrediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 140.0, resp.SuggestedPrice)

	close(predictor.release)
	assert.ErrorIs(t, <-firstErr, ErrStalePrediction)
	assert.Equal(t, 140.0, w.State().Form.PricePerNight)
}

func TestRequestPrediction_WithoutPredictor(t *testing.T) {
	w := New(newMockSaver(), nil)
	_, err := w.Update(capacityPatch())
	require.NoError(t, err)

	_, err = w.RequestPrediction(context.Background())
	assert.ErrorIs(t, err, ErrPredictionDisabled)
}
