package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

var (
	ErrStepIncomplete     = errors.New("current step is incomplete")
	ErrInvalidStep        = errors.New("step out of range")
	ErrNotFinalStep       = errors.New("submit is only available on the last step")
	ErrAlreadySubmitted   = errors.New("property already submitted")
	ErrSubmitInProgress   = errors.New("submission in progress")
	ErrImageUploadFailed  = errors.New("record saved, image upload failed")
	ErrNotEditable        = errors.New("only DRAFT or PENDING properties can be edited")
	ErrImageIndex         = errors.New("image index out of range")
	ErrPredictionDisabled = errors.New("price prediction is not configured")
)

// UploadError indica que el registro quedó guardado con PropertyID pero las imágenes no
// se subieron. errors.Is(err, ErrImageUploadFailed) sigue valiendo.
type UploadError struct {
	PropertyID string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %v", ErrImageUploadFailed, e.Err)
}

func (e *UploadError) Unwrap() []error {
	return []error{ErrImageUploadFailed, e.Err}
}

// Status es el ciclo de vida del envío
type Status string

const (
	StatusEditing    Status = "EDITING"
	StatusSubmitting Status = "SUBMITTING"
	StatusSubmitted  Status = "SUBMITTED"
	StatusFailed     Status = "FAILED"
)

// PropertySaver es lo que el wizard necesita del backend para guardar
type PropertySaver interface {
	CreateProperty(ctx context.Context, req dto.PropertyRequest) (*domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID string, req dto.PropertyRequest) (*domain.Property, error)
	UploadImages(ctx context.Context, propertyID string, files []dto.ImageFile) ([]string, error)
}

// Option configura el wizard
type Option func(*Wizard)

// WithoutPricing arma la variante de 4 pasos: el precio se pide en Details
func WithoutPricing() Option {
	return func(w *Wizard) {
		steps := make([]Step, 0, len(w.steps))
		for _, s := range w.steps {
			if s != StepPricing {
				steps = append(steps, s)
			}
		}
		w.steps = steps
	}
}

// Wizard es el controlador del formulario multi-paso de alta/edición de propiedades.
// Es seguro para uso concurrente; el lock nunca se mantiene durante una llamada de red.
type Wizard struct {
	mu sync.Mutex

	saver     PropertySaver
	predictor PricePredictor

	steps   []Step
	current int
	form    FormData

	newImages      []dto.ImageFile
	existingImages []string

	status     Status
	failure    string
	propertyID string
	editing    bool
	saved      *domain.Property

	priceOverridden bool
	suggestion      *dto.PredictionResponse
	predictionSeq   uint64
}

// New crea un wizard vacío para una propiedad nueva
func New(saver PropertySaver, predictor PricePredictor, opts ...Option) *Wizard {
	w := &Wizard{
		saver:     saver,
		predictor: predictor,
		steps:     defaultSteps(),
		status:    StatusEditing,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewForEdit precarga el wizard con una propiedad existente.
// Solo se pueden editar propiedades en DRAFT o PENDING.
func NewForEdit(property domain.Property, saver PropertySaver, predictor PricePredictor, opts ...Option) (*Wizard, error) {
	if !property.Status.IsEditable() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotEditable, property.Status)
	}

	w := New(saver, predictor, opts...)
	w.form = fromProperty(property)
	w.existingImages = append([]string(nil), property.ImageFolderPath...)
	w.propertyID = property.PropertyID
	w.editing = true
	w.priceOverridden = property.PricePerNight > 0
	return w, nil
}

func (w *Wizard) hasPricingStep() bool {
	for _, s := range w.steps {
		if s == StepPricing {
			return true
		}
	}
	return false
}

func (w *Wizard) imageCount() int {
	return len(w.newImages) + len(w.existingImages)
}

// mutable se llama con el lock tomado
func (w *Wizard) mutable() error {
	switch w.status {
	case StatusSubmitted:
		return ErrAlreadySubmitted
	case StatusSubmitting:
		return ErrSubmitInProgress
	}
	return nil
}

func (w *Wizard) isStepComplete(i int) bool {
	if i < 0 || i >= len(w.steps) {
		return false
	}
	return complete(w.steps[i], w.form, w.imageCount(), !w.hasPricingStep())
}

// IsStepComplete indica si el paso i tiene todos sus campos requeridos
func (w *Wizard) IsStepComplete(i int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isStepComplete(i)
}

// checkStep = completitud + validación del paso i
func (w *Wizard) checkStep(i int) error {
	if !w.isStepComplete(i) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, w.steps[i])
	}
	return validate(w.steps[i], w.form, w)
}

// Current devuelve el índice del paso actual
func (w *Wizard) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Next avanza solo si el paso actual está completo y es válido.
// En el último paso no hace nada.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if err := w.checkStep(w.current); err != nil {
		return err
	}
	if w.current < len(w.steps)-1 {
		w.current++
	}
	return nil
}

// Back retrocede sin validar; en el paso 0 no hace nada
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current > 0 {
		w.current--
	}
}

// GoTo salta a un paso. Hacia atrás siempre se puede,
// hacia adelante solo si todos los pasos anteriores están completos.
func (w *Wizard) GoTo(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.steps) {
		return fmt.Errorf("%w: %d", ErrInvalidStep, i)
	}
	if i > w.current {
		for j := 0; j < i; j++ {
			if !w.isStepComplete(j) {
				return fmt.Errorf("%w: %s", ErrStepIncomplete, w.steps[j])
			}
		}
	}
	w.current = i
	return nil
}

// Update aplica un patch al formulario. Si cambia la capacidad o el tipo,
// devuelve true: el llamador decide si pide una nueva predicción.
func (w *Wizard) Update(p Patch) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return false, err
	}
	if p.PricePerNight != nil {
		w.priceOverridden = true
	}
	return p.Apply(&w.form), nil
}

// AddImages agrega imágenes locales; no se suben hasta el submit
func (w *Wizard) AddImages(files ...dto.ImageFile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	all := append(append([]dto.ImageFile(nil), w.newImages...), files...)
	if err := ValidateImages(all, len(w.existingImages)); err != nil {
		return err
	}
	w.newImages = all
	return nil
}

// RemoveImage saca una imagen local todavía no subida
func (w *Wizard) RemoveImage(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(w.newImages) {
		return ErrImageIndex
	}
	w.newImages = append(w.newImages[:i:i], w.newImages[i+1:]...)
	return nil
}

// RemoveExistingImage saca una imagen ya guardada en el backend (modo edición)
func (w *Wizard) RemoveExistingImage(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(w.existingImages) {
		return ErrImageIndex
	}
	w.existingImages = append(w.existingImages[:i:i], w.existingImages[i+1:]...)
	return nil
}

// Submit guarda la propiedad y después sube las imágenes nuevas.
//
// 1. Solo en el último paso, con todos los pasos completos y válidos
// 2. Create, o Update si estamos editando o si un intento anterior ya guardó el registro
// 3. Upload de imágenes con el id devuelto
// 4. Si el upload falla el registro ya existe: queda Failed con ErrImageUploadFailed
// y el id guardado, así el reintento actualiza en lugar de duplicar
func (w *Wizard) Submit(ctx context.Context) (*domain.Property, error) {
	w.mu.Lock()
	if err := w.mutable(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.current != len(w.steps)-1 {
		w.mu.Unlock()
		return nil, ErrNotFinalStep
	}
	for i := range w.steps {
		if err := w.checkStep(i); err != nil {
			w.mu.Unlock()
			return nil, err
		}
	}

	req := w.form.ToRequest()
	files := append([]dto.ImageFile(nil), w.newImages...)
	propertyID := w.propertyID
	w.status = StatusSubmitting
	w.failure = ""
	w.mu.Unlock()

	var (
		saved *domain.Property
		err   error
	)
	if propertyID == "" {
		saved, err = w.saver.CreateProperty(ctx, req)
	} else {
		saved, err = w.saver.UpdateProperty(ctx, propertyID, req)
	}
	if err != nil {
		w.fail(apperrors.Message(err))
		return nil, err
	}
	if saved.PropertyID != "" {
		propertyID = saved.PropertyID
	}

	w.mu.Lock()
	w.propertyID = propertyID
	w.saved = saved
	w.mu.Unlock()

	if len(files) > 0 {
		paths, err := w.saver.UploadImages(ctx, propertyID, files)
		if err != nil {
			log.Warn().Err(err).Str("property_id", propertyID).Msg("Property saved but image upload failed")
			w.fail(ErrImageUploadFailed.Error())
			return saved, &UploadError{PropertyID: propertyID, Err: err}
		}

		w.mu.Lock()
		w.existingImages = append(w.existingImages, paths...)
		w.newImages = nil
		saved.ImageFolderPath = append([]string(nil), w.existingImages...)
		w.mu.Unlock()
	}

	w.mu.Lock()
	w.status = StatusSubmitted
	w.mu.Unlock()

	log.Info().Str("property_id", propertyID).Bool("edit", w.editing).Int("images", len(files)).Msg("Property wizard submitted")
	return saved, nil
}

func (w *Wizard) fail(reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = StatusFailed
	w.failure = reason
}

// StepState es el resumen de un paso para la UI
type StepState struct {
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// State es una foto del wizard
type State struct {
	Step            int                     `json:"step"`
	StepName        string                  `json:"stepName"`
	Steps           []StepState             `json:"steps"`
	Form            FormData                `json:"form"`
	NewImages       []dto.ImageFile         `json:"newImages"`
	ExistingImages  []string                `json:"existingImages"`
	Status          Status                  `json:"status"`
	Failure         string                  `json:"failure,omitempty"`
	PropertyID      string                  `json:"propertyId,omitempty"`
	Editing         bool                    `json:"editing"`
	PriceOverridden bool                    `json:"priceOverridden"`
	Suggestion      *dto.PredictionResponse `json:"suggestion,omitempty"`
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	steps := make([]StepState, len(w.steps))
	for i, s := range w.steps {
		steps[i] = StepState{Name: s.String(), Complete: w.isStepComplete(i)}
	}

	st := State{
		Step:            w.current,
		StepName:        w.steps[w.current].String(),
		Steps:           steps,
		Form:            w.form,
		NewImages:       append([]dto.ImageFile(nil), w.newImages...),
		ExistingImages:  append([]string(nil), w.existingImages...),
		Status:          w.status,
		Failure:         w.failure,
		PropertyID:      w.propertyID,
		Editing:         w.editing,
		PriceOverridden: w.priceOverridden,
	}
	st.Form.Characteristics = append([]int64(nil), w.form.Characteristics...)
	if w.suggestion != nil {
		s := *w.suggestion
		st.Suggestion = &s
	}
	return st
}
