package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
	"github.com/appLSI/decentralized-rental-app-sub000/wizard"
)

// imagesField es el campo multipart con las fotos
const imagesField = "images"

// PriceOverrideRequest es el body de price/override
type PriceOverrideRequest struct {
	Price float64 `json:"price" binding:"required"`
}

// WizardSubmitResponse es la respuesta de un envío exitoso
type WizardSubmitResponse struct {
	Message  string          `json:"message"`
	Property domain.Property `json:"property"`
	State    wizard.State    `json:"state"`
}

// WizardController expone el formulario multi-paso de alta/edición.
// Cada sesión tiene a lo sumo un wizard en curso.
type WizardController struct {
	saver     wizard.PropertySaver
	predictor wizard.PricePredictor
	opts      []wizard.Option
}

// NewWizardController recibe predictor nil cuando no hay servicio de precios
func NewWizardController(saver wizard.PropertySaver, predictor wizard.PricePredictor, opts ...wizard.Option) *WizardController {
	return &WizardController{saver: saver, predictor: predictor, opts: opts}
}

func noWizard(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error:   "not_found",
		Message: "no property form in progress",
	})
}

// current devuelve la sesión y su wizard; si falta alguno ya respondió
func (ctrl *WizardController) current(c *gin.Context) (*stores.Session, *wizard.Wizard, bool) {
	s, ok := session(c)
	if !ok {
		return nil, nil, false
	}
	w, ok := s.Wizard()
	if !ok {
		noWizard(c)
		return nil, nil, false
	}
	return s, w, true
}

// Start maneja POST /api/host/wizard (?edit=<propertyId> para editar)
func (ctrl *WizardController) Start(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	editID := c.Query("edit")
	if editID == "" {
		w := wizard.New(ctrl.saver, ctrl.predictor, ctrl.opts...)
		s.SetWizard(w)
		c.JSON(http.StatusCreated, w.State())
		return
	}

	// 1. Buscar la propiedad entre las del host (cargando la lista si hace falta)
	property, found := s.Host.Find(editID)
	if !found {
		if err := s.Host.Load(s.Context(c.Request.Context())); err != nil {
			respondError(c, err)
			return
		}
		property, found = s.Host.Find(editID)
	}
	if !found {
		respondError(c, apperrors.NewNotFoundError("Property not found"))
		return
	}

	// 2. Solo DRAFT o PENDING
	w, err := wizard.NewForEdit(property, ctrl.saver, ctrl.predictor, ctrl.opts...)
	if err != nil {
		respondError(c, err)
		return
	}
	s.SetWizard(w)
	c.JSON(http.StatusCreated, w.State())
}

// State maneja GET /api/host/wizard
func (ctrl *WizardController) State(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// Discard maneja DELETE /api/host/wizard
func (ctrl *WizardController) Discard(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	s.SetWizard(nil)
	c.Status(http.StatusNoContent)
}

// Update maneja PATCH /api/host/wizard.
// Si cambió algún dato que usa el modelo de precios se pide una sugerencia nueva.
func (ctrl *WizardController) Update(c *gin.Context) {
	s, w, ok := ctrl.current(c)
	if !ok {
		return
	}

	var patch wizard.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}

	changed, err := w.Update(patch)
	if err != nil {
		respondError(c, err)
		return
	}

	if changed && ctrl.predictor != nil && w.State().Form.CanPredict() {
		// la sugerencia es opcional: un error no invalida el cambio
		if _, err := w.RequestPrediction(s.Context(c.Request.Context())); err != nil && !errors.Is(err, wizard.ErrStalePrediction) {
			log.Warn().Err(err).Str("session_id", s.ID).Msg("Price suggestion failed")
		}
	}
	c.JSON(http.StatusOK, w.State())
}

// Next maneja POST /api/host/wizard/next
func (ctrl *WizardController) Next(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	if err := w.Next(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// Back maneja POST /api/host/wizard/back
func (ctrl *WizardController) Back(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	w.Back()
	c.JSON(http.StatusOK, w.State())
}

// GoTo maneja POST /api/host/wizard/goto/:step
func (ctrl *WizardController) GoTo(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	step, ok := intParam(c, "step")
	if !ok {
		return
	}
	if err := w.GoTo(step); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// Submit maneja POST /api/host/wizard/submit
func (ctrl *WizardController) Submit(c *gin.Context) {
	s, w, ok := ctrl.current(c)
	if !ok {
		return
	}

	ctx := s.Context(c.Request.Context())
	saved, err := w.Submit(ctx)
	if err != nil {
		// el registro existe aunque fallaron las imágenes: el dashboard tiene que verlo
		if errors.Is(err, wizard.ErrImageUploadFailed) {
			if loadErr := s.Host.Load(ctx); loadErr != nil {
				log.Warn().Err(loadErr).Msg("Host dashboard reload after partial submit failed")
			}
		}
		respondError(c, err)
		return
	}

	// El dashboard del host tiene que ver la propiedad nueva
	if err := s.Host.Load(ctx); err != nil {
		log.Warn().Err(err).Str("property_id", saved.PropertyID).Msg("Host dashboard reload after submit failed")
	}

	status := http.StatusCreated
	message := "Property created successfully"
	if w.State().Editing {
		status = http.StatusOK
		message = "Property updated successfully"
	}
	c.JSON(status, WizardSubmitResponse{Message: message, Property: *saved, State: w.State()})
}

// readImage lee un archivo del multipart en memoria
func readImage(fh *multipart.FileHeader) (dto.ImageFile, error) {
	f, err := fh.Open()
	if err != nil {
		return dto.ImageFile{}, fmt.Errorf("error opening %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dto.ImageFile{}, fmt.Errorf("error reading %s: %w", fh.Filename, err)
	}
	return dto.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}

// AddImages maneja POST /api/host/wizard/images (multipart, campo "images")
func (ctrl *WizardController) AddImages(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "multipart form with images is required")
		return
	}
	headers := form.File[imagesField]
	if len(headers) == 0 {
		badRequest(c, "no images received")
		return
	}

	files := make([]dto.ImageFile, 0, len(headers))
	for _, fh := range headers {
		file, err := readImage(fh)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		files = append(files, file)
	}

	if err := w.AddImages(files...); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// RemoveImage maneja DELETE /api/host/wizard/images/:index
func (ctrl *WizardController) RemoveImage(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	if err := w.RemoveImage(index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// RemoveExistingImage maneja DELETE /api/host/wizard/existing-images/:index
func (ctrl *WizardController) RemoveExistingImage(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	if err := w.RemoveExistingImage(index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// OverridePrice maneja POST /api/host/wizard/price/override
func (ctrl *WizardController) OverridePrice(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	var req PriceOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := w.OverridePrice(req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// ResetPrice maneja POST /api/host/wizard/price/reset
func (ctrl *WizardController) ResetPrice(c *gin.Context) {
	_, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	if err := w.ResetPrice(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// PredictPrice maneja POST /api/host/wizard/price/predict
func (ctrl *WizardController) PredictPrice(c *gin.Context) {
	s, w, ok := ctrl.current(c)
	if !ok {
		return
	}
	suggestion, err := w.RequestPrediction(s.Context(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Price suggestion received", Data: suggestion})
}
