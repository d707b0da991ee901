package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/geo"
	"github.com/appLSI/decentralized-rental-app-sub000/middleware"
	"github.com/appLSI/decentralized-rental-app-sub000/search"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

// PropertyListResponse es una página del buscador con el encuadre del mapa
type PropertyListResponse struct {
	Filter        search.Filter     `json:"filter"`
	Query         string            `json:"query"`
	Results       []domain.Property `json:"results"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	Viewport      geo.Viewport      `json:"viewport"`
}

// NearbyResponse agrega la distancia ya formateada de cada resultado
type NearbyResponse struct {
	Results       []domain.Property `json:"results"`
	Distances     map[string]string `json:"distances"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	Viewport      geo.Viewport      `json:"viewport"`
}

// PropertyDetailResponse es el detalle público de una propiedad
type PropertyDetailResponse struct {
	Property domain.Property      `json:"property"`
	Status   domain.StatusDisplay `json:"status"`
	Images   []string             `json:"images"`
	Viewport geo.Viewport         `json:"viewport"`
}

// StatusPolicyResponse describe qué se puede hacer con una propiedad en un status
type StatusPolicyResponse struct {
	Status             domain.PropertyStatus     `json:"status"`
	Display            domain.StatusDisplay      `json:"display"`
	AllowedTransitions []domain.PropertyStatus   `json:"allowedTransitions"`
	HostActions        []domain.StatusTransition `json:"hostActions"`
	Editable           bool                      `json:"editable"`
	PubliclyVisible    bool                      `json:"publiclyVisible"`
	AcceptsBookings    bool                      `json:"acceptsBookings"`
	NeedsValidation    bool                      `json:"needsValidation"`
}

// PropertyController maneja los endpoints públicos de propiedades
type PropertyController struct {
	props        services.PropertyService
	catalog      services.CatalogService
	imageBaseURL string
}

func NewPropertyController(props services.PropertyService, catalog services.CatalogService, imageBaseURL string) *PropertyController {
	return &PropertyController{props: props, catalog: catalog, imageBaseURL: imageBaseURL}
}

func listResponse(filter search.Filter, results []domain.Property, totalPages int, totalElements int64) PropertyListResponse {
	return PropertyListResponse{
		Filter:        filter,
		Query:         search.EncodeString(filter),
		Results:       results,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		Viewport:      geo.PlanViewport(geo.PropertyPoints(results)),
	}
}

// ListProperties maneja GET /api/properties?city=&guests=&type=&price=&sort=&page=
// Con sesión el filtro queda guardado en el SearchStore; sin sesión se consulta directo.
func (ctrl *PropertyController) ListProperties(c *gin.Context) {
	// 1. Parsear el filtro de la URL
	filter, err := search.Decode(c.Request.URL.Query())
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	// 2. Con sesión: usar el buscador de la sesión
	if s, ok := middleware.SessionFrom(c); ok {
		ctx := s.Context(c.Request.Context())
		if filter.Page > 0 {
			// primero la búsqueda, después la página pedida
			err = s.Search.Search(ctx, filter)
			if err == nil {
				err = s.Search.GoToPage(ctx, filter.Page)
			}
		} else {
			err = s.Search.Search(ctx, filter)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		st := s.Search.State()
		c.JSON(http.StatusOK, listResponse(st.Filter, st.Results, st.TotalPages, st.TotalElements))
		return
	}

	// 3. Sin sesión: consulta directa
	ctrl.searchWithoutSession(c, filter)
}

// searchWithoutSession consulta sin estado. Como no hay un total conocido,
// una página fuera de rango se detecta recién con la respuesta.
func (ctrl *PropertyController) searchWithoutSession(c *gin.Context, filter search.Filter) {
	filter = filter.Normalize()
	page, err := ctrl.props.Search(c.Request.Context(), filter, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	if filter.Page > 0 && !page.HasPage(filter.Page) {
		pageErr := search.ValidatePage(filter.Page, page.TotalPages)
		respondError(c, apperrors.Wrap(apperrors.ErrorTypeValidation, pageErr.Error(), pageErr))
		return
	}
	c.JSON(http.StatusOK, listResponse(filter, page.Content, page.TotalPages, page.TotalElements))
}

// GoToPage maneja GET /api/properties/page/:page
// Requiere una búsqueda previa en la sesión: la página se valida contra su total.
func (ctrl *PropertyController) GoToPage(c *gin.Context) {
	p, ok := intParam(c, "page")
	if !ok {
		return
	}

	s, ok := middleware.SessionFrom(c)
	if !ok {
		// sin sesión los filtros vienen en el query string
		filter, err := search.Decode(c.Request.URL.Query())
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if p < 0 {
			badRequest(c, "page cannot be negative")
			return
		}
		ctrl.searchWithoutSession(c, filter.WithPage(p))
		return
	}

	if err := s.Search.GoToPage(s.Context(c.Request.Context()), p); err != nil {
		respondError(c, err)
		return
	}
	st := s.Search.State()
	c.JSON(http.StatusOK, listResponse(st.Filter, st.Results, st.TotalPages, st.TotalElements))
}

// Nearby maneja GET /api/properties/nearby?latitude=&longitude=&radius=
func (ctrl *PropertyController) Nearby(c *gin.Context) {
	// 1. Bindear los query params
	var req dto.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !geo.ValidCoordinates(geo.Point{Lat: req.Latitude, Lng: req.Longitude}) {
		badRequest(c, "latitude must be in [-90, 90] and longitude in [-180, 180]")
		return
	}
	req.ApplyDefaults()

	// 2. Buscar
	page, err := ctrl.props.Nearby(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. Formatear distancias para la UI
	distances := make(map[string]string, len(page.Content))
	for _, p := range page.Content {
		if p.Distance != nil {
			distances[p.PropertyID] = geo.FormatDistance(*p.Distance)
		}
	}

	c.JSON(http.StatusOK, NearbyResponse{
		Results:       page.Content,
		Distances:     distances,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		Viewport:      geo.PlanViewport(geo.PropertyPoints(page.Content)),
	})
}

// GetProperty maneja GET /api/properties/:id
func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	ctx := c.Request.Context()
	if s, ok := middleware.SessionFrom(c); ok {
		ctx = s.Context(ctx)
	}

	property, err := ctrl.props.GetProperty(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	images := make([]string, 0, len(property.ImageFolderPath))
	for _, path := range property.ImageFolderPath {
		images = append(images, domain.ResolveImageURL(path, ctrl.imageBaseURL))
	}
	if len(images) == 0 {
		images = append(images, domain.ResolveImageURL("", ctrl.imageBaseURL))
	}

	viewport := geo.Viewport{Action: geo.ActionNone}
	if points := geo.PropertyPoints([]domain.Property{*property}); len(points) == 1 {
		viewport = geo.FocusMarker(points[0])
	}

	c.JSON(http.StatusOK, PropertyDetailResponse{
		Property: *property,
		Status:   property.Status.Display(),
		Images:   images,
		Viewport: viewport,
	})
}

// Characteristics maneja GET /api/characteristics (agrupadas por tipo, cacheadas)
func (ctrl *PropertyController) Characteristics(c *gin.Context) {
	groups, err := ctrl.catalog.Groups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// StatusPolicy maneja GET /api/status/:status
func (ctrl *PropertyController) StatusPolicy(c *gin.Context) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, StatusPolicyResponse{
		Status:             status,
		Display:            status.Display(),
		AllowedTransitions: status.AllowedTransitions(),
		HostActions:        status.HostActions(),
		Editable:           status.IsEditable(),
		PubliclyVisible:    status.IsPubliclyVisible(),
		AcceptsBookings:    status.CanAcceptBookings(),
		NeedsValidation:    status.NeedsValidation(),
	})
}
