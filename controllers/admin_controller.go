package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

const defaultPendingSize = 10

// AgentValidationResponse devuelve los errores del formulario de agentes por campo
type AgentValidationResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// AdminController maneja el panel de administración.
// Todas las rutas pasan por AuthMiddleware + AdminMiddleware.
type AdminController struct{}

func NewAdminController() *AdminController {
	return &AdminController{}
}

// Dashboard maneja GET /api/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	if err := s.Admin.LoadDashboard(s.Context(c.Request.Context())); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Admin.State().Dashboard)
}

// Pending maneja GET /api/admin/pending?page=&size=
func (ctrl *AdminController) Pending(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	// 1. Parsear paginación
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		badRequest(c, "invalid page parameter")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPendingSize)))
	if err != nil {
		badRequest(c, "invalid size parameter")
		return
	}

	// 2. Cargar la cola
	if err := s.Admin.LoadPending(s.Context(c.Request.Context()), page, size); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Admin.State().Pending)
}

// Validate maneja PATCH /api/admin/properties/:id/validate (PENDING -> ACTIVE)
func (ctrl *AdminController) Validate(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	resp, err := s.Admin.Validate(s.Context(c.Request.Context()), c.Param("id"))
	if err != nil && resp == nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reject maneja POST /api/admin/properties/:id/reject (PENDING -> DRAFT)
func (ctrl *AdminController) Reject(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "a rejection reason is required")
		return
	}

	resp, err := s.Admin.Reject(s.Context(c.Request.Context()), c.Param("id"), req.Reason)
	if err != nil && resp == nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAgents maneja GET /api/admin/agents
func (ctrl *AdminController) ListAgents(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	if err := s.Admin.LoadAgents(s.Context(c.Request.Context())); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Admin.State().Agents)
}

// CreateAgent maneja POST /api/admin/agents
func (ctrl *AdminController) CreateAgent(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	// 1. Leer el body; la validación por campo la hace el servicio
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := services.ValidateAgent(req); len(fields) > 0 {
			c.JSON(http.StatusBadRequest, AgentValidationResponse{
				Error:   "validation",
				Message: "invalid agent data",
				Fields:  fields,
			})
			return
		}
		badRequest(c, err.Error())
		return
	}

	// 2. Crear y recargar la lista
	agent, err := s.Admin.CreateAgent(s.Context(c.Request.Context()), req)
	if err != nil && agent == nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SuccessResponse{Message: "Agent created successfully", Data: agent})
}

// DeleteAgent maneja DELETE /api/admin/agents/:id
func (ctrl *AdminController) DeleteAgent(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	if err := s.Admin.DeleteAgent(s.Context(c.Request.Context()), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Agent deleted successfully"})
}
