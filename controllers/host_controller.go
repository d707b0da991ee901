package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/stores"
)

// HostController maneja el dashboard del host y las acciones de status
type HostController struct{}

func NewHostController() *HostController {
	return &HostController{}
}

// ListProperties maneja GET /api/host/properties
// Devuelve propiedades, conteos y estadísticas; ?refresh=false usa lo ya cargado.
func (ctrl *HostController) ListProperties(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	if c.Query("refresh") != "false" || !s.Host.State().Loaded {
		if err := s.Host.Load(s.Context(c.Request.Context())); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, s.Host.State())
}

// action corre una acción del host y devuelve el dashboard recargado
func (ctrl *HostController) action(c *gin.Context, run func(h *stores.HostStore, ctx context.Context, id string) error) {
	s, ok := session(c)
	if !ok {
		return
	}

	if err := run(s.Host, s.Context(c.Request.Context()), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Host.State())
}

// Submit maneja POST /api/host/properties/:id/submit (DRAFT -> PENDING)
func (ctrl *HostController) Submit(c *gin.Context) {
	ctrl.action(c, (*stores.HostStore).Submit)
}

// Hide maneja POST /api/host/properties/:id/hide (ACTIVE -> HIDDEN)
func (ctrl *HostController) Hide(c *gin.Context) {
	ctrl.action(c, (*stores.HostStore).Hide)
}

// Show maneja POST /api/host/properties/:id/show (HIDDEN -> ACTIVE)
func (ctrl *HostController) Show(c *gin.Context) {
	ctrl.action(c, (*stores.HostStore).Show)
}

// Delete maneja DELETE /api/host/properties/:id
func (ctrl *HostController) Delete(c *gin.Context) {
	ctrl.action(c, (*stores.HostStore).Delete)
}
