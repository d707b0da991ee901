package stores

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

// dashboardPendingSize es el tamaño de la página de pendientes del dashboard;
// solo interesa totalElements
const dashboardPendingSize = 5

// Dashboard son los contadores del panel de admin
type Dashboard struct {
	PendingProperties int64 `json:"pendingProperties"`
	Agents            int   `json:"agents"`
	TotalProperties   int64 `json:"totalProperties"`
}

// AdminState es la foto del panel de admin
type AdminState struct {
	Dashboard Dashboard                     `json:"dashboard"`
	Pending   *domain.Page[domain.Property] `json:"pending,omitempty"`
	Agents    []domain.Agent                `json:"agents"`
	Loading   bool                          `json:"loading"`
	Error     string                        `json:"error,omitempty"`
}

// AdminStore guarda el dashboard, la cola de validación y los agentes
type AdminStore struct {
	props services.PropertyService
	users services.UserService

	mu          sync.Mutex
	dashboard   Dashboard
	pending     *domain.Page[domain.Property]
	pendingPage int
	pendingSize int
	agents      []domain.Agent
	loading     bool
	err         error
}

func NewAdminStore(props services.PropertyService, users services.UserService) *AdminStore {
	return &AdminStore{props: props, users: users, pendingSize: 10}
}

func (s *AdminStore) setResult(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
	return err
}

// LoadDashboard junta los tres contadores en paralelo; todo o nada
func (s *AdminStore) LoadDashboard(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pending, err := s.props.PendingProperties(gctx, 0, dashboardPendingSize)
		if err != nil {
			return err
		}
		d.PendingProperties = pending.TotalElements
		return nil
	})
	g.Go(func() error {
		agents, err := s.users.ListAgents(gctx)
		if err != nil {
			return err
		}
		d.Agents = len(agents)
		return nil
	})
	g.Go(func() error {
		total, err := s.props.CountProperties(gctx)
		if err != nil {
			return err
		}
		d.TotalProperties = total
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("Admin dashboard load failed")
		return s.setResult(err)
	}

	s.mu.Lock()
	s.dashboard = d
	s.mu.Unlock()
	return s.setResult(nil)
}

// LoadPending trae una página de la cola de validación
func (s *AdminStore) LoadPending(ctx context.Context, page, size int) error {
	if page < 0 {
		return apperrors.NewValidationError("page cannot be negative")
	}
	if size <= 0 {
		size = s.pendingSize
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	result, err := s.props.PendingProperties(ctx, page, size)
	if err != nil {
		return s.setResult(err)
	}

	s.mu.Lock()
	s.pending = result
	s.pendingPage = page
	s.pendingSize = size
	s.mu.Unlock()
	return s.setResult(nil)
}

func (s *AdminStore) reloadPending(ctx context.Context) error {
	s.mu.Lock()
	page, size := s.pendingPage, s.pendingSize
	s.mu.Unlock()
	return s.LoadPending(ctx, page, size)
}

// statusOf usa la cola cargada; si la propiedad no está ahí la pide a la vista de admin
func (s *AdminStore) statusOf(ctx context.Context, propertyID string) (domain.PropertyStatus, error) {
	s.mu.Lock()
	if s.pending != nil {
		for _, p := range s.pending.Content {
			if p.PropertyID == propertyID {
				s.mu.Unlock()
				return p.Status, nil
			}
		}
	}
	s.mu.Unlock()

	property, err := s.props.GetPropertyForAdmin(ctx, propertyID)
	if err != nil {
		return "", err
	}
	return property.Status, nil
}

// Validate aprueba una propiedad pendiente y recarga la cola
func (s *AdminStore) Validate(ctx context.Context, propertyID string) (*dto.PropertyActionResponse, error) {
	status, err := s.statusOf(ctx, propertyID)
	if err != nil {
		return nil, s.setResult(err)
	}
	resp, err := s.props.Validate(ctx, propertyID, status)
	if err != nil {
		return nil, s.setResult(err)
	}
	return resp, s.reloadPending(ctx)
}

// Reject devuelve la propiedad a DRAFT; el motivo es obligatorio
func (s *AdminStore) Reject(ctx context.Context, propertyID, reason string) (*dto.PropertyActionResponse, error) {
	status, err := s.statusOf(ctx, propertyID)
	if err != nil {
		return nil, s.setResult(err)
	}
	resp, err := s.props.Reject(ctx, propertyID, status, reason)
	if err != nil {
		return nil, s.setResult(err)
	}
	return resp, s.reloadPending(ctx)
}

func (s *AdminStore) LoadAgents(ctx context.Context) error {
	agents, err := s.users.ListAgents(ctx)
	if err != nil {
		return s.setResult(err)
	}
	s.mu.Lock()
	s.agents = agents
	s.mu.Unlock()
	return s.setResult(nil)
}

func (s *AdminStore) CreateAgent(ctx context.Context, req dto.CreateAgentRequest) (*domain.Agent, error) {
	agent, err := s.users.CreateAgent(ctx, req)
	if err != nil {
		return nil, s.setResult(err)
	}
	return agent, s.LoadAgents(ctx)
}

func (s *AdminStore) DeleteAgent(ctx context.Context, agentID string) error {
	if err := s.users.DeleteAgent(ctx, agentID); err != nil {
		return s.setResult(err)
	}
	return s.LoadAgents(ctx)
}

func (s *AdminStore) State() AdminState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := AdminState{
		Dashboard: s.dashboard,
		Agents:    append([]domain.Agent(nil), s.agents...),
		Loading:   s.loading,
		Error:     apperrors.Message(s.err),
	}
	if s.pending != nil {
		p := *s.pending
		p.Content = append([]domain.Property(nil), s.pending.Content...)
		st.Pending = &p
	}
	return st
}
