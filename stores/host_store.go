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

// HostState es el dashboard del host
type HostState struct {
	Properties []domain.Property `json:"properties"`
	Counts     dto.OwnerCounts   `json:"counts"`
	Stats      domain.OwnerStats `json:"stats"`
	Loaded     bool              `json:"loaded"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
}

// HostStore guarda las propiedades del host logueado.
// Las acciones cambian el status en el backend y después se recarga todo.
type HostStore struct {
	props   services.PropertyService
	ownerID string

	mu         sync.Mutex
	properties []domain.Property
	counts     dto.OwnerCounts
	loaded     bool
	loading    bool
	err        error
}

func NewHostStore(props services.PropertyService, ownerID string) *HostStore {
	return &HostStore{props: props, ownerID: ownerID}
}

// Load trae en paralelo las propiedades y los dos conteos.
// Si falla cualquiera no se aplica nada.
func (s *HostStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		properties []domain.Property
		counts     dto.OwnerCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.props.MyProperties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Total, err = s.props.CountOwnerProperties(gctx, s.ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Active, err = s.props.CountOwnerActiveProperties(gctx, s.ownerID)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
	if err != nil {
		log.Warn().Err(err).Str("owner_id", s.ownerID).Msg("Host dashboard load failed")
		return err
	}
	s.properties = properties
	s.counts = counts
	s.loaded = true
	return nil
}

// statusOf busca el último status conocido; si la lista no está cargada la carga
func (s *HostStore) statusOf(ctx context.Context, propertyID string) (domain.PropertyStatus, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		if err := s.Load(ctx); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.PropertyID == propertyID {
			return p.Status, nil
		}
	}
	return "", apperrors.NewNotFoundError("Property not found")
}

func (s *HostStore) act(ctx context.Context, propertyID string, call func(domain.PropertyStatus) error) error {
	status, err := s.statusOf(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := call(status); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return err
	}
	return s.Load(ctx)
}

func (s *HostStore) Submit(ctx context.Context, propertyID string) error {
	return s.act(ctx, propertyID, func(current domain.PropertyStatus) error {
		_, err := s.props.Submit(ctx, propertyID, current)
		return err
	})
}

func (s *HostStore) Hide(ctx context.Context, propertyID string) error {
	return s.act(ctx, propertyID, func(current domain.PropertyStatus) error {
		_, err := s.props.Hide(ctx, propertyID, current)
		return err
	})
}

func (s *HostStore) Show(ctx context.Context, propertyID string) error {
	return s.act(ctx, propertyID, func(current domain.PropertyStatus) error {
		_, err := s.props.Show(ctx, propertyID, current)
		return err
	})
}

func (s *HostStore) Delete(ctx context.Context, propertyID string) error {
	return s.act(ctx, propertyID, func(current domain.PropertyStatus) error {
		return s.props.Delete(ctx, propertyID, current)
	})
}

// Find devuelve la propiedad del host si está en la última lista
func (s *HostStore) Find(propertyID string) (domain.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.PropertyID == propertyID {
			return p, true
		}
	}
	return domain.Property{}, false
}

// Stats se calcula sobre la última lista cargada
func (s *HostStore) Stats() domain.OwnerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeOwnerStats(s.properties)
}

func (s *HostStore) State() HostState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HostState{
		Properties: append([]domain.Property(nil), s.properties...),
		Counts:     s.counts,
		Stats:      domain.ComputeOwnerStats(s.properties),
		Loaded:     s.loaded,
		Loading:    s.loading,
		Error:      apperrors.Message(s.err),
	}
}
