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

// BookingState es el panel "My bookings" de la sesión
type BookingState struct {
	Bookings []domain.Booking  `json:"bookings"`
	Counts   dto.BookingCounts `json:"counts"`
	Loaded   bool              `json:"loaded"`
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
}

// BookingStore guarda las reservas del usuario logueado.
// Crear o cancelar siempre termina en una recarga completa.
type BookingStore struct {
	svc     services.BookingService
	userID  string
	profile *ProfileStore

	mu       sync.Mutex
	bookings []domain.Booking
	counts   dto.BookingCounts
	loaded   bool
	loading  bool
	err      error
}

// NewBookingStore usa el perfil de la sesión para saber si el usuario es CLIENT
func NewBookingStore(svc services.BookingService, userID string, profile *ProfileStore) *BookingStore {
	return &BookingStore{svc: svc, userID: userID, profile: profile}
}

// Load trae en paralelo las reservas y los dos conteos; si falla uno no se aplica nada
func (s *BookingStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		bookings []domain.Booking
		counts   dto.BookingCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.svc.MyBookings(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.ActiveAsClient, err = s.svc.CountClientActive(gctx, s.userID)
		return err
	})
	g.Go(func() error {
		var err error
		counts.FutureAsHost, err = s.svc.CountHostFuture(gctx, s.userID)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
	if err != nil {
		log.Warn().Err(err).Str("user_id", s.userID).Msg("Bookings load failed")
		return err
	}
	s.bookings = bookings
	s.counts = counts
	s.loaded = true
	return nil
}

func (s *BookingStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Create reserva solo si el usuario es CLIENT (el perfil se recarga si quedó viejo)
func (s *BookingStore) Create(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error) {
	user, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsClient() {
		err := apperrors.NewForbiddenError("A client account is required to book a property")
		s.setErr(err)
		return nil, err
	}

	booking, err := s.svc.Create(ctx, req)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	if err := s.Load(ctx); err != nil {
		return booking, err
	}
	return booking, nil
}

// statusOf busca el último status conocido; si la lista no está cargada la carga
func (s *BookingStore) statusOf(ctx context.Context, bookingID int64) (domain.BookingStatus, error) {
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
	for _, b := range s.bookings {
		if b.ID == bookingID {
			return b.Status, nil
		}
	}
	return "", apperrors.NewNotFoundError("Booking not found")
}

// Cancel valida el status conocido, cancela y recarga
func (s *BookingStore) Cancel(ctx context.Context, bookingID int64) error {
	status, err := s.statusOf(ctx, bookingID)
	if err != nil {
		return err
	}
	if _, err := s.svc.Cancel(ctx, bookingID, status); err != nil {
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

// Get va siempre al backend: el detalle puede cambiar con el pago
func (s *BookingStore) Get(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.svc.Get(ctx, bookingID)
}

func (s *BookingStore) State() BookingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BookingState{
		Bookings: append([]domain.Booking(nil), s.bookings...),
		Counts:   s.counts,
		Loaded:   s.loaded,
		Loading:  s.loading,
		Error:    apperrors.Message(s.err),
	}
}
