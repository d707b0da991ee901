package stores

import (
	"context"
	"sync"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

// ProfileStore guarda el perfil del usuario de la sesión
type ProfileStore struct {
	users  services.UserService
	userID string

	mu      sync.Mutex
	profile *domain.UserData
	stale   bool
	err     error
}

// NewProfileStore arranca con el perfil que devolvió el login
func NewProfileStore(users services.UserService, initial domain.UserData) *ProfileStore {
	p := initial
	return &ProfileStore{users: users, userID: initial.UserID, profile: &p}
}

// Load trae el perfil del servicio de auth
func (s *ProfileStore) Load(ctx context.Context) (domain.UserData, error) {
	user, err := s.users.GetProfile(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		if s.profile == nil {
			return domain.UserData{}, err
		}
		return *s.profile, err
	}
	s.profile = user
	s.stale = false
	return *user, nil
}

// Update guarda los cambios y recarga el perfil
func (s *ProfileStore) Update(ctx context.Context, req dto.UpdateProfileRequest) (domain.UserData, error) {
	if _, err := s.users.UpdateProfile(ctx, s.userID, req); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return domain.UserData{}, err
	}
	return s.Load(ctx)
}

// MarkStale fuerza una recarga en el próximo acceso (p. ej. cambió el tipo de usuario)
func (s *ProfileStore) MarkStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
}

func (s *ProfileStore) IsStale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Get devuelve el perfil, recargándolo antes si quedó viejo
func (s *ProfileStore) Get(ctx context.Context) (domain.UserData, error) {
	s.mu.Lock()
	stale := s.stale || s.profile == nil
	var current domain.UserData
	if s.profile != nil {
		current = *s.profile
	}
	s.mu.Unlock()

	if !stale {
		return current, nil
	}
	return s.Load(ctx)
}

// LastError es el error de la última operación, como mensaje para el usuario
func (s *ProfileStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apperrors.Message(s.err)
}
