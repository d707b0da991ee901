package stores

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
	"github.com/appLSI/decentralized-rental-app-sub000/wizard"
)

// Session es el estado de aplicación de un usuario logueado.
// Cada store es dueño exclusivo de su parte del estado.
type Session struct {
	ID        string
	Token     string
	UserID    string
	CreatedAt time.Time

	Search   *SearchStore
	Host     *HostStore
	Admin    *AdminStore
	Profile  *ProfileStore
	Bookings *BookingStore

	mu     sync.Mutex
	wizard *wizard.Wizard
}

// Context agrega el bearer token de la sesión para las llamadas upstream
func (s *Session) Context(ctx context.Context) context.Context {
	return clients.WithToken(ctx, s.Token)
}

// Wizard devuelve el formulario en curso, si hay uno
func (s *Session) Wizard() (*wizard.Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard, s.wizard != nil
}

// SetWizard reemplaza el formulario en curso
func (s *Session) SetWizard(w *wizard.Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizard = w
}

// SessionStore guarda las sesiones en memoria con vencimiento por inactividad
type SessionStore struct {
	cache    *ccache.Cache[*Session]
	ttl      time.Duration
	props    services.PropertyService
	users    services.UserService
	bookings services.BookingService

	mu     sync.Mutex
	byUser map[string]map[string]struct{}
}

func NewSessionStore(props services.PropertyService, users services.UserService, bookings services.BookingService, ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache:    ccache.New(ccache.Configure[*Session]().MaxSize(10000)),
		ttl:      ttl,
		props:    props,
		users:    users,
		bookings: bookings,
		byUser:   make(map[string]map[string]struct{}),
	}
}

// Create abre una sesión nueva para el token y el usuario del login
func (s *SessionStore) Create(token string, user domain.UserData) *Session {
	profile := NewProfileStore(s.users, user)
	session := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    user.UserID,
		CreatedAt: time.Now(),
		Search:    NewSearchStore(s.props),
		Host:      NewHostStore(s.props, user.UserID),
		Admin:     NewAdminStore(s.props, s.users),
		Profile:   profile,
		Bookings:  NewBookingStore(s.bookings, user.UserID, profile),
	}
	s.cache.Set(session.ID, session, s.ttl)

	s.mu.Lock()
	ids, ok := s.byUser[user.UserID]
	if !ok {
		ids = make(map[string]struct{})
		s.byUser[user.UserID] = ids
	}
	ids[session.ID] = struct{}{}
	s.mu.Unlock()

	log.Info().Str("session_id", session.ID).Str("user_id", user.UserID).Msg("Session created")
	return session
}

// Get devuelve la sesión y renueva su vencimiento
func (s *SessionStore) Get(id string) (*Session, bool) {
	item := s.cache.Get(id)
	if item == nil || item.Expired() {
		return nil, false
	}
	item.Extend(s.ttl)
	return item.Value(), true
}

// Delete cierra la sesión (logout)
func (s *SessionStore) Delete(id string) {
	item := s.cache.Get(id)
	s.cache.Delete(id)
	if item == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	userID := item.Value().UserID
	if ids, ok := s.byUser[userID]; ok {
		delete(ids, id)
		if len(ids) == 0 {
			delete(s.byUser, userID)
		}
	}
}

// MarkUserStale marca como viejo el perfil de todas las sesiones del usuario;
// devuelve cuántas sesiones vivas había
func (s *SessionStore) MarkUserStale(userID string) int {
	s.mu.Lock()
	ids := make([]string, 0, len(s.byUser[userID]))
	for id := range s.byUser[userID] {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	marked := 0
	var expired []string
	for _, id := range ids {
		item := s.cache.Get(id)
		if item == nil || item.Expired() {
			expired = append(expired, id)
			continue
		}
		item.Value().Profile.MarkStale()
		marked++
	}

	if len(expired) > 0 {
		s.mu.Lock()
		for _, id := range expired {
			delete(s.byUser[userID], id)
		}
		if len(s.byUser[userID]) == 0 {
			delete(s.byUser, userID)
		}
		s.mu.Unlock()
	}
	return marked
}

// Close frena el worker de ccache
func (s *SessionStore) Close() {
	s.cache.Stop()
}
