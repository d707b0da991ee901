package consumers

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
)

// Exchanges y routing keys que publica el backend
const (
	PropertyExchange = "property.exchange"
	UserExchange     = "user.exchange"

	KeyPropertyCreated       = "property.created"
	KeyPropertyStatusChanged = "property.status.changed"
	KeyPropertyValidated     = "property.validated"
	KeyPropertyDeleted       = "property.deleted"
	KeyUserTypeUpgraded      = "user.type.upgraded"
)

// Bindings es la lista exchange -> routing keys a la que se suscribe la cola
var Bindings = map[string][]string{
	PropertyExchange: {KeyPropertyCreated, KeyPropertyStatusChanged, KeyPropertyValidated, KeyPropertyDeleted},
	UserExchange:     {KeyUserTypeUpgraded},
}

var errMalformed = errors.New("malformed event")

// PropertyEvent cubre los cuatro eventos de propiedades; los campos de status
// solo vienen en property.status.changed
type PropertyEvent struct {
	PropertyID string                `json:"propertyId"`
	OwnerID    string                `json:"ownerId,omitempty"`
	OldStatus  domain.PropertyStatus `json:"oldStatus,omitempty"`
	NewStatus  domain.PropertyStatus `json:"newStatus,omitempty"`
	Timestamp  string                `json:"timestamp,omitempty"`
}

// UserTypeEvent es user.type.upgraded (p. ej. un USER que pasa a HOST)
type UserTypeEvent struct {
	UserID    string `json:"userId"`
	NewType   string `json:"newType"`
	Timestamp string `json:"timestamp,omitempty"`
}

// EventHandler procesa los eventos ya decodificados.
// Un error hace que el mensaje vuelva a la cola.
type EventHandler interface {
	HandlePropertyEvent(ctx context.Context, routingKey string, event PropertyEvent) error
	HandleUserTypeUpgraded(ctx context.Context, event UserTypeEvent) error
}

// PropertyInvalidator borra el detalle cacheado de una propiedad
type PropertyInvalidator interface {
	InvalidateProperty(propertyID string)
}

// SessionMarker marca como viejas las sesiones de un usuario
type SessionMarker interface {
	MarkUserStale(userID string) int
}

// CacheInvalidator es el EventHandler del BFF: los eventos solo invalidan estado local
type CacheInvalidator struct {
	properties PropertyInvalidator
	sessions   SessionMarker
}

func NewCacheInvalidator(properties PropertyInvalidator, sessions SessionMarker) *CacheInvalidator {
	return &CacheInvalidator{properties: properties, sessions: sessions}
}

func (h *CacheInvalidator) HandlePropertyEvent(ctx context.Context, routingKey string, event PropertyEvent) error {
	h.properties.InvalidateProperty(event.PropertyID)
	log.Debug().Str("routing_key", routingKey).Str("property_id", event.PropertyID).
		Str("new_status", string(event.NewStatus)).Msg("Property cache invalidated")
	return nil
}

func (h *CacheInvalidator) HandleUserTypeUpgraded(ctx context.Context, event UserTypeEvent) error {
	n := h.sessions.MarkUserStale(event.UserID)
	log.Info().Str("user_id", event.UserID).Str("new_type", event.NewType).Int("sessions", n).Msg("User sessions marked stale")
	return nil
}
