package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PropertyStatus es el ciclo de vida de una propiedad. El dueño es el backend:
// acá solo replicamos la tabla para rechazar acciones imposibles antes de llamarlo.
type PropertyStatus string

const (
	StatusDraft   PropertyStatus = "DRAFT"
	StatusPending PropertyStatus = "PENDING"
	StatusActive  PropertyStatus = "ACTIVE"
	StatusHidden  PropertyStatus = "HIDDEN"
	StatusDeleted PropertyStatus = "DELETED"
)

// ErrInvalidTransition se devuelve cuando la transición no está en la tabla
var ErrInvalidTransition = errors.New("invalid status transition")

// AllStatuses en el orden del ciclo de vida
var AllStatuses = []PropertyStatus{StatusDraft, StatusPending, StatusActive, StatusHidden, StatusDeleted}

var allowedTransitions = map[PropertyStatus][]PropertyStatus{
	StatusDraft:   {StatusPending, StatusDeleted},
	StatusPending: {StatusActive, StatusDraft, StatusDeleted},
	StatusActive:  {StatusHidden, StatusDeleted},
	StatusHidden:  {StatusActive, StatusDeleted},
	StatusDeleted: {},
}

// ParseStatus convierte "hidden", "HIDDEN", etc. en un PropertyStatus válido
func ParseStatus(s string) (PropertyStatus, error) {
	status := PropertyStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown property status %q", s)
	}
	return status, nil
}

func (s PropertyStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsPubliclyVisible: solo ACTIVE se muestra al público
func (s PropertyStatus) IsPubliclyVisible() bool { return s == StatusActive }

func (s PropertyStatus) CanAcceptBookings() bool { return s == StatusActive }

// IsEditable: el host puede editar mientras esté en DRAFT o PENDING
func (s PropertyStatus) IsEditable() bool { return s == StatusDraft || s == StatusPending }

func (s PropertyStatus) IsDeleted() bool { return s == StatusDeleted }

func (s PropertyStatus) NeedsValidation() bool { return s == StatusPending }

// CanTransitionTo indica si target aparece en la tabla para s
func (s PropertyStatus) CanTransitionTo(target PropertyStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// AllowedTransitions devuelve una copia, en el orden de la tabla
func (s PropertyStatus) AllowedTransitions() []PropertyStatus {
	next := allowedTransitions[s]
	out := make([]PropertyStatus, len(next))
	copy(out, next)
	return out
}

// CheckTransition devuelve ErrInvalidTransition (envuelto) si s -> target no está permitido
func (s PropertyStatus) CheckTransition(target PropertyStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// StatusDisplay es lo que la UI necesita para pintar un badge
type StatusDisplay struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var statusDisplay = map[PropertyStatus]StatusDisplay{
	StatusDraft:   {Label: "Brouillon", Description: "You are working on this property", Color: "gray"},
	StatusPending: {Label: "En attente", Description: "Waiting for admin validation", Color: "yellow"},
	StatusActive:  {Label: "Actif", Description: "Visible to the public", Color: "green"},
	StatusHidden:  {Label: "Caché", Description: "Hidden from public view", Color: "blue"},
	StatusDeleted: {Label: "Supprimé", Description: "Deleted (soft delete)", Color: "red"},
}

// Display devuelve label/descripción/color; un status desconocido se muestra tal cual en gris
func (s PropertyStatus) Display() StatusDisplay {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: "gray"}
}

// StatusTransition describe una acción del ciclo de vida.
// HostAllowed es false para las acciones que solo puede hacer un admin.
type StatusTransition struct {
	From        PropertyStatus `json:"from"`
	To          PropertyStatus `json:"to"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	HostAllowed bool           `json:"allowed"`
}

var transitionCatalog = []StatusTransition{
	{From: StatusDraft, To: StatusPending, Label: "Submit for Review", Description: "Submit to admin for validation", HostAllowed: true},
	{From: StatusDraft, To: StatusDeleted, Label: "Delete", Description: "Permanently delete", HostAllowed: true},
	{From: StatusPending, To: StatusActive, Label: "Approve", Description: "Admin approval (admin only)", HostAllowed: false},
	{From: StatusPending, To: StatusDraft, Label: "Return to Draft", Description: "Return for editing (admin only)", HostAllowed: false},
	{From: StatusPending, To: StatusDeleted, Label: "Delete", Description: "Permanently delete", HostAllowed: true},
	{From: StatusActive, To: StatusHidden, Label: "Hide", Description: "Make temporarily invisible", HostAllowed: true},
	{From: StatusActive, To: StatusDeleted, Label: "Delete", Description: "Permanently delete", HostAllowed: true},
	{From: StatusHidden, To: StatusActive, Label: "Show", Description: "Make visible again", HostAllowed: true},
	{From: StatusHidden, To: StatusDeleted, Label: "Delete", Description: "Permanently delete", HostAllowed: true},
}

// Transitions devuelve el catálogo completo de acciones
func Transitions() []StatusTransition {
	out := make([]StatusTransition, len(transitionCatalog))
	copy(out, transitionCatalog)
	return out
}

// HostActions devuelve las acciones que un host puede disparar desde s
func (s PropertyStatus) HostActions() []StatusTransition {
	var out []StatusTransition
	for _, t := range transitionCatalog {
		if t.From == s && t.HostAllowed {
			out = append(out, t)
		}
	}
	return out
}
