package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contains(list []PropertyStatus, s PropertyStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestStatus_EditableAndVisible(t *testing.T) {
	for _, s := range AllStatuses {
		wantEditable := s == StatusDraft || s == StatusPending
		assert.Equal(t, wantEditable, s.IsEditable(), "IsEditable(%s)", s)
		assert.Equal(t, s == StatusActive, s.IsPubliclyVisible(), "IsPubliclyVisible(%s)", s)
		assert.Equal(t, s == StatusActive, s.CanAcceptBookings(), "CanAcceptBookings(%s)", s)
	}
}

func TestStatus_CanTransitionTo_MatchesTable(t *testing.T) {
	table := map[PropertyStatus][]PropertyStatus{
		StatusDraft:   {StatusPending, StatusDeleted},
		StatusPending: {StatusActive, StatusDraft, StatusDeleted},
		StatusActive:  {StatusHidden, StatusDeleted},
		StatusHidden:  {StatusActive, StatusDeleted},
		StatusDeleted: {},
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := contains(table[from], to)
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_DeletedIsTerminal(t *testing.T) {
	assert.Empty(t, StatusDeleted.AllowedTransitions())
	for _, to := range AllStatuses {
		assert.False(t, StatusDeleted.CanTransitionTo(to))
	}
}

func TestStatus_HiddenAllowedTransitions(t *testing.T) {
	assert.Equal(t, []PropertyStatus{StatusActive, StatusDeleted}, StatusHidden.AllowedTransitions())
}

func TestStatus_AllowedTransitionsReturnsCopy(t *testing.T) {
	got := StatusDraft.AllowedTransitions()
	got[0] = StatusDeleted

	assert.Equal(t, []PropertyStatus{StatusPending, StatusDeleted}, StatusDraft.AllowedTransitions())
}

func TestStatus_CheckTransition(t *testing.T) {
	assert.NoError(t, StatusActive.CheckTransition(StatusHidden))

	err := StatusDraft.CheckTransition(StatusHidden)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "DRAFT -> HIDDEN")
}

func TestStatus_UnknownHasNoTransitions(t *testing.T) {
	unknown := PropertyStatus("ARCHIVED")

	assert.False(t, unknown.IsValid())
	assert.Empty(t, unknown.AllowedTransitions())
	assert.False(t, unknown.CanTransitionTo(StatusActive))
	assert.Equal(t, StatusDisplay{Label: "ARCHIVED", Color: "gray"}, unknown.Display())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" hidden ")
	require.NoError(t, err)
	assert.Equal(t, StatusHidden, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestStatus_Display(t *testing.T) {
	assert.Equal(t, StatusDisplay{Label: "Brouillon", Description: "You are working on this property", Color: "gray"}, StatusDraft.Display())
	assert.Equal(t, "yellow", StatusPending.Display().Color)
	assert.Equal(t, "Actif", StatusActive.Display().Label)
	assert.Equal(t, "blue", StatusHidden.Display().Color)
	assert.Equal(t, "red", StatusDeleted.Display().Color)
}

func TestTransitions_CatalogAgreesWithTable(t *testing.T) {
	catalog := Transitions()
	count := 0
	for _, s := range AllStatuses {
		count += len(s.AllowedTransitions())
	}
	require.Len(t, catalog, count)

	for _, tr := range catalog {
		assert.True(t, tr.From.CanTransitionTo(tr.To), "%s -> %s", tr.From, tr.To)
	}
}

func TestHostActions_ExcludeAdminOnly(t *testing.T) {
	actions := StatusPending.HostActions()

	require.Len(t, actions, 1)
	assert.Equal(t, StatusDeleted, actions[0].To)
	assert.Len(t, StatusHidden.HostActions(), 2)
	assert.Empty(t, StatusDeleted.HostActions())
}
