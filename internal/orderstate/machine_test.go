package orderstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

var defaultStatuses = []string{"Not processed", "Processing", "Shipped", "Delivered", "Cancelled"}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []string
		wantErr  bool
	}{
		{name: "default set", statuses: defaultStatuses},
		{name: "empty", statuses: nil, wantErr: true},
		{name: "blank member", statuses: []string{"A", " "}, wantErr: true},
		{name: "duplicate", statuses: []string{"A", "B", "A"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := New(tt.statuses, false)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, m)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMachine_InitialAndAllowed(t *testing.T) {
	m, err := New(defaultStatuses, false)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatus("Not processed"), m.Initial())

	allowed := m.Allowed()
	require.Len(t, allowed, 5)
	assert.Equal(t, model.OrderStatus("Shipped"), allowed[2])

	allowed[0] = "mutated"
	assert.Equal(t, model.OrderStatus("Not processed"), m.Initial())
}

func TestMachine_Valid(t *testing.T) {
	m, err := New(defaultStatuses, false)
	require.NoError(t, err)

	assert.True(t, m.Valid("Shipped"))
	assert.False(t, m.Valid("shipped"))
	assert.False(t, m.Valid("Lost"))
}

func TestMachine_Permissive(t *testing.T) {
	m, err := New(defaultStatuses, false)
	require.NoError(t, err)

	for _, from := range m.Allowed() {
		for _, to := range m.Allowed() {
			assert.NoError(t, m.CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.ErrorIs(t, m.CanTransition("Shipped", "Lost"), ErrUnknownStatus)
}

func TestMachine_ForwardOnly(t *testing.T) {
	m, err := New(defaultStatuses, true)
	require.NoError(t, err)
	require.True(t, m.ForwardOnly())

	tests := []struct {
		from, to model.OrderStatus
		wantErr  error
	}{
		{"Not processed", "Processing", nil},
		{"Not processed", "Delivered", nil},
		{"Processing", "Cancelled", nil},
		{"Shipped", "Processing", ErrTransitionNotAllowed},
		{"Shipped", "Shipped", ErrTransitionNotAllowed},
		{"Cancelled", "Processing", ErrTransitionNotAllowed},
		{"Cancelled", "Cancelled", ErrTransitionNotAllowed},
		{"Delivered", "Cancelled", nil},
		{"Legacy", "Shipped", nil},
		{"Processing", "Lost", ErrUnknownStatus},
	}

	for _, tt := range tests {
		err := m.CanTransition(tt.from, tt.to)
		if tt.wantErr == nil {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
			continue
		}
		assert.ErrorIs(t, err, tt.wantErr, "%s -> %s", tt.from, tt.to)
	}
}
