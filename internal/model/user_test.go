package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "customer", role: RoleCustomer, want: false},
		{name: "admin", role: RoleAdmin, want: true},
		// Legacy records may hold other non-zero values; they keep admin access.
		{name: "legacy non-zero", role: Role(2), want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.role.IsAdmin())
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleCustomer.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role(2).Valid())
	assert.False(t, Role(-1).Valid())
}

func TestProduct_HasPhoto(t *testing.T) {
	assert.False(t, Product{}.HasPhoto())
	assert.True(t, Product{PhotoKey: "products/x"}.HasPhoto())
}
