package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestUser_IsLocked(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	assert.False(t, (&entity.User{}).IsLocked(now))
	assert.True(t, (&entity.User{LockedUntil: &future}).IsLocked(now))
	assert.False(t, (&entity.User{LockedUntil: &past}).IsLocked(now))
	assert.True(t, (&entity.User{LockedUntil: &past}).LockExpired(now))
	assert.False(t, (&entity.User{LockedUntil: &now}).IsLocked(now), "el bloqueo vence exactamente en LockedUntil")
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, entity.RoleAdmin.Valid())
	assert.True(t, entity.RoleSeller.Valid())
	assert.True(t, entity.RoleCustomer.Valid())
	assert.False(t, entity.Role(0).Valid())
	assert.False(t, entity.Role(4).Valid())
	assert.Equal(t, entity.RoleCustomer, entity.DefaultRole)
	assert.True(t, entity.RoleAdmin.In(entity.RoleAdmin, entity.RoleCustomer))
	assert.False(t, entity.RoleSeller.In(entity.RoleAdmin, entity.RoleCustomer))
	assert.Equal(t, "cliente", entity.RoleCustomer.String())
}
