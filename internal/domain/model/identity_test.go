package model_test

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	guest := model.NewGuestIdentity()
	assert.True(t, guest.IsGuest())
	assert.NotEqual(t, guest, model.NewGuestIdentity())

	user := model.UserIdentity("a4f0c9f2-usr")
	assert.False(t, user.IsGuest())
	assert.Equal(t, "a4f0c9f2-usr", user.String())
}
