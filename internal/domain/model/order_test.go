package model_test

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from model.OrderStatus
		to   model.OrderStatus
		ok   bool
	}{
		{model.OrderStatusProcessing, model.OrderStatusShipped, true},
		{model.OrderStatusProcessing, model.OrderStatusCancelled, true},
		{model.OrderStatusProcessing, model.OrderStatusCompleted, false},
		{model.OrderStatusShipped, model.OrderStatusCompleted, true},
		{model.OrderStatusShipped, model.OrderStatusCancelled, false},
		{model.OrderStatusCompleted, model.OrderStatusShipped, false},
		{model.OrderStatusCancelled, model.OrderStatusProcessing, false},
	}

	for _, c := range cases {
		assert.Equalf(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}

	assert.True(t, model.OrderStatusProcessing.Valid())
	assert.False(t, model.OrderStatus("LOST").Valid())
}
