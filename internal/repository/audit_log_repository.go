package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type AuditLogFilter struct {
	ActorUserID  *string
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Limit        int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
