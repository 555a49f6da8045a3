package dto

import (
	"time"

	"vetadmin/internal/domain/entity"
)

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	AccountID *int64      `json:"account_id,omitempty"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
