package repository

import (
	"vetadmin/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, action string, page, limit int) ([]entity.AuditLog, int64, error)
}
