package service

import (
	"context"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes best-effort audit entries for staff-management
// operations. Failures are logged and swallowed so a broken audit store can
// never block provisioning.
type AuditService interface {
	Record(ctx context.Context, actorID *int64, action string, metadata entity.JSON)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, actorID *int64, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		AccountID: actorID,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
