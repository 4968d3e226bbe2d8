package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"go.uber.org/zap"
)

// AuditService append-only audit trail
type AuditService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewAuditService(repos *repository.Repositories, logger *zap.Logger) *AuditService {
	return &AuditService{repos: repos, logger: logger}
}

// AuditEntry one action to record; the timestamp is assigned at write time
type AuditEntry struct {
	Username  string
	Action    string
	Module    string
	Details   string
	IPAddress string
	Status    string
}

func (s *AuditService) Record(ctx context.Context, e AuditEntry) (*entity.AuditLog, error) {
	if e.Action == "" || e.Module == "" {
		return nil, validation("audit action and module are required")
	}

	log := &entity.AuditLog{
		Username:  orDefault(e.Username, "anonymous"),
		Action:    e.Action,
		Module:    e.Module,
		Details:   e.Details,
		IPAddress: e.IPAddress,
		Status:    orDefault(e.Status, entity.AuditStatusSuccess),
		Timestamp: time.Now(),
	}
	if err := s.repos.AuditLog.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("save audit log: %w", err)
	}
	return log, nil
}

// LogAction records e and only logs a failure, for callers that must not fail on audit errors
func (s *AuditService) LogAction(ctx context.Context, e AuditEntry) {
	if _, err := s.Record(ctx, e); err != nil {
		s.logger.Warn("Failed to write audit log",
			zap.String("module", e.Module),
			zap.String("action", e.Action),
			zap.Error(err),
		)
	}
}

func (s *AuditService) List(ctx context.Context, page, pageSize int, f repository.AuditFilter) ([]entity.AuditLog, int64, error) {
	items, total, err := s.repos.AuditLog.FindAll(ctx, page, pageSize, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return items, total, nil
}
