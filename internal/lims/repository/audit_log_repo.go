package repository

import (
	"context"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogRepository append-only audit trail
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create stamps ID and Timestamp when absent
func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()[:32]
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// AuditFilter list criteria; zero values are ignored
type AuditFilter struct {
	Username string
	Module   string
	Action   string
	Status   string
	From     *time.Time
	To       *time.Time
}

func (r *AuditLogRepository) FindAll(ctx context.Context, page, pageSize int, f AuditFilter) ([]entity.AuditLog, int64, error) {
	var items []entity.AuditLog

	query := r.db.WithContext(ctx).Model(&entity.AuditLog{})
	if f.Username != "" {
		query = query.Where("username = ?", f.Username)
	}
	if f.Module != "" {
		query = query.Where("module = ?", f.Module)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.From != nil {
		query = query.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("timestamp <= ?", *f.To)
	}

	total, err := paginate(query, page, pageSize, "timestamp DESC", &items)
	return items, total, err
}
