package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"gorm.io/gorm"
)

type requestIDKey struct{}

// WithRequestID tags ctx so audit entries can be traced back to the request
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) *string {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || requestID == "" {
		return nil
	}
	return &requestID
}

// AuditLogger records successful back-office changes
type AuditLogger interface {
	LogAudit(ctx context.Context, tableName, recordID string, action models.AuditAction, oldData, newData interface{}) error
	GetAuditLogs(ctx context.Context, tableName, recordID string, pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error)
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogAudit creates an audit log entry for a change made through the back-office
func (s *AuditService) LogAudit(ctx context.Context, tableName, recordID string, action models.AuditAction, oldData, newData interface{}) error {
	var oldDataJSON, newDataJSON *string

	if oldData != nil {
		jsonBytes, err := json.Marshal(oldData)
		if err != nil {
			return fmt.Errorf("failed to marshal old data: %w", err)
		}
		strJSON := string(jsonBytes)
		oldDataJSON = &strJSON
	}

	if newData != nil {
		jsonBytes, err := json.Marshal(newData)
		if err != nil {
			return fmt.Errorf("failed to marshal new data: %w", err)
		}
		strJSON := string(jsonBytes)
		newDataJSON = &strJSON
	}

	auditLog := &models.AuditLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldData:   oldDataJSON,
		NewData:   newDataJSON,
		RequestID: requestIDFrom(ctx),
		ChangedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(auditLog).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create audit log")
	}

	return nil
}

// GetAuditLogs retrieves the audit trail of one record with pagination
func (s *AuditService) GetAuditLogs(ctx context.Context, tableName, recordID string, pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	scope := s.db.WithContext(ctx).Model(&models.AuditLog{}).
		Where("table_name = ? AND record_id = ?", tableName, recordID)

	var totalItems int64
	if err := scope.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count audit logs")
	}

	var logs []models.AuditLog
	query := s.db.WithContext(ctx).
		Where("table_name = ? AND record_id = ?", tableName, recordID).
		Order("changed_at DESC").
		Limit(pagination.Limit)

	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&logs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit logs")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	hasNext := pagination.Page < totalPages
	hasPrev := pagination.Page > 1

	result := &models.Pagination[[]models.AuditLog]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    hasNext,
		HasPrev:    hasPrev,
		Items:      logs,
	}

	return result, nil
}
