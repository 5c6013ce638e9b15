package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
)

const AuditTableCoupons = "coupons"

// AuditLog records one successful change made through the back-office
type AuditLog struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TableName string      `json:"table_name" gorm:"type:varchar(50);not null;index:idx_audit_record"`
	RecordID  string      `json:"record_id" gorm:"type:varchar(64);not null;index:idx_audit_record"`
	Action    AuditAction `json:"action" gorm:"type:varchar(20);not null"`
	OldData   *string     `json:"old_data" gorm:"type:jsonb"`
	NewData   *string     `json:"new_data" gorm:"type:jsonb"`
	RequestID *string     `json:"request_id" gorm:"type:varchar(64)"`
	ChangedAt time.Time   `json:"changed_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
