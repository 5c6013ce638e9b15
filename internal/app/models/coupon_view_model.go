package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type NotificationLevel string

const (
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelError   NotificationLevel = "error"
)

// Notification is a dismissible toast shown by the admin UI.
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// CouponRow is one line of the coupon table.
type CouponRow struct {
	ID                int64            `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description,omitempty"`
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountDisplay   string           `json:"discount_display"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	StartDate         Date             `json:"start_date"`
	EndDate           Date             `json:"end_date"`
	MaxUses           *int             `json:"max_uses,omitempty"`
	CurrentUses       int              `json:"current_uses"`
	UsagePercentage   float64          `json:"usage_percentage"`
	IsActive          bool             `json:"is_active"`
	Active            bool             `json:"active"`
	Expired           bool             `json:"expired"`
	Upcoming          bool             `json:"upcoming"`
	Status            CouponStatus     `json:"status"`
}

// CouponSummary feeds the summary tiles above the table.
type CouponSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Expired   int `json:"expired"`
	TotalUses int `json:"total_uses"`
}

type CouponListView struct {
	Summary      CouponSummary `json:"summary"`
	Rows         []CouponRow   `json:"rows"`
	Search       string        `json:"search,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}
