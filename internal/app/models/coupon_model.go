package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "Active"
	CouponStatusInactive CouponStatus = "Inactive"
	CouponStatusExpired  CouponStatus = "Expired"
)

const DateLayout = "2006-01-02"

// Date is a calendar date as exchanged with the coupon store. Date-only
// values are pinned to UTC midnight.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "2006-01-02" as well as full RFC 3339 timestamps.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, time.UTC); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) isMidnightUTC() bool {
	u := d.UTC()
	return u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	if d.isMidnightUTC() {
		return d.UTC().Format(DateLayout)
	}
	return d.Format(time.RFC3339)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Coupon is a coupon record as held by the coupon store.
type Coupon struct {
	ID                int64            `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	StartDate         Date             `json:"start_date"`
	EndDate           Date             `json:"end_date"`
	MaxUses           *int             `json:"max_uses"`
	CurrentUses       int              `json:"current_uses"`
	IsActive          bool             `json:"is_active"`
}

// IsExpired reports whether the end date has passed at now
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.EndDate.Before(now)
}

// IsActiveAt reports whether the coupon is switched on and not expired. The
// start date does not take part.
func (c *Coupon) IsActiveAt(now time.Time) bool {
	return c.IsActive && !c.IsExpired(now)
}

func (c *Coupon) IsUpcoming(now time.Time) bool {
	return c.StartDate.After(now)
}

// UsagePercentage is not clamped: over-redeemed coupons report more than 100.
func (c *Coupon) UsagePercentage() float64 {
	if c.MaxUses == nil || *c.MaxUses == 0 {
		return 0
	}
	return float64(c.CurrentUses) / float64(*c.MaxUses) * 100
}

func (c *Coupon) DiscountDisplay(currencySymbol string) string {
	if c.DiscountType == DiscountTypePercentage {
		return c.DiscountValue.String() + "%"
	}
	return currencySymbol + c.DiscountValue.String()
}

// Status is the label shown in the list. Expired wins over the active flag.
func (c *Coupon) Status(now time.Time) CouponStatus {
	switch {
	case c.IsExpired(now):
		return CouponStatusExpired
	case c.IsActive:
		return CouponStatusActive
	default:
		return CouponStatusInactive
	}
}

func (c *Coupon) DisplayCode() string {
	return strings.ToUpper(c.Code)
}

// CouponDraft is a validated, normalized coupon ready to be sent to the store.
// Optional fields marshal as null so an update clears them.
type CouponDraft struct {
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	DiscountType      DiscountType     `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	StartDate         Date             `json:"start_date"`
	EndDate           Date             `json:"end_date"`
	MaxUses           *int             `json:"max_uses"`
	IsActive          bool             `json:"is_active"`
}

type CouponActivePatch struct {
	IsActive bool `json:"is_active"`
}

type CouponActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// CouponListResponse is the paginated list envelope; the store may also
// answer with a bare array.
type CouponListResponse struct {
	Count   int      `json:"count"`
	Next    *string  `json:"next"`
	Results []Coupon `json:"results"`
}

type StoreErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}
