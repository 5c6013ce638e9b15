package services

import (
	"strings"
	"time"

	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
)

type CouponPresenter struct {
	currencySymbol string
}

func NewCouponPresenter() *CouponPresenter {
	symbol := "₹"
	if infrastructures.Config != nil && infrastructures.Config.CURRENCY_SYMBOL != "" {
		symbol = infrastructures.Config.CURRENCY_SYMBOL
	}
	return NewCouponPresenterWithSymbol(symbol)
}

func NewCouponPresenterWithSymbol(currencySymbol string) *CouponPresenter {
	return &CouponPresenter{currencySymbol: currencySymbol}
}

// CouponPresentation is the derived view of one list snapshot. It stays
// correct for any time in [ComputedAt, ValidUntil].
type CouponPresentation struct {
	Summary    models.CouponSummary
	Rows       []models.CouponRow
	ComputedAt time.Time
	ValidUntil time.Time
}

// Present derives rows and summary tiles in a single pass over the list,
// keeping the store's order.
func (p *CouponPresenter) Present(coupons []models.Coupon, now time.Time) *CouponPresentation {
	presentation := &CouponPresentation{
		Rows:       make([]models.CouponRow, 0, len(coupons)),
		ComputedAt: now,
	}

	for i := range coupons {
		coupon := &coupons[i]
		row := p.row(coupon, now)

		presentation.Summary.Total++
		if row.Active {
			presentation.Summary.Active++
		}
		if row.Expired {
			presentation.Summary.Expired++
		}
		presentation.Summary.TotalUses += coupon.CurrentUses

		// Expired flips once now passes the end date, upcoming as soon as
		// now reaches the start date.
		if !row.Expired {
			presentation.narrow(coupon.EndDate.Time)
		}
		if row.Upcoming {
			presentation.narrow(coupon.StartDate.Add(-time.Nanosecond))
		}

		presentation.Rows = append(presentation.Rows, row)
	}

	return presentation
}

func (p *CouponPresentation) narrow(lastValid time.Time) {
	if p.ValidUntil.IsZero() || lastValid.Before(p.ValidUntil) {
		p.ValidUntil = lastValid
	}
}

// StillValid reports whether the presentation can be reused at now.
func (p *CouponPresentation) StillValid(now time.Time) bool {
	if now.Before(p.ComputedAt) {
		return false
	}
	return p.ValidUntil.IsZero() || !now.After(p.ValidUntil)
}

// Filter keeps rows whose code contains search, ignoring case.
func (p *CouponPresenter) Filter(rows []models.CouponRow, search string) []models.CouponRow {
	search = strings.TrimSpace(search)
	if search == "" {
		return rows
	}

	needle := strings.ToUpper(search)
	filtered := make([]models.CouponRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(row.Code, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func (p *CouponPresenter) row(coupon *models.Coupon, now time.Time) models.CouponRow {
	expired := coupon.IsExpired(now)
	return models.CouponRow{
		ID:                coupon.ID,
		Code:              coupon.DisplayCode(),
		Description:       coupon.Description,
		DiscountType:      coupon.DiscountType,
		DiscountDisplay:   coupon.DiscountDisplay(p.currencySymbol),
		MinOrderAmount:    coupon.MinOrderAmount,
		MaxDiscountAmount: coupon.MaxDiscountAmount,
		StartDate:         coupon.StartDate,
		EndDate:           coupon.EndDate,
		MaxUses:           coupon.MaxUses,
		CurrentUses:       coupon.CurrentUses,
		UsagePercentage:   coupon.UsagePercentage(),
		IsActive:          coupon.IsActive,
		Active:            coupon.IsActiveAt(now),
		Expired:           expired,
		Upcoming:          coupon.IsUpcoming(now),
		Status:            coupon.Status(now),
	}
}
