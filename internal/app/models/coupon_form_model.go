package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FormValue holds a form field exactly as typed. It decodes JSON strings,
// numbers and null so that numeric checks happen in validation instead of
// failing the whole request body.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	default:
		*v = FormValue(data)
	}
	return nil
}

func (v FormValue) String() string {
	return string(v)
}

// CouponForm is the coupon dialog as submitted by the admin UI.
type CouponForm struct {
	Code              FormValue `json:"code" validate:"required,min=3,max=20"`
	Description       FormValue `json:"description" validate:"max=1000"`
	DiscountType      FormValue `json:"discount_type" validate:"required,oneof=percentage fixed_amount"`
	DiscountValue     FormValue `json:"discount_value" validate:"required,numeric,nonneg_decimal"`
	MinOrderAmount    FormValue `json:"min_order_amount" validate:"omitempty,numeric,nonneg_decimal"`
	MaxDiscountAmount FormValue `json:"max_discount_amount" validate:"omitempty,numeric,nonneg_decimal"`
	StartDate         FormValue `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           FormValue `json:"end_date" validate:"required,datetime=2006-01-02"`
	MaxUses           FormValue `json:"max_uses" validate:"omitempty,number,min_uses"`
	IsActive          bool      `json:"is_active"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f CouponForm) Trimmed() CouponForm {
	trim := func(v FormValue) FormValue { return FormValue(strings.TrimSpace(string(v))) }
	f.Code = trim(f.Code)
	f.Description = trim(f.Description)
	f.DiscountType = trim(f.DiscountType)
	f.DiscountValue = trim(f.DiscountValue)
	f.MinOrderAmount = trim(f.MinOrderAmount)
	f.MaxDiscountAmount = trim(f.MaxDiscountAmount)
	f.StartDate = trim(f.StartDate)
	f.EndDate = trim(f.EndDate)
	f.MaxUses = trim(f.MaxUses)
	return f
}

// CouponFormFromCoupon pre-fills the edit dialog.
func CouponFormFromCoupon(c *Coupon) CouponForm {
	form := CouponForm{
		Code:          FormValue(c.DisplayCode()),
		Description:   FormValue(c.Description),
		DiscountType:  FormValue(c.DiscountType),
		DiscountValue: FormValue(c.DiscountValue.String()),
		StartDate:     FormValue(c.StartDate.UTC().Format(DateLayout)),
		EndDate:       FormValue(c.EndDate.UTC().Format(DateLayout)),
		IsActive:      c.IsActive,
	}
	if c.MinOrderAmount != nil {
		form.MinOrderAmount = FormValue(c.MinOrderAmount.String())
	}
	if c.MaxDiscountAmount != nil {
		form.MaxDiscountAmount = FormValue(c.MaxDiscountAmount.String())
	}
	if c.MaxUses != nil {
		form.MaxUses = FormValue(strconv.Itoa(*c.MaxUses))
	}
	return form
}

type CouponFormMode string

const (
	CouponFormModeCreate CouponFormMode = "create"
	CouponFormModeEdit   CouponFormMode = "edit"
)

// CouponFormState is what the dialog shows after a submit: the values as
// entered, any field errors, and whether the dialog stays open.
type CouponFormState struct {
	Mode         CouponFormMode    `json:"mode"`
	CouponID     *int64            `json:"coupon_id,omitempty"`
	Values       CouponForm        `json:"values"`
	Errors       map[string]string `json:"errors,omitempty"`
	Open         bool              `json:"open"`
	Coupon       *Coupon           `json:"coupon,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
}

type CouponValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
	Draft  *CouponDraft      `json:"draft,omitempty"`
}
