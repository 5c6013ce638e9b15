package services

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
	"github.com/shopspring/decimal"
)

type CouponFormService struct {
	validator *infrastructures.Validator
}

func NewCouponFormService(validator *infrastructures.Validator) *CouponFormService {
	validator.RegisterStructValidation(validateCouponDateOrder, models.CouponForm{})

	return &CouponFormService{
		validator: validator,
	}
}

// Validate checks the form locally and returns the draft to submit, or a
// *errors.ValidationError with one message per failing field.
func (s *CouponFormService) Validate(form models.CouponForm) (*models.CouponDraft, error) {
	form = form.Trimmed()

	if err := s.validator.ValidateFields(form); err != nil {
		return nil, err
	}

	return normalizeCouponForm(form)
}

// Check is the live-validation entry point used while the dialog is edited
func (s *CouponFormService) Check(form models.CouponForm) (*models.CouponValidationResult, error) {
	draft, err := s.Validate(form)
	if err != nil {
		validationErr, ok := err.(*errors.ValidationError)
		if !ok {
			return nil, err
		}
		return &models.CouponValidationResult{Valid: false, Errors: validationErr.Fields}, nil
	}
	return &models.CouponValidationResult{Valid: true, Draft: draft}, nil
}

func normalizeCouponForm(form models.CouponForm) (*models.CouponDraft, error) {
	fields := map[string]string{}

	draft := &models.CouponDraft{
		Code:         strings.ToUpper(form.Code.String()),
		Description:  form.Description.String(),
		DiscountType: models.DiscountType(form.DiscountType),
		IsActive:     form.IsActive,
	}

	value, err := decimal.NewFromString(form.DiscountValue.String())
	if err != nil {
		fields["discount_value"] = "Must be a number"
	}
	draft.DiscountValue = value

	draft.MinOrderAmount = optionalDecimal(form.MinOrderAmount, "min_order_amount", fields)
	draft.MaxDiscountAmount = optionalDecimal(form.MaxDiscountAmount, "max_discount_amount", fields)

	if form.MaxUses != "" {
		maxUses, err := strconv.Atoi(form.MaxUses.String())
		if err != nil {
			fields["max_uses"] = "Must be a whole number"
		} else {
			draft.MaxUses = &maxUses
		}
	}

	if draft.StartDate, err = models.ParseDate(form.StartDate.String()); err != nil {
		fields["start_date"] = "Must be a valid date (YYYY-MM-DD)"
	}
	if draft.EndDate, err = models.ParseDate(form.EndDate.String()); err != nil {
		fields["end_date"] = "Must be a valid date (YYYY-MM-DD)"
	}

	if len(fields) > 0 {
		return nil, errors.NewValidationError(fields)
	}
	return draft, nil
}

func optionalDecimal(value models.FormValue, field string, fields map[string]string) *decimal.Decimal {
	if value == "" {
		return nil
	}
	parsed, err := decimal.NewFromString(value.String())
	if err != nil {
		fields[field] = "Must be a number"
		return nil
	}
	return &parsed
}

// validateCouponDateOrder rejects an end date before the start date. Field
// level rules report malformed dates, so those are skipped here.
func validateCouponDateOrder(sl validator.StructLevel) {
	form := sl.Current().Interface().(models.CouponForm)

	start, err := models.ParseDate(form.StartDate.String())
	if err != nil {
		return
	}
	end, err := models.ParseDate(form.EndDate.String())
	if err != nil {
		return
	}
	if end.Before(start.Time) {
		sl.ReportError(form.EndDate, "end_date", "EndDate", "date_order", "")
	}
}
