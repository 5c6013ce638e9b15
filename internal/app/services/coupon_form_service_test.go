package services

import (
	"strings"
	"testing"

	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormService() *CouponFormService {
	return NewCouponFormService(infrastructures.NewValidator())
}

func validForm() models.CouponForm {
	return models.CouponForm{
		Code:          "SAVE20",
		DiscountType:  "percentage",
		DiscountValue: "20",
		StartDate:     "2025-01-01",
		EndDate:       "2025-12-31",
		IsActive:      true,
	}
}

// fieldErrors returns the per-field messages, failing the test if err is not
// a validation error.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	validationErr, ok := err.(*errors.ValidationError)
	require.True(t, ok, "expected *errors.ValidationError, got %T", err)
	return validationErr.Fields
}

func TestCouponFormValidateAcceptsValidForm(t *testing.T) {
	draft, err := newFormService().Validate(validForm())
	require.NoError(t, err)

	assert.Equal(t, "SAVE20", draft.Code)
	assert.Equal(t, models.DiscountTypePercentage, draft.DiscountType)
	assert.True(t, draft.DiscountValue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "2025-01-01", draft.StartDate.String())
	assert.Equal(t, "2025-12-31", draft.EndDate.String())
	assert.Nil(t, draft.MinOrderAmount)
	assert.Nil(t, draft.MaxDiscountAmount)
	assert.Nil(t, draft.MaxUses)
	assert.True(t, draft.IsActive)
}

func TestCouponFormValidateNormalizesCode(t *testing.T) {
	form := validForm()
	form.Code = "  diwali25 "

	draft, err := newFormService().Validate(form)
	require.NoError(t, err)
	assert.Equal(t, "DIWALI25", draft.Code)
}

func TestCouponFormCodeLength(t *testing.T) {
	tests := []struct {
		length int
		valid  bool
	}{
		{2, false},
		{3, true},
		{20, true},
		{21, false},
	}

	service := newFormService()
	for _, tt := range tests {
		form := validForm()
		form.Code = models.FormValue(strings.Repeat("A", tt.length))

		_, err := service.Validate(form)
		if tt.valid {
			assert.NoError(t, err, "length %d", tt.length)
			continue
		}
		assert.Contains(t, fieldErrors(t, err), "code", "length %d", tt.length)
	}
}

func TestCouponFormNonNegativeAmounts(t *testing.T) {
	service := newFormService()
	fields := []struct {
		name string
		set  func(*models.CouponForm, models.FormValue)
	}{
		{"discount_value", func(f *models.CouponForm, v models.FormValue) { f.DiscountValue = v }},
		{"min_order_amount", func(f *models.CouponForm, v models.FormValue) { f.MinOrderAmount = v }},
		{"max_discount_amount", func(f *models.CouponForm, v models.FormValue) { f.MaxDiscountAmount = v }},
	}

	for _, field := range fields {
		t.Run(field.name, func(t *testing.T) {
			form := validForm()
			field.set(&form, "-1")
			_, err := service.Validate(form)
			assert.Equal(t, "Must be zero or greater", fieldErrors(t, err)[field.name])

			form = validForm()
			field.set(&form, "abc")
			_, err = service.Validate(form)
			assert.Equal(t, "Must be a number", fieldErrors(t, err)[field.name])

			form = validForm()
			field.set(&form, "0")
			_, err = service.Validate(form)
			assert.NoError(t, err)
		})
	}
}

func TestCouponFormOptionalAmountsParsed(t *testing.T) {
	form := validForm()
	form.MinOrderAmount = "1500"
	form.MaxDiscountAmount = "250.75"

	draft, err := newFormService().Validate(form)
	require.NoError(t, err)
	require.NotNil(t, draft.MinOrderAmount)
	require.NotNil(t, draft.MaxDiscountAmount)
	assert.True(t, draft.MinOrderAmount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, draft.MaxDiscountAmount.Equal(decimal.RequireFromString("250.75")))
}

func TestCouponFormMaxUses(t *testing.T) {
	service := newFormService()

	form := validForm()
	form.MaxUses = "0"
	_, err := service.Validate(form)
	assert.Equal(t, "Must be at least 1", fieldErrors(t, err)["max_uses"])

	form.MaxUses = "-3"
	_, err = service.Validate(form)
	assert.Contains(t, fieldErrors(t, err), "max_uses")

	form.MaxUses = "1"
	draft, err := service.Validate(form)
	require.NoError(t, err)
	require.NotNil(t, draft.MaxUses)
	assert.Equal(t, 1, *draft.MaxUses)
}

func TestCouponFormDates(t *testing.T) {
	service := newFormService()

	t.Run("required", func(t *testing.T) {
		form := validForm()
		form.StartDate = ""
		form.EndDate = ""
		fields := fieldErrors(t, func() error { _, err := service.Validate(form); return err }())
		assert.Equal(t, "This field is required", fields["start_date"])
		assert.Equal(t, "This field is required", fields["end_date"])
	})

	t.Run("malformed", func(t *testing.T) {
		form := validForm()
		form.EndDate = "2025-13-01"
		_, err := service.Validate(form)
		assert.Equal(t, "Must be a valid date (YYYY-MM-DD)", fieldErrors(t, err)["end_date"])
	})

	t.Run("end before start", func(t *testing.T) {
		form := validForm()
		form.StartDate = "2025-12-31"
		form.EndDate = "2025-01-01"
		_, err := service.Validate(form)
		assert.Equal(t, "End date must be on or after the start date", fieldErrors(t, err)["end_date"])
	})

	t.Run("same day", func(t *testing.T) {
		form := validForm()
		form.StartDate = "2025-06-01"
		form.EndDate = "2025-06-01"
		_, err := service.Validate(form)
		assert.NoError(t, err)
	})
}

func TestCouponFormDiscountType(t *testing.T) {
	form := validForm()
	form.DiscountType = "bogo"

	_, err := newFormService().Validate(form)
	assert.Equal(t, "Must be one of: percentage, fixed_amount", fieldErrors(t, err)["discount_type"])
}

func TestCouponFormReportsEveryFailingField(t *testing.T) {
	form := models.CouponForm{Code: "AB", DiscountValue: "-5", MaxUses: "0"}

	_, err := newFormService().Validate(form)
	fields := fieldErrors(t, err)

	for _, name := range []string{"code", "discount_type", "discount_value", "start_date", "end_date", "max_uses"} {
		assert.Contains(t, fields, name)
	}
}

func TestCouponFormCheck(t *testing.T) {
	service := newFormService()

	result, err := service.Check(validForm())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.NotNil(t, result.Draft)
	assert.Empty(t, result.Errors)

	form := validForm()
	form.Code = "X"
	result, err = service.Check(form)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Nil(t, result.Draft)
	assert.Contains(t, result.Errors, "code")
}
