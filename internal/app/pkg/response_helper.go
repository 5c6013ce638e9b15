package pkg

import (
	"errors"
	"reflect"

	"github.com/gofiber/fiber/v2"
	appError "github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/sirupsen/logrus"
)

func SuccessResponse[T any](c *fiber.Ctx, data T) error {
	return c.JSON(models.WebResponse[T]{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, err error) error {
	return ErrorResponseWithData[any](c, err, nil)
}

// ErrorResponseWithData reports err while still returning data, e.g. the
// form state with the values the admin entered.
func ErrorResponseWithData[T any](c *fiber.Ctx, err error, data T) error {
	var appErr *appError.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(models.WebResponse[T]{
			Success: false,
			Message: appErr.Message,
			Data:    data,
		})
	}

	var validationErr *appError.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.WebResponse[T]{
			Success: false,
			Message: "Please correct the highlighted fields",
			Data:    data,
		})
	}

	var storeErr *appError.StoreError
	if errors.As(err, &storeErr) {
		return c.Status(storeErr.HTTPStatus()).JSON(models.WebResponse[T]{
			Success: false,
			Message: storeErr.Error(),
			Data:    data,
		})
	}

	logrus.Errorf("[%s] %s", reflect.TypeOf(err).String(), err)

	return c.Status(fiber.StatusInternalServerError).JSON(models.WebResponse[T]{
		Success: false,
		Message: "Internal Server Error",
		Data:    data,
	})
}
