package serverutils

import (
	"errors"

	"rgpt-backend/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates errors bubbling out of controllers into
// JSON responses. AppError kinds map to their canonical status; everything
// else is a 500 with the error text as detail.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var ae *apperror.AppError
		if errors.As(err, &ae) {
			return ctx.Status(apperror.StatusCode(ae)).JSON(fiber.Map{
				"code":    apperror.StatusCode(ae),
				"kind":    string(ae.Kind),
				"message": ae.Detail,
			})
		}

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, ve.Error()))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
