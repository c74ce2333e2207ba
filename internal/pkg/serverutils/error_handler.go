package serverutils

import (
	"errors"

	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/pkg/export"
	"supplier-onboarding-be/pkg/intake"
	"supplier-onboarding-be/pkg/pipeline"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into JSON
// responses with the matching status code.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, body := MapError(err)
		return ctx.Status(code).JSON(body)
	}
}

// MapError resolves the status code and body for err.
func MapError(err error) (int, Response[any]) {
	var (
		missing      *intake.ValidationError
		precondition *pipeline.PreconditionError
		invalid      validator.ValidationErrors
		fiberErr     *fiber.Error
	)

	switch {
	case errors.As(err, &missing):
		return fiber.StatusUnprocessableEntity, ErrorDetailResponse(fiber.StatusUnprocessableEntity, err.Error(), fiber.Map{
			"section": missing.Section,
			"missing": missing.Missing,
		})
	case errors.As(err, &precondition):
		return fiber.StatusUnprocessableEntity, ErrorDetailResponse(fiber.StatusUnprocessableEntity, err.Error(), fiber.Map{
			"stage":    precondition.Stage,
			"problems": precondition.Problems,
		})
	case errors.As(err, &invalid):
		return fiber.StatusBadRequest, ErrorDetailResponse(fiber.StatusBadRequest, "Invalid request", describeValidation(invalid))
	case errors.Is(err, intake.ErrInvalidDocument),
		errors.Is(err, intake.ErrUnknownSlot),
		errors.Is(err, intake.ErrUnknownSection):
		return fiber.StatusUnprocessableEntity, ErrorResponse(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, contract.ErrSubmissionNotFound),
		errors.Is(err, contract.ErrMalformedSubmission),
		errors.Is(err, contract.ErrIntakeSessionNotFound),
		errors.Is(err, contract.ErrDocumentNotFound):
		return fiber.StatusNotFound, ErrorResponse(fiber.StatusNotFound, err.Error())
	case errors.Is(err, pipeline.ErrStageNotReachable),
		errors.Is(err, pipeline.ErrAlreadyDecided),
		errors.Is(err, contract.ErrVersionConflict):
		return fiber.StatusConflict, ErrorResponse(fiber.StatusConflict, err.Error())
	case errors.Is(err, export.ErrPDFDependencyMissing):
		return fiber.StatusServiceUnavailable, ErrorResponse(fiber.StatusServiceUnavailable, err.Error())
	case errors.As(err, &fiberErr):
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	}
	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, err.Error())
}
