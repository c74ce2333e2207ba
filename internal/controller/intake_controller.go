package controller

import (
	"supplier-onboarding-be/internal/dto"
	"supplier-onboarding-be/internal/pkg/serverutils"
	"supplier-onboarding-be/internal/service"
	"supplier-onboarding-be/pkg/intake"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	PatchAnswers(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	RemoveUpload(ctx *fiber.Ctx) error
	GoTo(ctx *fiber.Ctx) error
	Next(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type intakeController struct {
	service service.IIntakeService
}

func NewIntakeController(service service.IIntakeService) IIntakeController {
	return &intakeController{service: service}
}

func (c *intakeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/intake/v1")
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Patch(":id/answers", c.PatchAnswers)
	h.Put(":id/uploads/:slot", c.Upload)
	h.Delete(":id/uploads/:slot", c.RemoveUpload)
	h.Post(":id/goto", c.GoTo)
	h.Post(":id/next", c.Next)
	h.Post(":id/reset", c.Reset)
	h.Post(":id/submit", c.Submit)
}

func sessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func (c *intakeController) Create(ctx *fiber.Ctx) error {
	res, err := c.service.Create(ctx.Context(), ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create intake session", res))
}

func (c *intakeController) Show(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Overview(ctx.Context(), id, ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show intake session", res))
}

func (c *intakeController) PatchAnswers(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.PatchAnswersRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PatchAnswers(ctx.Context(), &req, ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update answers", res))
}

func (c *intakeController) Upload(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.UploadDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id
	req.Slot = intake.Slot(ctx.Params("slot"))

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), &req, ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *intakeController) RemoveUpload(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.RemoveUpload(ctx.Context(), id, intake.Slot(ctx.Params("slot")), ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove document", res))
}

func (c *intakeController) section(ctx *fiber.Ctx) (*dto.SectionRequest, error) {
	id, err := sessionId(ctx)
	if err != nil {
		return nil, err
	}

	var req dto.SectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return nil, err
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *intakeController) GoTo(ctx *fiber.Ctx) error {
	req, err := c.section(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GoTo(ctx.Context(), req, ctx.Query("role"))
	if err != nil {
		return err
	}

	message := "Success navigate"
	if !res.Navigated {
		message = "Section is locked"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *intakeController) Next(ctx *fiber.Ctx) error {
	req, err := c.section(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Next(ctx.Context(), req, ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete section", res))
}

func (c *intakeController) Reset(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Reset(ctx.Context(), id, ctx.Query("role"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset form", res))
}

func (c *intakeController) Submit(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit onboarding request", res))
}
