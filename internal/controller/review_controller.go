package controller

import (
	"fmt"

	"supplier-onboarding-be/internal/dto"
	"supplier-onboarding-be/internal/pkg/serverutils"
	"supplier-onboarding-be/internal/service"
	"supplier-onboarding-be/pkg/export"
	"supplier-onboarding-be/pkg/intake"

	"github.com/gofiber/fiber/v2"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	DecidePBP(ctx *fiber.Ctx) error
	DecideProcurement(ctx *fiber.Ctx) error
	DecideOPW(ctx *fiber.Ctx) error
	UploadContract(ctx *fiber.Ctx) error
	DecideAP(ctx *fiber.Ctx) error
	Document(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Audit(ctx *fiber.Ctx) error
}

type reviewController struct {
	service       service.IReviewService
	exportService service.IExportService
}

func NewReviewController(service service.IReviewService, exportService service.IExportService) IReviewController {
	return &reviewController{
		service:       service,
		exportService: exportService,
	}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review/v1")
	h.Get("submissions", c.List)
	h.Get("submissions/:id", c.Show)
	h.Post("submissions/:id/pbp", c.DecidePBP)
	h.Post("submissions/:id/procurement", c.DecideProcurement)
	h.Post("submissions/:id/opw", c.DecideOPW)
	h.Post("submissions/:id/contract", c.UploadContract)
	h.Post("submissions/:id/ap", c.DecideAP)
	h.Get("submissions/:id/documents/:slot", c.Document)
	h.Get("submissions/:id/export", c.Export)
	h.Get("audit", c.Audit)
}

func (c *reviewController) List(ctx *fiber.Ctx) error {
	var req dto.ListSubmissionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get submissions", res))
}

func (c *reviewController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show submission", res))
}

func (c *reviewController) DecidePBP(ctx *fiber.Ctx) error {
	var req dto.ReviewDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SubmissionId = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DecidePBP(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record PBP review", res))
}

func (c *reviewController) DecideProcurement(ctx *fiber.Ctx) error {
	var req dto.ProcurementDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SubmissionId = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DecideProcurement(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record procurement review", res))
}

func (c *reviewController) DecideOPW(ctx *fiber.Ctx) error {
	var req dto.OPWDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SubmissionId = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DecideOPW(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record OPW review", res))
}

func (c *reviewController) UploadContract(ctx *fiber.Ctx) error {
	var req dto.ContractUploadRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SubmissionId = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UploadContract(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload contract", res))
}

func (c *reviewController) DecideAP(ctx *fiber.Ctx) error {
	var req dto.APDecisionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SubmissionId = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DecideAP(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record AP review", res))
}

// Document streams one upload inline so the browser can preview it.
func (c *reviewController) Document(ctx *fiber.Ctx) error {
	doc, err := c.service.Document(ctx.Context(), ctx.Params("id"), intake.Slot(ctx.Params("slot")))
	if err != nil {
		return err
	}

	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, doc.MimeType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Name))
	return ctx.Send(data)
}

func (c *reviewController) Export(ctx *fiber.Ctx) error {
	var (
		res *export.Result
		err error
	)
	switch ctx.Query("format", "pdf") {
	case "pdf":
		res, err = c.exportService.ExportPDF(ctx.Context(), ctx.Params("id"))
	case "html":
		res, err = c.exportService.ExportHTML(ctx.Context(), ctx.Params("id"))
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be pdf or html")
	}
	if err != nil {
		return err
	}

	ctx.Attachment(res.Filename)
	ctx.Set(fiber.HeaderContentType, res.MimeType)
	return ctx.Send(res.Data)
}

func (c *reviewController) Audit(ctx *fiber.Ctx) error {
	var req dto.AuditRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Audit(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit trail", res))
}
