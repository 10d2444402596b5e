package controller

import (
	"errortrack-be/internal/dto"
	"errortrack-be/internal/pkg/serverutils"
	"errortrack-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	Report(ctx *fiber.Ctx) error
}

type ingestController struct {
	service service.IErrorLogService
}

func NewIngestController(service service.IErrorLogService) IIngestController {
	return &ingestController{service: service}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	// Public endpoint, reporters authenticate by api key inside the payload.
	r.Post("/errors/report", c.Report)
}

func (c *ingestController) Report(ctx *fiber.Ctx) error {
	var req dto.ReportErrorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	result, err := c.service.Ingest(ctx.Context(), &req, ctx.Get("User-Agent"), ctx.IP())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}

	res := dto.ReportErrorResponse{Result: int(result.Outcome)}
	message := "Error report stored"
	switch result.Outcome {
	case service.OutcomeInactive:
		message = "Application is inactive, report discarded"
	case service.OutcomePaused:
		message = "Application is paused, report discarded"
	default:
		res.ErrorLogId = result.ErrorLog.Id.String()
		res.AlertId = result.Alert.Id.String()
		res.Severity = string(result.ErrorLog.Severity)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    res,
	})
}
