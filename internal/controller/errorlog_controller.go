package controller

import (
	"errortrack-be/internal/entity"
	"errortrack-be/internal/pkg/serverutils"
	"errortrack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IErrorLogController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type errorLogController struct {
	service service.IErrorLogService
}

func NewErrorLogController(service service.IErrorLogService) IErrorLogController {
	return &errorLogController{service: service}
}

func (c *errorLogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/errors", serverutils.JwtMiddleware)
	h.Get("/", c.Index)
	h.Get("/:id", c.Show)
	h.Patch("/:id/resolve", c.Resolve)
	h.Delete("/:id", c.Delete)
}

func (c *errorLogController) Index(ctx *fiber.Ctx) error {
	var applicationId *uuid.UUID
	if raw := ctx.Query("application_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"code":    400,
				"message": "invalid application_id",
			})
		}
		applicationId = &id
	}

	var status *entity.ErrorStatus
	if raw := ctx.Query("status"); raw != "" {
		st := entity.ErrorStatus(raw)
		if st != entity.ErrorStatusOpen && st != entity.ErrorStatusResolved {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"code":    400,
				"message": "invalid status, expected Open or Resolved",
			})
		}
		status = &st
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.Index(ctx.Context(), applicationId, status, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Error logs retrieved",
		"data":    res,
	})
}

func (c *errorLogController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "invalid error log id",
		})
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    404,
			"message": "error log not found",
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Error log retrieved",
		"data":    res,
	})
}

func (c *errorLogController) Resolve(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "invalid error log id",
		})
	}

	resolved, err := c.service.Resolve(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}

	// Not-found is a normal false result, not an error.
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Resolve processed",
		"data":    fiber.Map{"resolved": resolved},
	})
}

func (c *errorLogController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "invalid error log id",
		})
	}

	deleted, err := c.service.Delete(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Delete processed",
		"data":    fiber.Map{"deleted": deleted},
	})
}
