package controller

import (
	"errortrack-be/internal/pkg/serverutils"
	"errortrack-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAlertController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type alertController struct {
	service service.IAlertService
}

func NewAlertController(service service.IAlertService) IAlertController {
	return &alertController{service: service}
}

func (c *alertController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/alerts", serverutils.JwtMiddleware)
	h.Get("/", c.Index)
	h.Get("/:id", c.Show)
	h.Patch("/:id/resolve", c.Resolve)
}

func (c *alertController) Index(ctx *fiber.Ctx) error {
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

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.Index(ctx.Context(), applicationId, limit, offset)
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
		"message": "Alerts retrieved",
		"data":    res,
	})
}

func (c *alertController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "invalid alert id",
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
			"message": "alert not found",
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Alert retrieved",
		"data":    res,
	})
}

func (c *alertController) Resolve(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "invalid alert id",
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

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Resolve processed",
		"data":    fiber.Map{"resolved": resolved},
	})
}
