package controller

import (
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShortcutController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type shortcutController struct {
	shortcutService service.IShortcutService
}

func NewShortcutController(shortcutService service.IShortcutService) IShortcutController {
	return &shortcutController{
		shortcutService: shortcutService,
	}
}

func (c *shortcutController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shortcut/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Put("reorder", c.Reorder)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *shortcutController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.shortcutService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get shortcuts", res))
}

func (c *shortcutController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateShortcutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shortcutService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create shortcut", res))
}

func (c *shortcutController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidArgument("invalid shortcut id")
	}

	var req dto.UpdateShortcutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shortcutService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update shortcut", res))
}

func (c *shortcutController) Reorder(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ReorderShortcutsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.shortcutService.Reorder(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reorder shortcuts", nil))
}

func (c *shortcutController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidArgument("invalid shortcut id")
	}

	if err := c.shortcutService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete shortcut", nil))
}
