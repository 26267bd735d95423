package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/service"
	internalWS "notekeeper-be/internal/websocket"
)

type NotificationHandler struct {
	service *service.NotificationService
	tickets *memory.TicketRepository
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, tickets *memory.TicketRepository, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		tickets: tickets,
		hub:     hub,
		logger:  log,
	}
}

// IssueTicket hands out a short lived single use token for the websocket
// handshake. Browsers cannot set an Authorization header on the upgrade
// request, so the client trades its JWT for a ticket here first.
func (h *NotificationHandler) IssueTicket(c *fiber.Ctx) error {
	userId, err := h.currentUser(c)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.Issue(userId)
	if err != nil {
		return serverutils.DependencyFailure("failed to issue websocket ticket", err)
	}

	return c.JSON(serverutils.SuccessResponse("ticket issued", fiber.Map{"ticket": ticket}))
}

// ServeWs upgrades the connection once the ticket checks out.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	ticket := c.Query("ticket")
	if ticket == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "missing ticket"))
	}

	userId, ok := h.tickets.Redeem(ticket)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid or expired ticket"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "websocket session started", map[string]interface{}{"user_id": userId})
		internalWS.ServeWs(h.hub, conn, userId)
		h.logger.Info("NotificationHandler", "websocket session ended", map[string]interface{}{"user_id": userId})
	})(c)
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userId, err := h.currentUser(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)

	notifications, total, err := h.service.GetNotifications(c.UserContext(), userId, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("notifications fetched", fiber.Map{
		"items": notifications,
		"total": total,
		"limit": limit,
	}))
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userId, err := h.currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.GetUnreadCount(c.UserContext(), userId)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("unread count fetched", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return serverutils.InvalidArgument("invalid notification id")
	}

	if err := h.service.MarkAsRead(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse[any]("notification marked as read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userId, err := h.currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllAsRead(c.UserContext(), userId); err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse[any]("all notifications marked as read", nil))
}

func (h *NotificationHandler) currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, serverutils.Unauthorized("missing user context")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, serverutils.Unauthorized("invalid user id")
	}
	return userId, nil
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification/v1")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("", h.GetNotifications)
	notif.Get("unread-count", h.GetUnreadCount)
	notif.Post("ws-ticket", h.IssueTicket)
	notif.Patch("read-all", h.MarkAllAsRead)
	notif.Patch(":id/read", h.MarkAsRead)

	// websocket handshake authenticates with the ticket, not the JWT
	router.Get("/ws", h.ServeWs)
}
