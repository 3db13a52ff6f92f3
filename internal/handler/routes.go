// Package handler exposes the gamification service over HTTP.
package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expiryguard/internal/expiry"
	"expiryguard/internal/model"
	"expiryguard/internal/notify"
	"expiryguard/internal/repository"
	"expiryguard/internal/service"
)

// Handler wires the HTTP routes to the services.
type Handler struct {
	gamification *service.GamificationService
	notifier     *notify.Notifier
	now          func() time.Time
}

// New creates a Handler.
func New(gamification *service.GamificationService, notifier *notify.Notifier) *Handler {
	return &Handler{
		gamification: gamification,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/users/:userID")
	api.Get("/gamification", h.getGamification)
	api.Get("/products", h.listProducts)
	api.Post("/products", h.addProduct)
	api.Post("/products/:productID/used", h.markUsed)
	api.Get("/awards", h.recentAwards)
}

func (h *Handler) getGamification(c *fiber.Ctx) error {
	snapshot, err := h.gamification.LoadOrInit(c.Context(), c.Params("userID"))
	if err != nil {
		return serverError(c, "failed to load gamification state", err)
	}
	return c.JSON(snapshot)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.gamification.ListProducts(c.Context(), c.Params("userID"))
	if err != nil {
		return serverError(c, "failed to list products", err)
	}

	now := h.now()
	response := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		days := expiry.DaysRemaining(p.ExpiryDate, now)
		response = append(response, fiber.Map{
			"product":       p,
			"daysRemaining": days,
			"status":        expiry.StatusFor(days),
		})
	}
	return c.JSON(response)
}

func (h *Handler) addProduct(c *fiber.Ctx) error {
	type request struct {
		Name         string    `json:"name"`
		Category     string    `json:"category"`
		ExpiryDate   time.Time `json:"expiryDate"`
		Quantity     int       `json:"quantity"`
		Notes        string    `json:"notes"`
		ReminderDays []int     `json:"reminderDays"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON",
			"cause": err.Error(),
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	userID := c.Params("userID")
	product, snapshot, events, err := h.gamification.AddProduct(c.Context(), userID, model.ProductInput{
		Name:         req.Name,
		Category:     model.ProductCategory(req.Category),
		ExpiryDate:   req.ExpiryDate,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
		ReminderDays: req.ReminderDays,
	})
	if err != nil {
		return serverError(c, "failed to add product", err)
	}

	h.notifier.Publish(userID, events, snapshot.Settings)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"product":  product,
		"snapshot": snapshot,
		"events":   events,
	})
}

func (h *Handler) markUsed(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
			"cause": err.Error(),
		})
	}

	userID := c.Params("userID")
	snapshot, events, err := h.gamification.MarkUsed(c.Context(), userID, productID)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "product not found",
		})
	case errors.Is(err, service.ErrProductNotOwned):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "product belongs to another user",
		})
	case err != nil:
		return serverError(c, "failed to mark product used", err)
	}

	h.notifier.Publish(userID, events, snapshot.Settings)

	return c.JSON(fiber.Map{
		"snapshot": snapshot,
		"events":   events,
	})
}

func (h *Handler) recentAwards(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	awards, err := h.gamification.RecentAwards(c.Context(), c.Params("userID"), limit)
	if err != nil {
		return serverError(c, "failed to get awards", err)
	}
	return c.JSON(fiber.Map{"awards": awards})
}

func serverError(c *fiber.Ctx, msg string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}
