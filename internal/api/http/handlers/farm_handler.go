package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/happyfarm/internal/api/dto"
	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/service"
)

// FarmHandler exposes the caller's farm.
type FarmHandler struct {
	farms *service.FarmService
}

// NewFarmHandler constructs handler.
func NewFarmHandler(farms *service.FarmService) *FarmHandler {
	return &FarmHandler{farms: farms}
}

// Show handles GET /farm.
func (h *FarmHandler) Show(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	snap, err := h.farms.Snapshot(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFarmResponse(principal.User, snap))
}

// Statistics handles GET /farm/statistics.
func (h *FarmHandler) Statistics(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	snap, err := h.farms.Snapshot(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFarmStatisticsResponse(snap))
}
