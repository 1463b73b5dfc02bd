package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/happyfarm/internal/api/dto"
	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/service"
)

// AnimalsHandler exposes the caller's animals and their lifecycle operations.
type AnimalsHandler struct {
	animals *service.AnimalService
}

// NewAnimalsHandler constructs handler.
func NewAnimalsHandler(animals *service.AnimalService) *AnimalsHandler {
	return &AnimalsHandler{animals: animals}
}

// List handles GET /animals.
func (h *AnimalsHandler) List(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	animals, err := h.animals.List(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAnimalListResponse(animals))
}

// Create handles POST /animals.
func (h *AnimalsHandler) Create(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.AnimalCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := dto.Validate(&req); err != nil {
		return err
	}
	input, err := req.ToInput()
	if err != nil {
		return err
	}

	animal, err := h.animals.Create(c.UserContext(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAnimalResponse(animal))
}

// Get handles GET /animals/:id.
func (h *AnimalsHandler) Get(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	animal, err := h.animals.Get(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAnimalResponse(animal))
}

// Feed handles POST /animals/:id/feed.
func (h *AnimalsHandler) Feed(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	animal, err := h.animals.Feed(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedResponse(animal))
}

// Groom handles POST /animals/:id/groom.
func (h *AnimalsHandler) Groom(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	animal, err := h.animals.Groom(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGroomResponse(animal))
}

// Sacrifice handles POST /animals/:id/sacrifice.
func (h *AnimalsHandler) Sacrifice(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	animal, err := h.animals.Sacrifice(c.UserContext(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSacrificeResponse(animal))
}
