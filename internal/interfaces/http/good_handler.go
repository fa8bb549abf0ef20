package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/stock"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// GoodHandler serves the goods catalog (protected).
type GoodHandler struct {
	store *stock.Store
}

func NewGoodHandler(store *stock.Store) *GoodHandler {
	return &GoodHandler{store: store}
}

func toGoodResponse(g *entity.Good) dto.GoodResponse {
	return dto.GoodResponse{
		Code:      g.Code,
		Name:      g.Name,
		Unit:      g.Unit,
		UnitPrice: g.UnitPrice,
		OnHandQty: g.OnHandQty,
	}
}

// Create godoc
// @Summary      Register a good
// @Tags         goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodRequest  true  "code, name, unit, unitPrice"
// @Success      201   {object}  dto.GoodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods [post]
func (h *GoodHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	g := &entity.Good{Code: in.Code, Name: in.Name, Unit: in.Unit, UnitPrice: in.UnitPrice}
	if err := h.store.Register(c.Context(), g); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toGoodResponse(g))
}

// Update godoc
// @Summary      Update descriptive fields of a good
// @Tags         goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Good code"
// @Param        body  body  dto.UpdateGoodRequest  true  "name, unit, unitPrice"
// @Success      200   {object}  dto.GoodResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{code} [put]
func (h *GoodHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGoodRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	g, err := h.store.UpdateInfo(c.Context(), c.Params("code"), in.Name, in.Unit, in.UnitPrice)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toGoodResponse(g))
}

// GetByCode godoc
// @Summary      Get a good with its on-hand quantity
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Good code"
// @Success      200   {object}  dto.GoodResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{code} [get]
func (h *GoodHandler) GetByCode(c *fiber.Ctx) error {
	g, err := h.store.Get(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toGoodResponse(g))
}

// List godoc
// @Summary      List the goods catalog
// @Tags         goods
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GoodResponse
// @Router       /api/goods [get]
func (h *GoodHandler) List(c *fiber.Ctx) error {
	goods, err := h.store.List(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.GoodResponse, 0, len(goods))
	for _, g := range goods {
		out = append(out, toGoodResponse(g))
	}
	return c.JSON(out)
}
