package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermart-pos/internal/application/catalog"
	"github.com/jhoicas/supermart-pos/internal/application/dto"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
)

// CatalogHandler maneja las peticiones HTTP del catálogo de artículos.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Create POST /api/items
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	item, err := h.uc.AddItem(in.ID, in.Name, in.Price, in.Stock)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(itemResponse(item))
}

// List GET /api/items
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	items := h.uc.List()
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse(it))
	}
	return c.JSON(out)
}

// GetByID GET /api/items/:id
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	item, err := h.uc.Get(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(itemResponse(item))
}

// Update PUT /api/items/:id — renombra y/o cambia el precio.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateItemRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if in.Name != nil {
		if err := h.uc.Rename(id, *in.Name); err != nil {
			return domainError(c, err)
		}
	}
	if in.Price != nil {
		if err := h.uc.SetPrice(id, *in.Price); err != nil {
			return domainError(c, err)
		}
	}
	item, err := h.uc.Get(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(itemResponse(item))
}

// Delete DELETE /api/items/:id
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.RemoveItem(id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock POST /api/items/:id/stock — reposición o corrección manual.
func (h *CatalogHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.AdjustStockRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.uc.AdjustStock(id, in.Delta); err != nil {
		return domainError(c, err)
	}
	item, err := h.uc.Get(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(itemResponse(item))
}

func itemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{ID: it.ID, Name: it.Name, Price: it.Price, Stock: it.Stock}
}
