package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermart-pos/internal/application/directory"
	"github.com/jhoicas/supermart-pos/internal/application/dto"
)

// DirectoryHandler maneja las peticiones HTTP de clientes y proveedores.
type DirectoryHandler struct {
	uc *directory.UseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *directory.UseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// CreateCustomer POST /api/customers
func (h *DirectoryHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	customer, err := h.uc.AddCustomer(in.Name)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CustomerResponse{ID: customer.ID, Name: customer.Name})
}

// ListCustomers GET /api/customers
func (h *DirectoryHandler) ListCustomers(c *fiber.Ctx) error {
	customers := h.uc.Customers()
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		out = append(out, dto.CustomerResponse{ID: cu.ID, Name: cu.Name})
	}
	return c.JSON(out)
}

// NextCustomerID GET /api/customers/next-id
func (h *DirectoryHandler) NextCustomerID(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"next_id": h.uc.NextCustomerID()})
}

// RenameCustomer PUT /api/customers/:id
func (h *DirectoryHandler) RenameCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.RenameCustomerRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.uc.RenameCustomer(id, in.Name); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.CustomerResponse{ID: id, Name: in.Name})
}

// DeleteCustomer DELETE /api/customers/:id
func (h *DirectoryHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.RemoveCustomer(id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSupplier POST /api/suppliers
func (h *DirectoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.uc.AddSupplier(in.Name); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SupplierResponse{Name: in.Name})
}

// ListSuppliers GET /api/suppliers
func (h *DirectoryHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers := h.uc.Suppliers()
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierResponse{Name: s.Name})
	}
	return c.JSON(out)
}

// DeleteSupplier DELETE /api/suppliers — eliminación por valor (nombre en el
// cuerpo, los nombres de proveedor no son aptos para la ruta).
func (h *DirectoryHandler) DeleteSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.uc.RemoveSupplier(in.Name); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
